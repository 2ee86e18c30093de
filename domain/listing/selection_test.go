package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type row struct {
	ID   string
	Name string
}

func (r row) Identity() string { return r.ID }

func TestSelectionSet_ToggleRoundTrip(t *testing.T) {
	s := NewSelectionSet[row]()
	s.Toggle(true, row{ID: "a"})
	before := s.IDs()

	s.Toggle(true, row{ID: "x"})
	s.Toggle(false, row{ID: "x"})

	assert.Equal(t, before, s.IDs())
}

func TestSelectionSet_AtMostOnce(t *testing.T) {
	s := NewSelectionSet[row]()
	s.Toggle(true, row{ID: "a", Name: "first"})
	s.Toggle(true, row{ID: "a", Name: "second"})

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "first", s.Items()[0].Name)
}

func TestSelectionSet_RemoveByIdentityNotValue(t *testing.T) {
	s := NewSelectionSet[row]()
	s.Toggle(true, row{ID: "a", Name: "stale copy"})

	s.Toggle(false, row{ID: "a", Name: "fresh copy"})

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains("a"))
}

func TestSelectionSet_DeselectTwiceIsIdempotent(t *testing.T) {
	s := NewSelectionSet[row]()
	s.Toggle(true, row{ID: "a"})
	s.Toggle(true, row{ID: "b"})

	s.Toggle(false, row{ID: "a"})
	s.Toggle(false, row{ID: "a"})

	assert.Equal(t, []string{"b"}, s.IDs())
}

func TestSelectionSet_ReplaceAndClear(t *testing.T) {
	s := NewSelectionSet[row]()
	s.Toggle(true, row{ID: "old"})

	s.Replace([]row{{ID: "a"}, {ID: "b"}, {ID: "a"}})
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Items())
}
