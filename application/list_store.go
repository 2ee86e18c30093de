package application

import (
	"slices"
	"sync"

	"flightadmin/domain/contracts"
	"flightadmin/domain/listing"
)

// ListStore owns the query, result and selection state of one listing screen.
// It never returns fetch errors to readers: a failed fetch leaves an empty
// page behind and the Failed flag set.
type ListStore[T listing.Identifiable] struct {
	mu         sync.RWMutex
	filter     listing.ListQuery // latest requested query
	shown      listing.ListQuery // query the current result answers
	result     listing.ListResult[T]
	loading    bool
	failed     bool
	selection  *listing.SelectionSet[T]
	generation uint64            // bumped by every BeginFetch; older completions are stale
	fetching   listing.ListQuery // query of the current generation
}

// NewListStore creates a store holding initial as its query and an empty page.
func NewListStore[T listing.Identifiable](initial listing.ListQuery) *ListStore[T] {
	return &ListStore[T]{
		filter:    initial.Clone(),
		shown:     initial.Clone(),
		result:    *listing.EmptyResult[T](),
		selection: listing.NewSelectionSet[T](),
	}
}

// SetFilter replaces the query wholesale. No clamping is applied.
func (s *ListStore[T]) SetFilter(q listing.ListQuery) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = q.Clone()
}

// Filter returns a copy of the current query.
func (s *ListStore[T]) Filter() listing.ListQuery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filter.Clone()
}

// SetItems replaces the rows of the current page and clears the selection.
// Totals are left as they are.
func (s *ListStore[T]) SetItems(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result.Items = cloneItems(items)
	s.shown = s.filter.Clone()
	s.selection.Clear()
}

// SetResult replaces the whole page, totals included, and clears the selection.
func (s *ListStore[T]) SetResult(res *listing.ListResult[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shown = s.filter.Clone()
	s.setResultLocked(res)
}

func (s *ListStore[T]) setResultLocked(res *listing.ListResult[T]) {
	if res == nil {
		res = listing.EmptyResult[T]()
	}
	s.result = *res
	s.result.Items = cloneItems(res.Items)
	if s.result.TotalPage < 1 {
		s.result.TotalPage = 1
	}
	s.selection.Clear()
}

// SetLoading sets the loading flag.
func (s *ListStore[T]) SetLoading(loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = loading
}

// ToggleSelection adds or removes item by identity. Both directions are idempotent.
func (s *ListStore[T]) ToggleSelection(checked bool, item T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Toggle(checked, item)
}

// ToggleSelectionByID toggles the row with id on the current page. Selecting
// an id that is not on the page fails; deselecting one always succeeds.
func (s *ListStore[T]) ToggleSelectionByID(checked bool, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.result.Items {
		if item.Identity() == id {
			s.selection.Toggle(checked, item)
			return nil
		}
	}
	if !checked {
		for _, item := range s.selection.Items() {
			if item.Identity() == id {
				s.selection.Toggle(false, item)
			}
		}
		return nil
	}
	return contracts.ErrRowNotFound
}

// SelectAll replaces the selection with items.
func (s *ListStore[T]) SelectAll(items []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Replace(items)
}

// SelectPage selects every row on the current page.
func (s *ListStore[T]) SelectPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Replace(s.result.Items)
}

// ClearAll empties the selection.
func (s *ListStore[T]) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Clear()
}

// BeginFetch makes q the query of a new current fetch, sets loading and
// returns its generation for CompleteFetch. The query and the generation
// change together, so the newest fetch always owns the stored query.
func (s *ListStore[T]) BeginFetch(q listing.ListQuery) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.fetching = q.Clone()
	s.filter = q.Clone()
	s.loading = true
	return s.generation
}

// CompleteFetch applies the outcome of fetch gen. It reports false, and
// changes nothing, when a newer fetch has begun since.
func (s *ListStore[T]) CompleteFetch(gen uint64, res *listing.ListResult[T], err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		return false
	}
	s.loading = false
	s.shown = s.fetching.Clone()
	if err != nil || res == nil {
		s.failed = true
		s.setResultLocked(nil)
		return true
	}
	s.failed = false
	s.setResultLocked(res)
	return true
}

// Snapshot returns a copy of the state for rendering. Query is the query the
// returned rows answer, which trails Filter while a fetch is in flight.
func (s *ListStore[T]) Snapshot() ListSnapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	selected := s.selection.Items()
	ids := make(map[string]bool, len(selected))
	for _, item := range selected {
		ids[item.Identity()] = true
	}
	return ListSnapshot[T]{
		Query:       s.shown.Clone(),
		Items:       cloneItems(s.result.Items),
		Total:       s.result.Total,
		TotalPage:   s.result.TotalPage,
		Applied:     s.result.Applied,
		Loading:     s.loading,
		Failed:      s.failed,
		Selected:    selected,
		selectedIDs: ids,
	}
}

func cloneItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// ListSnapshot is an immutable view of a ListStore.
type ListSnapshot[T listing.Identifiable] struct {
	Query     listing.ListQuery
	Items     []T
	Total     int
	TotalPage int
	Applied   *listing.AppliedQuery // sort and paging echoed by the server, if any
	Loading   bool
	Failed    bool
	Selected  []T

	selectedIDs map[string]bool
}

// IsSelected reports whether the row with id is selected.
func (s ListSnapshot[T]) IsSelected(id string) bool {
	return s.selectedIDs[id]
}

// Sort returns the ordering of the rows: the server's echo when it sent one,
// otherwise the requested query's.
func (s ListSnapshot[T]) Sort() (string, listing.Direction) {
	if s.Applied != nil && s.Applied.OrderBy != "" {
		return s.Applied.OrderBy, s.Applied.OrderDirection
	}
	return s.Query.OrderBy, s.Query.OrderDirection
}

// Sortable reports whether the server accepts key as a sort field. Without
// an advertised list every key is accepted.
func (s ListSnapshot[T]) Sortable(key string) bool {
	if s.Applied == nil || len(s.Applied.AvailableOrderBy) == 0 {
		return true
	}
	return slices.Contains(s.Applied.AvailableOrderBy, key)
}

// AllSelected reports whether every row of a non-empty page is selected.
func (s ListSnapshot[T]) AllSelected() bool {
	if len(s.Items) == 0 {
		return false
	}
	for _, item := range s.Items {
		if !s.selectedIDs[item.Identity()] {
			return false
		}
	}
	return true
}
