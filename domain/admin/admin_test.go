package admin

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissions_DecodesEveryForm(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"grants", `{"permissions":[{"subject":"USER","action":["read"]},{"subject":"ROLE","action":["read","update"]}]}`, 2},
		{"count", `{"permissions":7}`, 7},
		{"ids", `{"permissions":[1,2,3]}`, 3},
		{"null", `{"permissions":null}`, 0},
		{"missing", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Role
			require.NoError(t, json.Unmarshal([]byte(tt.json), &r))
			assert.Equal(t, tt.want, r.Permissions.Len())
		})
	}
}

func TestBooker_StringOrObject(t *testing.T) {
	var list Booking
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b1","bookedBy":"u1","basePayment":1200.5}`), &list))
	assert.Equal(t, "u1", list.BookedBy.Display())
	assert.Equal(t, FlexString("1200.5"), list.BasePayment)

	var detail Booking
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"b1","bookedBy":{"name":"Abebe","email":"a@example.com"},"basePayment":"99"}`), &detail))
	assert.Equal(t, "Abebe", detail.BookedBy.Display())
	v, ok := detail.BasePayment.Float()
	assert.True(t, ok)
	assert.Equal(t, 99.0, v)
}

func TestBooking_TravellerNames(t *testing.T) {
	b := Booking{TravellerInfo: []Traveller{{FullName: "A B"}, {}, {FullName: "C D"}}}
	assert.Equal(t, "A B, C D", b.TravellerNames())
}

func TestParseRate(t *testing.T) {
	v, err := ParseRate(" 12.5 ")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	for _, raw := range []string{"", "abc", "-1", "NaN", "Inf"} {
		_, err := ParseRate(raw)
		assert.ErrorIs(t, err, ErrInvalidRate, raw)
	}
}

func TestCreateUserPayload_Validate(t *testing.T) {
	err := CreateUserPayload{Email: "a@example.com", Name: "A", Role: "r1", Country: "c1", Gender: GenderFemale}.Validate()
	assert.NoError(t, err)

	err = CreateUserPayload{Gender: "ROBOT"}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmailRequired))
	assert.True(t, errors.Is(err, ErrInvalidGender))
}

func TestSalesAgentPayload_Validate(t *testing.T) {
	p := SalesAgentPayload{
		CreateUserPayload: CreateUserPayload{Email: "a@example.com", Name: "A", Role: "r1", Country: "c1", Gender: GenderMale},
		CommissionAmount:  -1,
	}
	assert.ErrorIs(t, p.Validate(), ErrNegativeAmount)
}

func TestTimestamp(t *testing.T) {
	ts := Timestamp("2024-03-01T10:00:00.000Z")
	got, ok := ts.Time()
	require.True(t, ok)
	assert.Equal(t, time.March, got.Month())
	assert.Equal(t, "2024-03-01", ts.Format("2006-01-02"))
	assert.Equal(t, "yesterday", Timestamp("yesterday").Format("2006-01-02"))
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Session{}).Expired(now))
	assert.True(t, (&Session{ExpiresAt: now.Add(-time.Second)}).Expired(now))
	assert.False(t, (&Session{ExpiresAt: now.Add(time.Hour)}).Expired(now))
}

func TestManageGrants(t *testing.T) {
	grants := ManageGrants([]string{"USER", "BOGUS", "USER", "ROLE"})
	require.Len(t, grants, 2)
	assert.Equal(t, "USER", grants[0].Subject)
	assert.Equal(t, []string{"manage"}, grants[0].Action)

	all := ManageGrants([]string{"USER", SubjectAll})
	assert.Equal(t, []Permission{{Subject: SubjectAll, Action: []string{"manage"}}}, all)

	assert.Empty(t, ManageGrants(nil))
}

func TestCreateRolePayload_Validate(t *testing.T) {
	assert.NoError(t, CreateRolePayload{Name: "Ops", Type: RoleTypeAdmin}.Validate())

	err := CreateRolePayload{Type: "ROOT"}.Validate()
	assert.ErrorIs(t, err, ErrRoleNameRequired)
	assert.ErrorIs(t, err, ErrInvalidRoleType)

	assert.NoError(t, UpdateRolePayload{}.Validate())
	assert.ErrorIs(t, UpdateRolePayload{Type: "ROOT"}.Validate(), ErrInvalidRoleType)
}
