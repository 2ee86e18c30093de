package presenters

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"flightadmin/domain/admin"
	"flightadmin/infrastructure/apiclient"
	"flightadmin/interfaces/web/templates/components/ui"
)

func TestToastPresenter_Error(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	p := &ToastPresenter{now: func() time.Time { return fixed }}

	tests := []struct {
		name    string
		err     error
		title   string
		message string
	}{
		{
			name:    "input errors are listed",
			err:     errors.Join(admin.ErrNameRequired, admin.ErrRoleRequired),
			title:   "Please check your input",
			message: "name is required; role is required",
		},
		{
			name:    "wrapped rate error",
			err:     fmt.Errorf("save: %w", admin.ErrInvalidRate),
			title:   "Please check your input",
			message: "save: please enter a valid number (0 or greater)",
		},
		{
			name:    "api validation",
			err:     &apiclient.ValidationError{StatusCode: 400, Path: "/admin/user/create", Messages: []string{"email must be an email", "name too short"}},
			title:   "Please check your input",
			message: "email must be an email; name too short",
		},
		{
			name:    "network",
			err:     &apiclient.NetworkError{Method: "GET", Path: "/admin/role/list", Err: errors.New("refused")},
			title:   "Network error",
			message: "The server could not be reached. Check your connection and try again.",
		},
		{
			name:    "api error keeps the server message",
			err:     &apiclient.APIError{StatusCode: 409, Path: "/admin/role/create", Message: "role already exists"},
			title:   "Something went wrong",
			message: "role already exists",
		},
		{
			name:    "unknown",
			err:     errors.New("boom"),
			title:   "Something went wrong",
			message: "Something went wrong.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toast := p.Error(tt.err)

			assert.Equal(t, tt.title, toast.Title)
			assert.Equal(t, tt.message, toast.Message)
			assert.Equal(t, ui.ToastError, toast.Type)
			assert.Equal(t, fixed, toast.Timestamp)
		})
	}
}

func TestToastPresenter_Success(t *testing.T) {
	toast := NewToastPresenter().Success("Saved.")

	assert.Equal(t, ui.ToastSuccess, toast.Type)
	assert.Equal(t, "Saved.", toast.Message)
	assert.False(t, toast.Timestamp.IsZero())
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "Sales Agent", Humanize("SALES_AGENT"))
	assert.Equal(t, "Markup Rate", Humanize("markup-rate"))
	assert.Equal(t, "", Humanize(""))

	assert.Equal(t, "Mar 1, 2024", FormatDate("2024-03-01T08:30:00.000Z"))
	assert.Equal(t, "-", FormatDate(""))
	assert.Equal(t, "yesterday", FormatDate("yesterday"))

	assert.Equal(t, "1200.50 ETB", FormatAmount("1200.5", "ETB"))
	assert.Equal(t, "n/a", FormatAmount("n/a", ""))
	assert.Equal(t, "-", FormatAmount("", "USD"))

	v := 2.5
	assert.Equal(t, "2.5", FormatNumber(&v))
	assert.Equal(t, "-", FormatNumber(nil))

	assert.Equal(t, "green", statusBadge("ACTIVE"))
	assert.Equal(t, "amber", statusBadge("PENDING"))
	assert.Equal(t, "red", statusBadge("CANCELED"))
}
