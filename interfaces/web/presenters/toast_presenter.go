package presenters

import (
	"strings"
	"time"

	"flightadmin/domain/admin"
	"flightadmin/infrastructure/apiclient"
	"flightadmin/interfaces/web/templates/components/ui"
)

// ErrorPresenter turns failures into toasts.
type ErrorPresenter interface {
	Error(err error) ui.ToastNotificationView
}

// Ensure ToastPresenter implements the interface.
var _ ErrorPresenter = (*ToastPresenter)(nil)

// ToastPresenter handles toast notification view logic and formatting.
type ToastPresenter struct {
	now func() time.Time
}

// NewToastPresenter creates a new toast presenter.
func NewToastPresenter() *ToastPresenter {
	return &ToastPresenter{now: time.Now}
}

// Error builds an error toast carrying the message the user should see.
func (p *ToastPresenter) Error(err error) ui.ToastNotificationView {
	title, message := "Something went wrong", apiclient.UserMessage(err)
	switch {
	case admin.IsInputError(err):
		title, message = "Please check your input", strings.ReplaceAll(err.Error(), "\n", "; ")
	case apiclient.IsValidation(err):
		title = "Please check your input"
	case apiclient.IsNetwork(err):
		title = "Network error"
	}
	return ui.ToastNotificationView{
		Title:     title,
		Message:   message,
		Type:      ui.ToastError,
		Timestamp: p.now(),
	}
}

// Success builds a confirmation toast.
func (p *ToastPresenter) Success(message string) ui.ToastNotificationView {
	return ui.ToastNotificationView{
		Message:   message,
		Type:      ui.ToastSuccess,
		Timestamp: p.now(),
	}
}
