package ui

import "time"

// Toast types.
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// ToastNotificationView is the view model of one toast.
type ToastNotificationView struct {
	Title     string
	Message   string
	Type      string
	Timestamp time.Time
}
