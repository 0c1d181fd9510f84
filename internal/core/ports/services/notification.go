package services

import "time"

// NotificationKind is the severity shown to the operator.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
	NotifyInfo    NotificationKind = "info"
	NotifyWarning NotificationKind = "warning"
)

// Notifier surfaces workflow outcomes to the operator. Calls are
// fire-and-forget; workflows never wait on delivery.
type Notifier interface {
	Notify(kind NotificationKind, message string, duration time.Duration)
}
