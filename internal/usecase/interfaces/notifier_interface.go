package interfaces

import (
	"context"
	"time"
)

const (
	NotificationSeverityInfo    = "info"
	NotificationSeveritySuccess = "success"
	NotificationSeverityWarning = "warning"
	NotificationSeverityError   = "error"
)

// Notification is a fire-and-forget event for the buyer-facing channel and
// the back office (order created, reconciliation needed, ...).
type Notification struct {
	Title       string
	Description string
	Severity    string
	Duration    time.Duration
	Metadata    map[string]string
}

// INotifier is the notification sink. Delivery failures are the sink's
// problem (logged, never propagated); callers do not consult a result.

type INotifier interface {
	Notify(ctx context.Context, n Notification)
}
