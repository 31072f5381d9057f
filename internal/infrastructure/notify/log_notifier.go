package notify

import (
	"context"
	"log"

	"loja_checkout/internal/usecase/interfaces"
)

// LogNotifier is the fallback sink used when no SNS topic is configured.
type LogNotifier struct{}

var _ interfaces.INotifier = (*LogNotifier)(nil)

func NewLogNotifier() *LogNotifier { return &LogNotifier{} }

func (n *LogNotifier) Notify(_ context.Context, notification interfaces.Notification) {
	log.Printf("[notify][log] severity=%s title=%q description=%q metadata=%v",
		notification.Severity, notification.Title, notification.Description, notification.Metadata)
}
