package notify

import (
	"context"
	"encoding/json"
	"log"

	"loja_checkout/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSNotifier publishes notifications to an SNS topic consumed by the
// storefront notification service. Fire-and-forget: publish failures are
// logged and swallowed, callers never see them.
type SNSNotifier struct {
	client   *sns.Client
	topicARN string
}

var _ interfaces.INotifier = (*SNSNotifier)(nil)

func NewSNSNotifier(cfg aws.Config, topicARN string) *SNSNotifier {
	return &SNSNotifier{
		client:   sns.NewFromConfig(cfg),
		topicARN: topicARN,
	}
}

func (n *SNSNotifier) Notify(ctx context.Context, notification interfaces.Notification) {
	payload := map[string]any{
		"title":       notification.Title,
		"description": notification.Description,
		"severity":    notification.Severity,
		"duration_ms": notification.Duration.Milliseconds(),
	}
	for k, v := range notification.Metadata {
		payload[k] = v
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[notify][sns] marshal failed err=%v", err)
		return
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"severity": {
				DataType:    aws.String("String"),
				StringValue: aws.String(notification.Severity),
			},
		},
	})
	if err != nil {
		log.Printf("[notify][sns] publish failed severity=%s err=%v", notification.Severity, err)
		return
	}
	log.Printf("[notify][sns] published severity=%s title=%q", notification.Severity, notification.Title)
}
