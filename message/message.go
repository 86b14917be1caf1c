package message

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// NewPubSub returns the in-process Pub/Sub carrying machine events. The
// machine is a single process with no broker, so the publisher and
// every subscriber share this one instance.
func NewPubSub(logger watermill.LoggerAdapter) *gochannel.GoChannel {
	return gochannel.NewGoChannel(gochannel.Config{}, logger)
}

// NewBus builds the event bus the API layer publishes through. Topics
// are the event struct names, matching the processor's subscriptions.
func NewBus(publisher message.Publisher, logger watermill.LoggerAdapter) (*cqrs.EventBus, error) {
	return cqrs.NewEventBusWithConfig(publisher, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return params.EventName, nil
		},
		Marshaler: cqrs.JSONMarshaler{
			GenerateName: cqrs.StructName,
		},
		Logger: logger,
	})
}

// Receipt carries the fields the receipt printer renders.
type Receipt struct {
	TicketID    string
	Origin      string
	Destination string
	TicketType  string
	Price       string
}

type ReceiptIssuer interface {
	IssueReceipt(ctx context.Context, idempotencyKey string, receipt Receipt) error
}

type TrackerAppender interface {
	AppendRow(ctx context.Context, sheetName string, row []string) error
}
