package events

//go:generate go run go.uber.org/mock/mockgen -source=./publisher.go -destination=./mocks/publisher_mock.go -package=mocks

import (
	"context"
	"fmt"
	"sage/config"
	"sage/infras/kafka"
	"sage/infras/otel"
	"sage/shared/constant"

	"github.com/rs/zerolog/log"
)

// Publisher hands side-effect intents to the intent topic. Publishing happens
// after the owning transition is persisted; a publish failure is logged by
// the caller and never rolls the transition back.
type Publisher interface {
	Publish(ctx context.Context, intents ...Intent) error
}

type publisherImpl struct {
	client kafka.Client
	cfg    *config.Config
	otel   otel.Otel
}

func NewPublisher(client kafka.Client, cfg *config.Config, otel otel.Otel) Publisher {
	return &publisherImpl{
		client: client,
		cfg:    cfg,
		otel:   otel,
	}
}

func (p *publisherImpl) Publish(ctx context.Context, intents ...Intent) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(intents) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(intents))
	for _, intent := range intents {
		messages = append(messages, kafka.Message{
			Key:   intent.BookingID,
			Value: intent,
		})
	}

	if err = p.client.SendMessages(ctx, p.cfg.Kafka.IntentTopic, messages...); err != nil {
		log.Error().Err(err).Int("intents", len(intents)).Msg("failed to publish side-effect intents")

		return fmt.Errorf("failed to publish intents: %w", err)
	}

	return nil
}
