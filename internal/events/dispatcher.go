package events

//go:generate go run go.uber.org/mock/mockgen -source=./dispatcher.go -destination=./mocks/dispatcher_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"sage/config"
	"sage/infras/kafka"
	"sage/infras/otel"
	"sage/shared/constant"

	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

// Notifier delivers user-facing notices (emails, in-app messages) for an
// intent. Implementations are external webhooks; failures are logged and the
// message is dropped, never retried in a tight loop.
type Notifier interface {
	Notify(ctx context.Context, intent Intent) error
}

// Scheduler provisions meeting links and conversation channels on accept.
type Scheduler interface {
	Schedule(ctx context.Context, intent Intent) error
}

// Dispatcher consumes the intent topic and routes each intent to the ports
// that care about it.
type Dispatcher struct {
	client    kafka.Client
	cfg       *config.Config
	notifier  Notifier
	scheduler Scheduler
	otel      otel.Otel
}

func NewDispatcher(client kafka.Client, cfg *config.Config, notifier Notifier, scheduler Scheduler, otel otel.Otel) *Dispatcher {
	return &Dispatcher{
		client:    client,
		cfg:       cfg,
		notifier:  notifier,
		scheduler: scheduler,
		otel:      otel,
	}
}

// Run blocks consuming the intent topic until the context is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	d.client.Consume(ctx, d.cfg.Kafka.ConsumerGroup, d.cfg.Kafka.IntentTopic, func(msg kafkaGo.Message) {
		d.handle(ctx, msg)
	})
}

func (d *Dispatcher) handle(ctx context.Context, msg kafkaGo.Message) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".handle")
	defer scope.End()

	var intent Intent
	if err := json.Unmarshal(msg.Value, &intent); err != nil {
		log.Error().Err(err).Str("key", string(msg.Key)).Msg("failed to decode intent, dropping")

		return
	}

	scope.SetAttribute(constant.OtelBookingAttributeKey, intent.BookingID)

	switch intent.Type {
	case IntentMeetingCreate:
		if err := d.scheduler.Schedule(ctx, intent); err != nil {
			log.Error().Err(err).Str("booking_id", intent.BookingID).Msg("failed to provision meeting for accepted booking")
		}
	case IntentBookingCreated, IntentBookingAccepted, IntentBookingRejected, IntentBookingCancelled,
		IntentConversationOpen, IntentEscrowReleased, IntentEscrowRefunded:
		if err := d.notifier.Notify(ctx, intent); err != nil {
			log.Error().Err(err).Str("booking_id", intent.BookingID).Str("type", intent.Type).Msg("failed to deliver notification")
		}
	default:
		log.Warn().Str("type", intent.Type).Msg("unknown intent type, dropping")
	}
}
