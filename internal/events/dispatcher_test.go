package events_test

import (
	"context"
	"encoding/json"
	"testing"

	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sage/config"
	kafkaMocks "sage/infras/kafka/mocks"
	"sage/infras/otel/mocks"
	"sage/internal/events"
	eventsMocks "sage/internal/events/mocks"
)

func intentMessage(t *testing.T, intent events.Intent) kafkaGo.Message {
	t.Helper()

	value, err := json.Marshal(intent)
	assert.NoError(t, err)

	return kafkaGo.Message{Key: []byte(intent.BookingID), Value: value}
}

func TestDispatcher_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := kafkaMocks.NewMockClient(ctrl)
	mockNotifier := eventsMocks.NewMockNotifier(ctrl)
	mockScheduler := eventsMocks.NewMockScheduler(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.ConsumerGroup = "sage"
	cfg.Kafka.IntentTopic = "booking-intents"

	dispatcher := events.NewDispatcher(mockClient, cfg, mockNotifier, mockScheduler, mocks.NewOtel())

	messages := []kafkaGo.Message{
		intentMessage(t, events.Intent{Type: events.IntentMeetingCreate, BookingID: "b-1"}),
		intentMessage(t, events.Intent{Type: events.IntentBookingAccepted, BookingID: "b-1"}),
		intentMessage(t, events.Intent{Type: events.IntentEscrowReleased, BookingID: "b-2"}),
		{Key: []byte("b-3"), Value: []byte("not json")},
		intentMessage(t, events.Intent{Type: "something-new", BookingID: "b-4"}),
	}

	mockClient.EXPECT().
		Consume(gomock.Any(), "sage", "booking-intents", gomock.Any()).
		Do(func(_ context.Context, _, _ string, handler func(kafkaGo.Message)) {
			for _, msg := range messages {
				handler(msg)
			}
		})

	mockScheduler.EXPECT().
		Schedule(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, intent events.Intent) error {
			assert.Equal(t, "b-1", intent.BookingID)

			return nil
		})

	mockNotifier.EXPECT().
		Notify(gomock.Any(), gomock.Any()).
		Return(nil).
		Times(2)

	// Malformed and unknown messages are dropped without touching any port.
	dispatcher.Run(context.Background())
}
