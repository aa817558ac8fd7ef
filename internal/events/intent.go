package events

import (
	"time"
)

// Intent types. An intent is a side effect requested by an already-persisted
// state transition: the transition is the source of truth, the intent is
// fire-and-forget relative to it.
const (
	IntentBookingCreated   = "booking.created"
	IntentBookingAccepted  = "booking.accepted"
	IntentBookingRejected  = "booking.rejected"
	IntentBookingCancelled = "booking.cancelled"
	IntentMeetingCreate    = "meeting.create"
	IntentConversationOpen = "conversation.open"
	IntentEscrowReleased   = "escrow.released"
	IntentEscrowRefunded   = "escrow.refunded"
)

type Intent struct {
	Type      string         `json:"type"`
	BookingID string         `json:"booking_id"`
	PayerID   string         `json:"payer_id,omitempty"`
	PayeeID   string         `json:"payee_id,omitempty"`
	EmittedAt time.Time      `json:"emitted_at"`
	Payload   map[string]any `json:"payload,omitempty"`
}
