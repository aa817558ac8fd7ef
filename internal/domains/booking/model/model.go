package model

import (
	"time"

	"sage/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FlagTableName  = "booking_flags"
	FlagEntityName = "booking_flag"

	FieldID             = "id"
	FieldListingID      = "listing_id"
	FieldPayerID        = "payer_id"
	FieldPayeeID        = "payee_id"
	FieldSlotID         = "slot_id"
	FieldSessionAt      = "session_at"
	FieldTotalAmount    = "total_amount"
	FieldPayeeAmount    = "payee_amount"
	FieldPlatformFee    = "platform_fee"
	FieldHoldRef        = "hold_ref"
	FieldTransferRef    = "transfer_ref"
	FieldReviewDeadline = "review_deadline"
	FieldAcceptedAt     = "accepted_at"
	FieldStatus         = "status"
	FieldPaymentStatus  = "payment_status"

	FieldFlagBookingID = "booking_id"
	FieldFlagReason    = "reason"
	FieldFlagResolved  = "resolved"
)

// Booking statuses. Completed, cancelled and refunded payments are terminal;
// under_review parks a booking for manual resolution.
const (
	StatusPending     = "pending"
	StatusConfirmed   = "confirmed"
	StatusCompleted   = "completed"
	StatusCancelled   = "cancelled"
	StatusUnderReview = "under_review"
)

// Payment statuses. Legal edges: pending -> held -> {released | refunded}.
const (
	PaymentPending  = "pending"
	PaymentHeld     = "held"
	PaymentReleased = "released"
	PaymentRefunded = "refunded"
)

// Booking is the aggregate root of the escrow core. Amounts are minor units,
// fixed once at creation from the commission lookup and never recomputed.
// ReviewDeadline is immutable once set. AcceptedAt distinguishes the
// pre-acceptance and post-acceptance halves of the confirmed status.
type Booking struct {
	ID             string     `db:"id"`
	ListingID      string     `db:"listing_id"`
	PayerID        string     `db:"payer_id"`
	PayeeID        string     `db:"payee_id"`
	SlotID         string     `db:"slot_id"`
	SessionAt      time.Time  `db:"session_at"`
	TotalAmount    int64      `db:"total_amount"`
	PayeeAmount    int64      `db:"payee_amount"`
	PlatformFee    int64      `db:"platform_fee"`
	HoldRef        *string    `db:"hold_ref"`
	TransferRef    *string    `db:"transfer_ref"`
	ReviewDeadline time.Time  `db:"review_deadline"`
	AcceptedAt     *time.Time `db:"accepted_at"`
	Status         string     `db:"status"`
	PaymentStatus  string     `db:"payment_status"`
	model.Metadata
}

// Accepted reports whether the payee has accepted the booking.
func (b *Booking) Accepted() bool {
	return b.AcceptedAt != nil
}

// Flag marks a booking for manual operator follow-up. Flags are written by
// the failure-recovery paths and the reconciliation sweep and are never
// silently dropped.
type Flag struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	Reason    string `db:"reason"`
	Resolved  bool   `db:"resolved"`
	model.Metadata
}
