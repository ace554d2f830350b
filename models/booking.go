package models

import "time"

// BookingStatus is the lifecycle state of a booking record.
type BookingStatus string

const (
	BookingStatusCreated     BookingStatus = "created"
	BookingStatusRescheduled BookingStatus = "rescheduled"
	BookingStatusCancelled   BookingStatus = "cancelled"
)

// Booking is the authoritative record of a confirmed consultation.
// Cancellation is logical: the record is kept for audit, the interval released.
type Booking struct {
	Code             string        `bson:"code" json:"code"` // e.g. "NL-A742"
	Topic            string        `bson:"topic" json:"topic"`
	Date             string        `bson:"date" json:"date"` // "2006-01-02"
	Start            int           `bson:"start" json:"start"`
	End              int           `bson:"end" json:"end"`
	Status           BookingStatus `bson:"status" json:"status"`
	IsWaitlist       bool          `bson:"is_waitlist" json:"isWaitlist"`
	ExternalEventRef string        `bson:"external_event_ref,omitempty" json:"externalEventRef,omitempty"`
	CreatedAt        time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt        time.Time     `bson:"updated_at" json:"updatedAt"`
}

// Active reports whether the booking currently occupies its interval.
// Waitlisted bookings never block availability for others.
func (b Booking) Active() bool {
	return b.Status != BookingStatusCancelled && !b.IsWaitlist
}

// Slot returns the booked interval as a Slot value.
func (b Booking) Slot() Slot {
	return Slot{Date: b.Date, Start: b.Start, End: b.End, Label: SlotLabel(b.Start, b.End)}
}
