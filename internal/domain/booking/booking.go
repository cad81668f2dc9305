package booking

import (
	"time"

	"github.com/shareit-market/shareit/pkg/domain"
)

// ItemRef is the slice of the item catalog a booking needs: identity,
// ownership and the availability flag captured at validation time.
type ItemRef struct {
	ID        int64
	OwnerID   int64
	Name      string
	Available bool
}

// BookerRef identifies the user requesting the item.
type BookerRef struct {
	ID   int64
	Name string
}

// Booking is the aggregate root for the booking domain. The time window is
// fixed at creation; only the lifecycle state ever changes afterward.
type Booking struct {
	id     int64
	item   ItemRef
	booker BookerRef
	start  time.Time
	end    time.Time
	state  State
}

// NewBooking creates a WAITING booking after validating the time window.
// The window must be a non-empty, strictly future interval.
func NewBooking(item ItemRef, booker BookerRef, start, end, now time.Time) (*Booking, error) {
	if start.IsZero() || end.IsZero() ||
		start.Equal(end) || end.Before(start) ||
		!start.After(now) {
		return nil, domain.NewValidationError("Wrong date!")
	}

	return &Booking{
		item:   item,
		booker: booker,
		start:  start,
		end:    end,
		state:  StateWaiting,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(id int64, item ItemRef, booker BookerRef, start, end time.Time, state State) *Booking {
	return &Booking{
		id:     id,
		item:   item,
		booker: booker,
		start:  start,
		end:    end,
		state:  state,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() int64 { return b.id }

// SetID assigns the store-generated identifier after insertion.
func (b *Booking) SetID(id int64) { b.id = id }

// Item returns the booked item reference.
func (b *Booking) Item() ItemRef { return b.item }

// Booker returns the requesting user reference.
func (b *Booking) Booker() BookerRef { return b.booker }

// Start returns the beginning of the booked window.
func (b *Booking) Start() time.Time { return b.start }

// End returns the end of the booked window.
func (b *Booking) End() time.Time { return b.end }

// State returns the current lifecycle state.
func (b *Booking) State() State { return b.state }

// Status returns the presentation status derived from the lifecycle state.
func (b *Booking) Status() Status { return DisplayStatus(b.state) }

// Decide applies the owner's approval decision. A rejection goes straight
// to REJECTED; an approval lands in the time bucket the window occupies at
// decision time. Only a WAITING booking can be decided.
func (b *Booking) Decide(approved bool, now time.Time) error {
	if b.state != StateWaiting {
		return domain.NewValidationError("Owner has already checked this booking!")
	}

	next := StateRejected
	if approved {
		next = DeriveTimeState(b.start, b.end, now)
	}
	b.state = next
	return nil
}
