package booking

import "context"

// Repository defines the persistence contract for bookings: a predicate
// store with filter, sort and optional paging.
type Repository interface {
	// Save persists a new booking and assigns its id.
	Save(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking with its item and booker references.
	FindByID(ctx context.Context, id int64) (*Booking, error)

	// UpdateState persists a decided state with a compare-and-swap against
	// the expected prior state. A lost race surfaces as the same
	// already-decided validation error the pre-check raises.
	UpdateState(ctx context.Context, b *Booking, expected State) error

	// FindAll evaluates the predicate over all bookings, sorted, with an
	// optional page. A nil page returns the full result set.
	FindAll(ctx context.Context, p Predicate, s Sort, page *Page) ([]*Booking, error)
}
