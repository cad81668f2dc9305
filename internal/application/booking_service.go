package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shareit-market/shareit/internal/domain/booking"
	itemDomain "github.com/shareit-market/shareit/internal/domain/item"
	userDomain "github.com/shareit-market/shareit/internal/domain/user"
	"github.com/shareit-market/shareit/internal/events"
	"github.com/shareit-market/shareit/pkg/domain"
)

// UserDirectory answers identity questions for the booking workflows.
type UserDirectory interface {
	// UserExists returns a not-found error for unknown user ids.
	UserExists(ctx context.Context, id int64) error
}

// ItemCatalog resolves items and ownership for the booking workflows.
type ItemCatalog interface {
	// GetItem resolves an item reference or returns a not-found error.
	GetItem(ctx context.Context, id int64) (booking.ItemRef, error)

	// OwnsItems reports whether the user has listed at least one item.
	OwnsItems(ctx context.Context, ownerID int64) (bool, error)
}

type userDirectory struct {
	users userDomain.Repository
}

// NewUserDirectory adapts the user store into a directory.
func NewUserDirectory(users userDomain.Repository) UserDirectory {
	return userDirectory{users: users}
}

func (d userDirectory) UserExists(ctx context.Context, id int64) error {
	_, err := d.users.FindByID(ctx, id)
	return err
}

type itemCatalog struct {
	items itemDomain.Repository
}

// NewItemCatalog adapts the item store into a catalog.
func NewItemCatalog(items itemDomain.Repository) ItemCatalog {
	return itemCatalog{items: items}
}

func (c itemCatalog) GetItem(ctx context.Context, id int64) (booking.ItemRef, error) {
	it, err := c.items.FindByID(ctx, id)
	if err != nil {
		return booking.ItemRef{}, err
	}
	return booking.ItemRef{
		ID:        it.ID(),
		OwnerID:   it.OwnerID(),
		Name:      it.Name(),
		Available: it.Available(),
	}, nil
}

func (c itemCatalog) OwnsItems(ctx context.Context, ownerID int64) (bool, error) {
	items, err := c.items.FindByOwner(ctx, ownerID, nil)
	if err != nil {
		return false, err
	}
	return len(items) > 0, nil
}

// BookingService drives the booking lifecycle and answers state-filtered
// booking queries for both sides of a booking.
type BookingService struct {
	bookings  booking.Repository
	directory UserDirectory
	catalog   ItemCatalog
	publisher events.Publisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings booking.Repository,
	directory UserDirectory,
	catalog ItemCatalog,
	publisher events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		directory: directory,
		catalog:   catalog,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBookingRequest carries the booker's requested time window.
type CreateBookingRequest struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

// CreateBooking books an item for the requesting user. The booking starts
// out WAITING for the owner's decision.
func (s *BookingService) CreateBooking(ctx context.Context, bookerID int64, req CreateBookingRequest) (*BookingDTO, error) {
	if err := s.directory.UserExists(ctx, bookerID); err != nil {
		return nil, err
	}

	item, err := s.catalog.GetItem(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, domain.NewValidationError("Item is not available for booking!")
	}
	if item.OwnerID == bookerID {
		return nil, domain.NewAccessDeniedError("Owner cannot book it's item!")
	}

	b, err := booking.NewBooking(item, booking.BookerRef{ID: bookerID}, req.Start, req.End, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	// Reload to pick up the item and booker names for the response.
	saved, err := s.bookings.FindByID(ctx, b.ID())
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", saved.ID()),
		zap.Int64("item_id", item.ID),
		zap.Int64("booker_id", bookerID),
	)
	s.publisher.Publish(ctx, events.BookingCreated, bookingEvent(saved))

	return toBookingDTO(saved), nil
}

// UpdateBookingStatus applies the owner's approve-or-reject decision to a
// WAITING booking. Approval lands the booking in the time bucket its window
// occupies right now; rejection is terminal.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, actorID, bookingID int64, approved bool) (*BookingDTO, error) {
	if err := s.directory.UserExists(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.State() != booking.StateWaiting {
		return nil, domain.NewValidationError("Owner has already checked this booking!")
	}
	if b.Item().OwnerID != actorID {
		return nil, domain.NewAccessDeniedError("Only item's owner can approve booking!")
	}

	if err := b.Decide(approved, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateState(ctx, b, booking.StateWaiting); err != nil {
		return nil, err
	}

	eventType := events.BookingRejected
	if approved {
		eventType = events.BookingApproved
	}
	s.logger.Info("booking decided",
		zap.Int64("booking_id", b.ID()),
		zap.Bool("approved", approved),
		zap.String("state", b.State().String()),
	)
	s.publisher.Publish(ctx, eventType, bookingEvent(b))

	return toBookingDTO(b), nil
}

// GetBooking returns a booking to its booker or the item's owner. Anyone
// else learns nothing, not even that the booking exists.
func (s *BookingService) GetBooking(ctx context.Context, actorID, bookingID int64) (*BookingDTO, error) {
	if err := s.directory.UserExists(ctx, actorID); err != nil {
		return nil, err
	}

	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.Booker().ID != actorID && b.Item().OwnerID != actorID {
		return nil, domain.NewAccessDeniedError("Wrong booking id for that user!")
	}
	return toBookingDTO(b), nil
}

// GetAllBookings lists the user's own bookings under the given state
// filter, optionally paged.
func (s *BookingService) GetAllBookings(ctx context.Context, bookerID int64, filter booking.StateFilter, from, size *int) ([]BookingDTO, error) {
	if err := s.directory.UserExists(ctx, bookerID); err != nil {
		return nil, err
	}

	page, err := planPage(from, size)
	if err != nil {
		return nil, err
	}
	pred, sort := planStateQuery(filter, time.Now().UTC())

	list, err := s.bookings.FindAll(ctx, booking.BookerIs(bookerID).And(pred), sort, page)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(list), nil
}

// GetAllBookingsForAllItems lists bookings across every item the user owns
// under the given state filter, optionally paged. An owner with no items
// gets a nil result.
func (s *BookingService) GetAllBookingsForAllItems(ctx context.Context, ownerID int64, filter booking.StateFilter, from, size *int) ([]BookingDTO, error) {
	if err := s.directory.UserExists(ctx, ownerID); err != nil {
		return nil, err
	}

	owns, err := s.catalog.OwnsItems(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, nil
	}

	page, err := planPage(from, size)
	if err != nil {
		return nil, err
	}
	pred, sort := planStateQuery(filter, time.Now().UTC())

	list, err := s.bookings.FindAll(ctx, booking.ItemOwnerIs(ownerID).And(pred), sort, page)
	if err != nil {
		return nil, err
	}
	return toBookingDTOs(list), nil
}

// planStateQuery translates a state filter into a predicate and sort order.
// Time-bucket filters also match by the live clock, so an approved booking
// whose stored bucket has gone stale still shows up in the right view.
func planStateQuery(filter booking.StateFilter, now time.Time) (booking.Predicate, booking.Sort) {
	sort := booking.ByStartDesc
	var pred booking.Predicate

	switch filter {
	case booking.FilterWaiting:
		pred = booking.StateIs(booking.StateWaiting)
	case booking.FilterRejected:
		pred = booking.StateIs(booking.StateRejected)
	case booking.FilterCurrent:
		pred = booking.StateIs(booking.StateCurrent).Or(booking.Spans(now))
		sort = booking.ByStartAsc
	case booking.FilterPast:
		pred = booking.StateIs(booking.StatePast).Or(booking.EndsBefore(now))
	case booking.FilterFuture:
		pred = booking.StateIs(booking.StateFuture).Or(booking.StartsAfter(now))
	default:
		pred = booking.AnyState()
	}
	return pred, sort
}

// planPage validates an optional from/size pair. Both absent means the
// full result set; a negative offset or non-positive size is rejected.
func planPage(from, size *int) (*booking.Page, error) {
	if from == nil || size == nil {
		return nil, nil
	}
	if *from < 0 || *size <= 0 {
		return nil, domain.NewValidationError("Parameters should be natural!")
	}
	p := booking.PageFromOffset(*from, *size)
	return &p, nil
}

func bookingEvent(b *booking.Booking) events.BookingEvent {
	return events.BookingEvent{
		BookingID:  b.ID(),
		ItemID:     b.Item().ID,
		BookerID:   b.Booker().ID,
		OwnerID:    b.Item().OwnerID,
		Start:      b.Start(),
		End:        b.End(),
		State:      b.State().String(),
		OccurredAt: time.Now().UTC(),
	}
}
