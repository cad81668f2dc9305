package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	bookingDomain "github.com/shareit-market/shareit/internal/domain/booking"
	"github.com/shareit-market/shareit/pkg/domain"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	ItemID    int64      `gorm:"index;not null"`
	BookerID  int64      `gorm:"index;not null"`
	State     string     `gorm:"size:16;index;not null"`
	StartDate time.Time  `gorm:"column:start_date;not null"`
	EndDate   time.Time  `gorm:"column:end_date;not null"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
	Item      *ItemModel `gorm:"foreignKey:ItemID"`
	Booker    *UserModel `gorm:"foreignKey:BookerID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// predicate store.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// predicateColumns maps predicate fields to qualified SQL columns. The
// item_owner_id field lives on the joined items table.
var predicateColumns = map[bookingDomain.Field]string{
	bookingDomain.FieldBookerID:  "bookings.booker_id",
	bookingDomain.FieldItemID:    "bookings.item_id",
	bookingDomain.FieldItemOwner: "items.owner_id",
	bookingDomain.FieldState:     "bookings.state",
	bookingDomain.FieldStart:     "bookings.start_date",
	bookingDomain.FieldEnd:       "bookings.end_date",
}

// CompilePredicate renders a predicate tree as a SQL condition with
// positional arguments.
func CompilePredicate(p bookingDomain.Predicate) (string, []any, error) {
	if p.Cond != nil {
		col, ok := predicateColumns[p.Cond.Field]
		if !ok {
			return "", nil, fmt.Errorf("unknown predicate field: %s", p.Cond.Field)
		}
		if p.Cond.Op == bookingDomain.OpNotNull {
			return col + " IS NOT NULL", nil, nil
		}
		return fmt.Sprintf("%s %s ?", col, p.Cond.Op), []any{p.Cond.Value}, nil
	}

	if p.Left == nil || p.Right == nil {
		return "", nil, errors.New("malformed predicate: junction without operands")
	}
	left, leftArgs, err := CompilePredicate(*p.Left)
	if err != nil {
		return "", nil, err
	}
	right, rightArgs, err := CompilePredicate(*p.Right)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("(%s %s %s)", left, p.Join, right), append(leftArgs, rightArgs...), nil
}

func orderClause(s bookingDomain.Sort) (string, error) {
	col, ok := predicateColumns[s.Field]
	if !ok {
		return "", fmt.Errorf("unknown sort field: %s", s.Field)
	}
	if s.Desc {
		return col + " DESC", nil
	}
	return col + " ASC", nil
}

// Save persists a new booking and assigns its generated id.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	now := time.Now().UTC()
	model := BookingModel{
		ItemID:    b.Item().ID,
		BookerID:  b.Booker().ID,
		State:     string(b.State()),
		StartDate: b.Start(),
		EndDate:   b.End(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	b.SetID(model.ID)
	return nil
}

// FindByID retrieves a booking with its item and booker loaded.
func (r *GormBookingRepository) FindByID(ctx context.Context, id int64) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("failed to find booking by id: %w", err)
	}
	return toDomainBooking(&model)
}

// UpdateState persists the decided state, guarded by a compare-and-swap on
// the expected prior state so racing decisions cannot both win.
func (r *GormBookingRepository) UpdateState(ctx context.Context, b *bookingDomain.Booking, expected bookingDomain.State) error {
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND state = ?", b.ID(), string(expected)).
		Updates(map[string]any{
			"state":      string(b.State()),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewValidationError("Owner has already checked this booking!")
	}
	return nil
}

// FindAll evaluates a predicate over the bookings table joined with items,
// sorted, with an optional page.
func (r *GormBookingRepository) FindAll(ctx context.Context, p bookingDomain.Predicate, s bookingDomain.Sort, page *bookingDomain.Page) ([]*bookingDomain.Booking, error) {
	cond, args, err := CompilePredicate(p)
	if err != nil {
		return nil, err
	}
	order, err := orderClause(s)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Joins("JOIN items ON items.id = bookings.item_id").
		Where(cond, args...).
		Order(order)
	if page != nil {
		q = q.Offset(page.Offset()).Limit(page.Size)
	}

	var models []BookingModel
	if err := q.Preload("Item").Preload("Booker").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bk, err := toDomainBooking(&models[i])
		if err != nil {
			return nil, err
		}
		bookings[i] = bk
	}
	return bookings, nil
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	itemRef := bookingDomain.ItemRef{ID: m.ItemID}
	if m.Item != nil {
		itemRef.OwnerID = m.Item.OwnerID
		itemRef.Name = m.Item.Name
		itemRef.Available = m.Item.Available
	}
	bookerRef := bookingDomain.BookerRef{ID: m.BookerID}
	if m.Booker != nil {
		bookerRef.Name = m.Booker.Name
	}

	state := bookingDomain.State(m.State)
	if !state.IsValid() {
		return nil, fmt.Errorf("invalid booking state in storage: %s", m.State)
	}
	return bookingDomain.Reconstruct(m.ID, itemRef, bookerRef, m.StartDate, m.EndDate, state), nil
}
