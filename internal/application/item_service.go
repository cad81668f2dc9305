package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/shareit-market/shareit/internal/domain/booking"
	itemDomain "github.com/shareit-market/shareit/internal/domain/item"
	userDomain "github.com/shareit-market/shareit/internal/domain/user"
	"github.com/shareit-market/shareit/pkg/domain"
)

// ItemService manages the item catalog: listings, search, owner views with
// booking context, and comments from past bookers.
type ItemService struct {
	items    itemDomain.Repository
	comments itemDomain.CommentRepository
	bookings booking.Repository
	users    userDomain.Repository
	logger   *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(
	items itemDomain.Repository,
	comments itemDomain.CommentRepository,
	bookings booking.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		items:    items,
		comments: comments,
		bookings: bookings,
		users:    users,
		logger:   logger,
	}
}

// CreateItemRequest carries a new listing. Available is a pointer so an
// absent flag is distinguishable from false.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

// ItemPatch carries a partial update; nil fields keep their old values.
type ItemPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateItem lists a new item for the given owner.
func (s *ItemService) CreateItem(ctx context.Context, ownerID int64, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, req.Available, req.RequestID)
	if err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, it); err != nil {
		return nil, err
	}

	s.logger.Info("item created",
		zap.Int64("item_id", it.ID()),
		zap.Int64("owner_id", ownerID),
	)
	dto := toItemDTO(it)
	return &dto, nil
}

// UpdateItem patches a listing. Only the owner may change it; anyone else
// is told the item does not exist.
func (s *ItemService) UpdateItem(ctx context.Context, actorID, itemID int64, patch ItemPatch) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.OwnerID() != actorID {
		return nil, domain.NewAccessDeniedError("Item belongs to another user!")
	}

	it.ApplyPatch(patch.Name, patch.Description, patch.Available)
	if err := s.items.Update(ctx, it); err != nil {
		return nil, err
	}

	dto := toItemDTO(it)
	return &dto, nil
}

// GetItemByID returns an item with its comments. The owner additionally
// sees the item's last and next bookings.
func (s *ItemService) GetItemByID(ctx context.Context, actorID, itemID int64) (*ItemBookingDTO, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return s.enrichItem(ctx, it, it.OwnerID() == actorID)
}

// GetAllItems lists the user's own items with booking context and
// comments, ordered by id, optionally paged.
func (s *ItemService) GetAllItems(ctx context.Context, ownerID int64, from, size *int) ([]ItemBookingDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	page, err := planItemPage(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, err
	}

	dtos := make([]ItemBookingDTO, len(items))
	for i, it := range items {
		dto, err := s.enrichItem(ctx, it, true)
		if err != nil {
			return nil, err
		}
		dtos[i] = *dto
	}
	return dtos, nil
}

// SearchItems finds available items matching the text in name or
// description. Empty text matches nothing.
func (s *ItemService) SearchItems(ctx context.Context, actorID int64, text string, from, size *int) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, actorID); err != nil {
		return nil, err
	}
	if text == "" {
		return []ItemDTO{}, nil
	}

	page, err := planItemPage(from, size)
	if err != nil {
		return nil, err
	}

	items, err := s.items.Search(ctx, text, page)
	if err != nil {
		return nil, err
	}
	return toItemDTOs(items), nil
}

// AddComment posts feedback on an item. Only a user whose booking of the
// item already ended, and was not rejected, may comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID int64, text string) (*CommentDTO, error) {
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	finished, err := s.bookings.FindAll(ctx,
		booking.BookerIs(authorID).
			And(booking.ItemIs(itemID)).
			And(booking.StateNot(booking.StateRejected)).
			And(booking.EndsBefore(now)),
		booking.ByEndDesc,
		&booking.Page{Number: 0, Size: 1},
	)
	if err != nil {
		return nil, err
	}
	if len(finished) == 0 {
		return nil, domain.NewValidationError("No booking for this item/user")
	}

	c, err := itemDomain.NewComment(itemID, authorID, author.Name(), text, now)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("comment added",
		zap.Int64("comment_id", c.ID()),
		zap.Int64("item_id", itemID),
		zap.Int64("author_id", authorID),
	)
	return &CommentDTO{
		ID:         c.ID(),
		Text:       c.Text(),
		AuthorName: c.AuthorName(),
		Created:    c.Created(),
	}, nil
}

// enrichItem attaches comments and, for the owner, the item's last booking
// (latest already started) and next booking (soonest yet to start).
func (s *ItemService) enrichItem(ctx context.Context, it *itemDomain.Item, forOwner bool) (*ItemBookingDTO, error) {
	comments, err := s.comments.FindByItemID(ctx, it.ID())
	if err != nil {
		return nil, err
	}

	dto := ItemBookingDTO{
		ItemDTO:  toItemDTO(it),
		Comments: toCommentDTOs(comments),
	}
	if !forOwner {
		return &dto, nil
	}

	now := time.Now().UTC()
	firstOf := &booking.Page{Number: 0, Size: 1}

	last, err := s.bookings.FindAll(ctx,
		booking.ItemIs(it.ID()).And(booking.StartsBefore(now)),
		booking.ByEndDesc, firstOf)
	if err != nil {
		return nil, err
	}
	next, err := s.bookings.FindAll(ctx,
		booking.ItemIs(it.ID()).And(booking.StartsAfter(now)),
		booking.ByStartAsc, firstOf)
	if err != nil {
		return nil, err
	}

	if len(last) > 0 {
		dto.LastBooking = toBookingShortDTO(last[0])
	}
	if len(next) > 0 {
		dto.NextBooking = toBookingShortDTO(next[0])
	}
	return &dto, nil
}

func planItemPage(from, size *int) (*itemDomain.Page, error) {
	if from == nil || size == nil {
		return nil, nil
	}
	if *from < 0 || *size <= 0 {
		return nil, domain.NewValidationError("Parameters should be natural!")
	}
	return &itemDomain.Page{Number: *from / *size, Size: *size}, nil
}
