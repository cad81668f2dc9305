package application

import (
	"time"

	"github.com/shareit-market/shareit/internal/domain/booking"
	itemDomain "github.com/shareit-market/shareit/internal/domain/item"
	userDomain "github.com/shareit-market/shareit/internal/domain/user"
)

// UserShortDTO is the compact user view embedded in booking responses.
type UserShortDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// ItemShortDTO is the compact item view embedded in booking responses.
type ItemShortDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// BookingDTO is the API representation of a booking. Status is the
// three-valued presentation of the five-valued lifecycle state.
type BookingDTO struct {
	ID     int64        `json:"id"`
	Start  time.Time    `json:"start"`
	End    time.Time    `json:"end"`
	Status string       `json:"status"`
	Booker UserShortDTO `json:"booker"`
	Item   ItemShortDTO `json:"item"`
}

// BookingShortDTO is the compact booking view attached to an item for its
// owner: who booked it, nothing more.
type BookingShortDTO struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// UserDTO is the API representation of a user.
type UserDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ItemDTO is the API representation of an item.
type ItemDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"ownerId"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

// ItemBookingDTO is the item view enriched with booking context and
// comments. LastBooking and NextBooking are filled only for the owner.
type ItemBookingDTO struct {
	ItemDTO
	LastBooking *BookingShortDTO `json:"lastBooking"`
	NextBooking *BookingShortDTO `json:"nextBooking"`
	Comments    []CommentDTO     `json:"comments"`
}

// CommentDTO is the API representation of an item comment.
type CommentDTO struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

// RequestDTO is the API representation of an item request, with the items
// listed in response to it.
type RequestDTO struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requesterId"`
	Created     time.Time `json:"created"`
	Items       []ItemDTO `json:"items"`
}

func toBookingDTO(b *booking.Booking) *BookingDTO {
	return &BookingDTO{
		ID:     b.ID(),
		Start:  b.Start(),
		End:    b.End(),
		Status: string(b.Status()),
		Booker: UserShortDTO{ID: b.Booker().ID, Name: b.Booker().Name},
		Item:   ItemShortDTO{ID: b.Item().ID, Name: b.Item().Name},
	}
}

func toBookingDTOs(list []*booking.Booking) []BookingDTO {
	if list == nil {
		return nil
	}
	dtos := make([]BookingDTO, len(list))
	for i, b := range list {
		dtos[i] = *toBookingDTO(b)
	}
	return dtos
}

func toBookingShortDTO(b *booking.Booking) *BookingShortDTO {
	if b == nil {
		return nil
	}
	return &BookingShortDTO{ID: b.ID(), BookerID: b.Booker().ID}
}

func toUserDTO(u *userDomain.User) *UserDTO {
	return &UserDTO{ID: u.ID(), Name: u.Name(), Email: u.Email()}
}

func toItemDTO(i *itemDomain.Item) ItemDTO {
	return ItemDTO{
		ID:          i.ID(),
		Name:        i.Name(),
		Description: i.Description(),
		Available:   i.Available(),
		OwnerID:     i.OwnerID(),
		RequestID:   i.RequestID(),
	}
}

func toItemDTOs(items []*itemDomain.Item) []ItemDTO {
	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it)
	}
	return dtos
}

func toCommentDTOs(comments []*itemDomain.Comment) []CommentDTO {
	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = CommentDTO{
			ID:         c.ID(),
			Text:       c.Text(),
			AuthorName: c.AuthorName(),
			Created:    c.Created(),
		}
	}
	return dtos
}
