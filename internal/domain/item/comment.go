package item

import (
	"time"

	"github.com/shareit-market/shareit/pkg/domain"
)

// Comment is feedback left on an item by a past booker.
type Comment struct {
	id         int64
	itemID     int64
	authorID   int64
	authorName string
	text       string
	created    time.Time
}

// NewComment creates a comment at the given time.
func NewComment(itemID, authorID int64, authorName, text string, now time.Time) (*Comment, error) {
	if text == "" {
		return nil, domain.NewValidationError("Comment text is required!")
	}
	return &Comment{
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		created:    now,
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data.
func ReconstructComment(id, itemID, authorID int64, authorName, text string, created time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		created:    created,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() int64 { return c.id }

// SetID assigns the store-generated identifier after insertion.
func (c *Comment) SetID(id int64) { c.id = id }

// ItemID returns the commented item's id.
func (c *Comment) ItemID() int64 { return c.itemID }

// AuthorID returns the comment author's user id.
func (c *Comment) AuthorID() int64 { return c.authorID }

// AuthorName returns the comment author's display name.
func (c *Comment) AuthorName() string { return c.authorName }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// Created returns the comment timestamp.
func (c *Comment) Created() time.Time { return c.created }
