package item

import "context"

// Page addresses a page of results by index.
type Page struct {
	Number int
	Size   int
}

// Repository defines the persistence contract for items.
type Repository interface {
	// Save persists a new item and assigns its id.
	Save(ctx context.Context, i *Item) error

	// Update persists changes to an existing item.
	Update(ctx context.Context, i *Item) error

	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id int64) (*Item, error)

	// FindByOwner retrieves a user's items, optionally paged.
	FindByOwner(ctx context.Context, ownerID int64, page *Page) ([]*Item, error)

	// Search finds available items whose name or description contains the
	// text, case-insensitively, optionally paged.
	Search(ctx context.Context, text string, page *Page) ([]*Item, error)

	// FindByRequestID retrieves items listed in response to a request.
	FindByRequestID(ctx context.Context, requestID int64) ([]*Item, error)
}

// CommentRepository defines the persistence contract for item comments.
type CommentRepository interface {
	// Save persists a new comment and assigns its id.
	Save(ctx context.Context, c *Comment) error

	// FindByItemID retrieves all comments for an item.
	FindByItemID(ctx context.Context, itemID int64) ([]*Comment, error)
}
