package item

import (
	"github.com/shareit-market/shareit/pkg/domain"
)

// Item is the aggregate root for a listed item.
type Item struct {
	id          int64
	ownerID     int64
	name        string
	description string
	available   bool
	requestID   *int64
}

// NewItem creates a listed item for the given owner.
func NewItem(ownerID int64, name, description string, available *bool, requestID *int64) (*Item, error) {
	if available == nil {
		return nil, domain.NewValidationError("No available field!")
	}
	if name == "" {
		return nil, domain.NewValidationError("Item name is required!")
	}
	if description == "" {
		return nil, domain.NewValidationError("Item description is required!")
	}

	return &Item{
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   *available,
		requestID:   requestID,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id, ownerID int64, name, description string, available bool, requestID *int64) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		requestID:   requestID,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() int64 { return i.id }

// SetID assigns the store-generated identifier after insertion.
func (i *Item) SetID(id int64) { i.id = id }

// OwnerID returns the listing user's id.
func (i *Item) OwnerID() int64 { return i.ownerID }

// Name returns the item name.
func (i *Item) Name() string { return i.name }

// Description returns the item description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item can currently be booked.
func (i *Item) Available() bool { return i.available }

// RequestID returns the item request this listing responds to, or nil.
func (i *Item) RequestID() *int64 { return i.requestID }

// ApplyPatch merges non-nil fields into the item, keeping old values for
// absent ones.
func (i *Item) ApplyPatch(name, description *string, available *bool) {
	if name != nil {
		i.name = *name
	}
	if description != nil {
		i.description = *description
	}
	if available != nil {
		i.available = *available
	}
}
