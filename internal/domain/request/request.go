package request

import (
	"context"
	"time"

	"github.com/shareit-market/shareit/pkg/domain"
)

// Request asks the community for an item that is not yet in the catalog.
type Request struct {
	id          int64
	requesterID int64
	description string
	created     time.Time
}

// NewRequest creates a request timestamped at now.
func NewRequest(requesterID int64, description string, now time.Time) (*Request, error) {
	if description == "" {
		return nil, domain.NewValidationError("Request description is required!")
	}
	return &Request{
		requesterID: requesterID,
		description: description,
		created:     now,
	}, nil
}

// Reconstruct rebuilds a Request from persistence data (no validation).
func Reconstruct(id, requesterID int64, description string, created time.Time) *Request {
	return &Request{
		id:          id,
		requesterID: requesterID,
		description: description,
		created:     created,
	}
}

// ID returns the request's unique identifier.
func (r *Request) ID() int64 { return r.id }

// SetID assigns the store-generated identifier after insertion.
func (r *Request) SetID(id int64) { r.id = id }

// RequesterID returns the requesting user's id.
func (r *Request) RequesterID() int64 { return r.requesterID }

// Description returns what the requester is looking for.
func (r *Request) Description() string { return r.description }

// Created returns the request timestamp.
func (r *Request) Created() time.Time { return r.created }

// Page addresses a page of results by index.
type Page struct {
	Number int
	Size   int
}

// Repository defines the persistence contract for item requests.
type Repository interface {
	// Save persists a new request and assigns its id.
	Save(ctx context.Context, r *Request) error

	// FindByID retrieves a request by its unique identifier.
	FindByID(ctx context.Context, id int64) (*Request, error)

	// FindByRequester retrieves a user's requests, newest first.
	FindByRequester(ctx context.Context, requesterID int64) ([]*Request, error)

	// FindAll retrieves all requests newest first, optionally paged.
	FindAll(ctx context.Context, page *Page) ([]*Request, error)
}
