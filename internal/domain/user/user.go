package user

import (
	"context"
	"strings"

	"github.com/shareit-market/shareit/pkg/domain"
)

// User is a registered participant: a booker, an item owner, or both.
type User struct {
	id    int64
	name  string
	email string
}

// NewUser creates a user with a minimally validated email.
func NewUser(name, email string) (*User, error) {
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("Wrong email!")
	}
	return &User{name: name, email: email}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id int64, name, email string) *User {
	return &User{id: id, name: name, email: email}
}

// ID returns the user's unique identifier.
func (u *User) ID() int64 { return u.id }

// SetID assigns the store-generated identifier after insertion.
func (u *User) SetID(id int64) { u.id = id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// ApplyPatch merges non-nil fields into the user, keeping old values for
// absent ones.
func (u *User) ApplyPatch(name, email *string) error {
	if name != nil {
		u.name = *name
	}
	if email != nil {
		if *email == "" || !strings.Contains(*email, "@") {
			return domain.NewValidationError("Wrong email!")
		}
		u.email = *email
	}
	return nil
}

// Repository defines the persistence contract for users. Email uniqueness
// is enforced by the store; a duplicate surfaces as a conflict error.
type Repository interface {
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id int64) (*User, error)
	FindAll(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id int64) error
}
