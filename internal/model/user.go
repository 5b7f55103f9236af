package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user with a password hash.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Identity is the caller on whose behalf an operation runs.
// Demo identities own no persisted user: their UserID is a session id
// that only scopes the local cache.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Demo   bool
}

// CacheScope returns the local cache namespace of the identity.
func (i Identity) CacheScope() string {
	if i.Demo {
		return "demo-" + i.UserID.String()
	}
	return i.UserID.String()
}

// RecordOwner is the owner stamped on new records. Demo records have none;
// the cache scope keeps demo sessions apart.
func (i Identity) RecordOwner() uuid.UUID {
	if i.Demo {
		return uuid.Nil
	}
	return i.UserID
}

// Authenticated reports whether the identity can use the remote store.
func (i Identity) Authenticated() bool {
	return !i.Demo && i.UserID != uuid.Nil
}

// SignUpParams contains registration form input.
type SignUpParams struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// Session is a pair of issued tokens.
type Session struct {
	UserID       uuid.UUID
	AccessToken  string
	RefreshToken string
	Demo         bool
}
