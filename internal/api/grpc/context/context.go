package context

import (
	"context"
	"strconv"

	"github.com/google/uuid"
	"google.golang.org/grpc/metadata"

	"github.com/dtroode/genoguard-server/internal/model"
)

// Metadata keys carrying the authenticated identity in gRPC context.
const (
	userIDKey string = "user_id"
	emailKey  string = "email"
	demoKey   string = "demo"
)

// Manager represents a gRPC context manager for caller identity operations.
// It stores the identity in incoming metadata, overwriting anything the
// client sent under the same keys.
type Manager struct{}

// NewManager creates a new gRPC context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext sets the caller identity in the gRPC context metadata.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		md = metadata.MD{}
	} else {
		md = md.Copy()
	}

	md.Set(userIDKey, identity.UserID.String())
	md.Set(emailKey, identity.Email)
	md.Set(demoKey, strconv.FormatBool(identity.Demo))

	return metadata.NewIncomingContext(ctx, md)
}

// GetIdentityFromContext retrieves the caller identity from gRPC context metadata.
//
// Returns the identity and a boolean indicating if a valid one was found.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return model.Identity{}, false
	}

	userID, err := uuid.Parse(first(md, userIDKey))
	if err != nil {
		return model.Identity{}, false
	}

	demo, err := strconv.ParseBool(first(md, demoKey))
	if err != nil {
		return model.Identity{}, false
	}

	return model.Identity{
		UserID: userID,
		Email:  first(md, emailKey),
		Demo:   demo,
	}, true
}

func first(md metadata.MD, key string) string {
	values := md.Get(key)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
