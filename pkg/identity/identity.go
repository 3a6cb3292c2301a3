package identity

import (
	"context"
	"net"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated caller of a request. The
// transport layer authenticates upstream; this core only consumes the
// result.
type Identity struct {
	// UserID is the caller's stable user identifier.
	UserID string

	// Login is the human-readable login name, when known.
	Login string

	// RemoteIP is the client IP address, when known.
	RemoteIP net.IP
}

// New creates an Identity for a user ID.
func New(userID string) *Identity {
	return &Identity{UserID: userID}
}

// WithLogin sets the login name.
func (i *Identity) WithLogin(login string) *Identity {
	i.Login = login
	return i
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// ClientIP returns the remote IP as a string, or "" when unknown.
func (i *Identity) ClientIP() string {
	if i.RemoteIP == nil {
		return ""
	}
	return i.RemoteIP.String()
}

// Set stores the identity in the context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}

// Get retrieves the identity from the context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}
