// Package identity verifies bearer credentials and yields the caller identity
// the homework core acts on behalf of.
package identity

import (
	"context"
	"strings"
)

// Identity is the authenticated subject of a request.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// IsZero reports whether no subject is present.
func (i Identity) IsZero() bool { return strings.TrimSpace(i.ID) == "" }

// Provider verifies a raw credential. Implementations return an error
// wrapping apperr.ErrUnauthenticated when the credential is rejected.
type Provider interface {
	Authenticate(ctx context.Context, credential string) (Identity, error)
}

// ProviderFunc adapts a plain function to Provider.
type ProviderFunc func(ctx context.Context, credential string) (Identity, error)

func (f ProviderFunc) Authenticate(ctx context.Context, credential string) (Identity, error) {
	return f(ctx, credential)
}
