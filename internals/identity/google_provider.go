package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"

	"mindsprint_backend/internals/constants"
	"mindsprint_backend/internals/helpers/apperr"
)

// GoogleProvider verifies Google-issued ID tokens for the configured OAuth
// client. Emails listed as therapists get the therapist role, everyone else
// is a client.
type GoogleProvider struct {
	verifier   googleAuthIDTokenVerifier.Verifier
	audience   []string
	therapists map[string]struct{}
}

func NewGoogleProvider(clientID string, therapistEmails []string) (*GoogleProvider, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, errors.New("identity: google client id is required")
	}
	therapists := make(map[string]struct{}, len(therapistEmails))
	for _, e := range therapistEmails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			therapists[e] = struct{}{}
		}
	}
	return &GoogleProvider{
		verifier:   googleAuthIDTokenVerifier.Verifier{},
		audience:   []string{clientID},
		therapists: therapists,
	}, nil
}

func (p *GoogleProvider) Authenticate(_ context.Context, raw string) (Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Identity{}, fmt.Errorf("%w: no token provided", apperr.ErrUnauthenticated)
	}
	if err := p.verifier.VerifyIDToken(raw, p.audience); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}
	claims, err := googleAuthIDTokenVerifier.Decode(raw)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", apperr.ErrUnauthenticated, err)
	}
	if strings.TrimSpace(claims.Sub) == "" {
		return Identity{}, fmt.Errorf("%w: token has no subject", apperr.ErrUnauthenticated)
	}
	return Identity{ID: claims.Sub, Role: p.roleForEmail(claims.Email)}, nil
}

func (p *GoogleProvider) roleForEmail(email string) string {
	if _, ok := p.therapists[strings.ToLower(strings.TrimSpace(email))]; ok {
		return constants.RoleTherapist
	}
	return constants.RoleClient
}
