package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"mindsprint_backend/internals/constants"
	"mindsprint_backend/internals/helpers/apperr"
)

func TestNewGoogleProvider(t *testing.T) {
	_, err := NewGoogleProvider("", nil)
	require.Error(t, err)

	p, err := NewGoogleProvider("client.apps.googleusercontent.com", []string{" Dr.Smith@Example.com ", ""})
	require.NoError(t, err)
	require.Equal(t, constants.RoleTherapist, p.roleForEmail("dr.smith@example.com"))
	require.Equal(t, constants.RoleClient, p.roleForEmail("someone@example.com"))
	require.Equal(t, constants.RoleClient, p.roleForEmail(""))
}

func TestGoogleProviderRejectsEmptyCredential(t *testing.T) {
	p, err := NewGoogleProvider("client.apps.googleusercontent.com", nil)
	require.NoError(t, err)

	_, err = p.Authenticate(context.Background(), " ")
	require.ErrorIs(t, err, apperr.ErrUnauthenticated)
}
