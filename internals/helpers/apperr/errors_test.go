package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	all := []error{ErrValidation, ErrNotFound, ErrStore, ErrUnauthenticated, ErrUnauthorized}
	for i, a := range all {
		for j, b := range all {
			if i == j {
				require.True(t, errors.Is(a, b))
			} else {
				require.False(t, errors.Is(a, b), "%v vs %v", a, b)
			}
		}
	}
}

func TestValidationError(t *testing.T) {
	err := NewValidation(map[string]string{"title": "required", "category": "oneof"})

	require.ErrorIs(t, err, ErrValidation)
	require.Equal(t, "validation failed: category: oneof, title: required", err.Error())

	var ve *ValidationError
	wrapped := fmt.Errorf("create: %w", err)
	require.True(t, errors.As(wrapped, &ve))
	require.Equal(t, "required", ve.Fields["title"])
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")
	err := Store("insert", cause)

	require.ErrorIs(t, err, ErrStore)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "insert")
	require.NoError(t, Store("insert", nil))
}

func TestCodeAndStatus(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewValidation(nil), "VALIDATION_ERROR", http.StatusBadRequest},
		{fmt.Errorf("complete: %w", ErrNotFound), "NOT_FOUND", http.StatusNotFound},
		{Store("find", errors.New("boom")), "STORE_ERROR", http.StatusInternalServerError},
		{ErrUnauthenticated, "UNAUTHENTICATED", http.StatusUnauthorized},
		{ErrUnauthorized, "UNAUTHORIZED", http.StatusForbidden},
		{errors.New("unknown"), "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		require.Equal(t, tc.code, Code(tc.err), tc.err.Error())
		require.Equal(t, tc.status, HTTPStatus(tc.err), tc.err.Error())
	}
	require.Empty(t, Code(nil))
}
