package errors_test

import (
	"fmt"
	"testing"

	"github.com/jrsteele09/go-rider-auth/internal/errors"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		require.NoError(t, errors.Wrapf(nil, "RIDERAUTH_%s", "SCOPES"))
	})

	t.Run("keeps the sentinel in the chain", func(t *testing.T) {
		err := errors.Wrapf(errors.ErrInvalidConfig, "RIDERAUTH_%s", "SCOPES")
		require.EqualError(t, err, "RIDERAUTH_SCOPES: invalid configuration")
		require.True(t, errors.Is(err, errors.ErrInvalidConfig))
		require.Equal(t, errors.ErrInvalidConfig, pkgerrors.Cause(err))
	})

	t.Run("records a stack trace", func(t *testing.T) {
		err := errors.Wrapf(errors.ErrNoToken, "status")
		require.Contains(t, fmt.Sprintf("%+v", err), "TestWrapf")
	})
}

type statusError struct{ code int }

func (e *statusError) Error() string { return fmt.Sprintf("status %d", e.code) }

func TestAs(t *testing.T) {
	err := errors.Wrapf(&statusError{code: 410}, "loopback")
	var target *statusError
	require.True(t, errors.As(err, &target))
	require.Equal(t, 410, target.code)
}
