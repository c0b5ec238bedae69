package utils_test

import (
	"testing"

	"github.com/jrsteele09/go-rider-auth/internal/utils"
	"github.com/stretchr/testify/require"
)

func TestPointerHelpers(t *testing.T) {
	require.Equal(t, 0.0, utils.Value[float64](nil))
	require.Equal(t, 37.7, utils.Value(utils.Ptr(37.7)))
	require.Equal(t, "", utils.Value[string](nil))
}
