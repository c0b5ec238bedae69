package scope_test

import (
	"testing"

	"github.com/jrsteele09/go-rider-auth/scope"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		sc, ok := scope.Lookup("ride_widgets")
		require.True(t, ok)
		require.Equal(t, scope.RideWidgets, sc)
	})

	t.Run("unknown", func(t *testing.T) {
		_, ok := scope.Lookup("request_everything")
		require.False(t, ok)
	})
}

func TestTiers(t *testing.T) {
	general := []scope.Scope{scope.History, scope.HistoryLite, scope.PaymentMethods, scope.Places, scope.Profile, scope.RideWidgets}
	for _, sc := range general {
		require.Equal(t, scope.General, sc.Tier(), sc)
	}
	for _, sc := range []scope.Scope{scope.Request, scope.RequestReceipt, scope.AllTrips} {
		require.Equal(t, scope.Privileged, sc.Tier(), sc)
	}
	require.Len(t, scope.All(), 9)
}

func TestParse(t *testing.T) {
	t.Run("mixed case with duplicates", func(t *testing.T) {
		set, err := scope.Parse("profile PROFILE History")
		require.NoError(t, err)
		require.True(t, set.Equal(scope.NewSet(scope.Profile, scope.History)))
	})

	t.Run("empty string", func(t *testing.T) {
		set, err := scope.Parse("")
		require.NoError(t, err)
		require.Empty(t, set)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		_, err := scope.Parse("profile bogus")
		require.ErrorIs(t, err, scope.ErrUnknownScope)
	})
}

func TestParseBits(t *testing.T) {
	t.Run("zero", func(t *testing.T) {
		require.Empty(t, scope.ParseBits(0))
	})

	t.Run("negative", func(t *testing.T) {
		require.Empty(t, scope.ParseBits(-32))
	})

	t.Run("single", func(t *testing.T) {
		require.True(t, scope.ParseBits(scope.History.BitValue()).Equal(scope.NewSet(scope.History)))
	})

	t.Run("mixed tiers", func(t *testing.T) {
		bits := scope.History.BitValue() | scope.Request.BitValue() | scope.Profile.BitValue()
		set := scope.ParseBits(bits)
		require.True(t, set.Equal(scope.NewSet(scope.History, scope.Request, scope.Profile)))
		require.True(t, set.RequiresPrivilege())
	})
}

func TestEncode(t *testing.T) {
	set := scope.NewSet(scope.RideWidgets, scope.Profile, scope.Profile)
	require.Equal(t, "profile ride_widgets", set.Encode())

	decoded, err := scope.Parse(set.Encode())
	require.NoError(t, err)
	require.True(t, decoded.Equal(set))
	require.False(t, set.RequiresPrivilege())
}

func TestMerge(t *testing.T) {
	set := scope.NewSet(scope.Profile)
	require.Equal(t, "profile partner.accounts", scope.Merge(set, []string{"partner.accounts", "PROFILE", " ", "partner.accounts"}))
	require.Equal(t, "custom", scope.Merge(scope.NewSet(), []string{"custom"}))
}
