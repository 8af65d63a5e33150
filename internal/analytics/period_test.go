package analytics

import (
	"testing"
	"time"

	gerr "github.com/jekabolt/storefront-ledger/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
)

func TestComputeWindows(t *testing.T) {
	now := time.Date(2026, 3, 31, 15, 30, 0, 0, time.UTC)

	w, err := ComputeWindows(now, 30, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC), w.Current.From)
	assert.Equal(t, time.Date(2026, 1, 30, 15, 30, 0, 0, time.UTC), w.Previous.From)
	assert.Equal(t, w.Current.From, w.Previous.To)

	// a boundary timestamp belongs to exactly one window
	assert.True(t, w.Current.Contains(w.Current.From))
	assert.False(t, w.Previous.Contains(w.Current.From))
	assert.True(t, w.Current.Contains(now))
	assert.False(t, w.Current.Contains(now.Add(time.Second)))
}

func TestComputeWindowsCalendarDays(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	now := time.Date(2026, 10, 17, 0, 30, 0, 0, lagos)

	w, err := ComputeWindows(now, 1, lagos)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 30, 0, 0, lagos), w.Current.From)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 30, 0, 0, lagos), w.Previous.From)
}

func TestComputeWindowsRejectsBadDays(t *testing.T) {
	for _, days := range []int{0, -7, MaxLookbackDays + 1} {
		_, err := ComputeWindows(time.Now(), days, time.UTC)
		assert.Equal(t, codes.InvalidArgument, gerr.Code(err), days)
	}
}
