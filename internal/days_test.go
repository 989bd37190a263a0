package daycounter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecomputeToday(t *testing.T) {
	now := time.Date(2024, 1, 11, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 0, Recompute(StartOfDay(now, time.UTC), now, time.UTC))
}

func TestRecomputeIgnoresTimeOfDay(t *testing.T) {
	now := time.Date(2024, 1, 11, 0, 5, 0, 0, time.UTC)
	for n := 0; n < 400; n += 7 {
		start := time.Date(2024, 1, 11, 23, 10, 0, 0, time.UTC).AddDate(0, 0, -n)
		assert.Equal(t, n, Recompute(start, now, time.UTC), "n=%d", n)
	}
}

func TestRecomputeSymmetric(t *testing.T) {
	now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)
	for _, n := range []int{1, 10, 365} {
		past := now.AddDate(0, 0, -n)
		future := now.AddDate(0, 0, n)
		assert.Equal(t, n, Recompute(past, now, time.UTC))
		assert.Equal(t, n, Recompute(future, now, time.UTC))
	}
}

func TestRecomputeIdempotent(t *testing.T) {
	now := time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC)
	start := time.Date(2023, 6, 3, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, Recompute(start, now, time.UTC), Recompute(start, now, time.UTC))
}

func TestRecomputeAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tz database not available")
	}
	// 2024-03-10 is 23 hours long in New York.
	start := time.Date(2024, 3, 9, 12, 0, 0, 0, loc)
	now := time.Date(2024, 3, 12, 1, 0, 0, 0, loc)
	assert.Equal(t, 3, Recompute(start, now, loc))
	assert.Equal(t, 3, Recompute(now, start, loc))
}

func TestRecomputeUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on Jan 10 is already Jan 11 in Tokyo.
	start := time.Date(2024, 1, 10, 20, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 11, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, Recompute(start, now, time.UTC))
	assert.Equal(t, 0, Recompute(start, now, tokyo))
}

func TestFormatStartDate(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, est)
	assert.Equal(t, "2024-01-01T05:00:00.000Z", FormatStartDate(d))
}

func TestParseStartDate(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)

	d, err := ParseStartDate("2024-01-01T05:00:00.000Z", est)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, est).Unix(), d.Unix())
	assert.Equal(t, est, d.Location())

	d, err = ParseStartDate("2024-01-01T05:00:00Z", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 5, d.Hour())

	d, err = ParseStartDate(" 2024-02-29 ", est)
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 2, 29, 0, 0, 0, 0, est).Equal(d))

	_, err = ParseStartDate("", time.UTC)
	assert.Error(t, err)
	_, err = ParseStartDate("Invalid Date", time.UTC)
	assert.Error(t, err)
}

func TestParseDismissPolicy(t *testing.T) {
	cases := map[string]DismissPolicy{
		"":        AutoDismiss,
		"auto":    AutoDismiss,
		"Android": AutoDismiss,
		"manual":  ManualDismiss,
		"IOS":     ManualDismiss,
	}
	for in, want := range cases {
		got, err := ParseDismissPolicy(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseDismissPolicy("sometimes")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	assert.Equal(t, "manual", ManualDismiss.String())
}
