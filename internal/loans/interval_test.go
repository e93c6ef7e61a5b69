package loans

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/lenddesk/lenddesk-backend/pkg/errors"
)

func mustParse(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse(TimeLayout, value)
	require.NoError(t, err)
	return ts
}

func TestParseIntervalValid(t *testing.T) {
	start, end, err := ParseInterval("2026-11-28 10:00", "2026-11-28 12:00")
	require.NoError(t, err)
	assert.True(t, start.Before(end))
}

func TestParseIntervalRejectsBadFormat(t *testing.T) {
	cases := [][2]string{
		{"28.11.2026 10:00", "2026-11-28 12:00"},
		{"2026-11-28 10:00", "noon"},
		{"2026-11-28T10:00", "2026-11-28 12:00"},
		{"", "2026-11-28 12:00"},
	}
	for _, c := range cases {
		_, _, err := ParseInterval(c[0], c[1])
		require.Error(t, err, "start=%q end=%q", c[0], c[1])
		assert.Equal(t, pkgerrors.CodeInvalidFormat, pkgerrors.As(err).Code())
	}
}

func TestParseIntervalRejectsReversedOrEmpty(t *testing.T) {
	for _, c := range [][2]string{
		{"2026-11-28 18:00", "2026-11-28 17:00"},
		{"2026-11-28 12:00", "2026-11-28 12:00"},
	} {
		_, _, err := ParseInterval(c[0], c[1])
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeInvalidOrder, pkgerrors.As(err).Code())
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	aStart := mustParse(t, "2026-11-28 10:00")
	aEnd := mustParse(t, "2026-11-28 12:00")
	bStart := mustParse(t, "2026-11-28 11:30")
	bEnd := mustParse(t, "2026-11-28 13:00")

	assert.True(t, overlaps(aStart, aEnd, bStart, bEnd))
	assert.True(t, overlaps(bStart, bEnd, aStart, aEnd))
}

func TestOverlapsHalfOpenBoundary(t *testing.T) {
	aStart := mustParse(t, "2026-11-28 10:00")
	aEnd := mustParse(t, "2026-11-28 12:00")

	// [s, e) against [e, e2) never conflicts, for any e2 > e.
	for _, end := range []string{"2026-11-28 12:01", "2026-11-28 14:00", "2026-11-29 12:00"} {
		bEnd := mustParse(t, end)
		assert.False(t, overlaps(aStart, aEnd, aEnd, bEnd))
		assert.False(t, overlaps(aEnd, bEnd, aStart, aEnd))
	}
}

func TestOverlapsContainment(t *testing.T) {
	outerStart := mustParse(t, "2026-11-28 08:00")
	outerEnd := mustParse(t, "2026-11-28 18:00")
	innerStart := mustParse(t, "2026-11-28 10:00")
	innerEnd := mustParse(t, "2026-11-28 11:00")

	assert.True(t, overlaps(outerStart, outerEnd, innerStart, innerEnd))
	assert.True(t, overlaps(innerStart, innerEnd, outerStart, outerEnd))
}
