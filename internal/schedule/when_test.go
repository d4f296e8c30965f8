package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var madrid = time.FixedZone("CET", 3600)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, madrid)
}

func TestParseWhenAbsolute(t *testing.T) {
	now := at(2025, time.June, 1, 10, 0)

	got, err := ParseWhen("2025-12-03 14:30", now, madrid)
	require.NoError(t, err)
	assert.Equal(t, at(2025, time.December, 3, 14, 30), got)
}

func TestParseWhenAbsolutePastRejected(t *testing.T) {
	now := at(2025, time.June, 1, 10, 0)

	// a year-bearing date in the past is a data-entry slip, not a request
	// for "same time next day"
	_, err := ParseWhen("2025-01-01 10:00", now, madrid)
	assert.ErrorIs(t, err, ErrPastTime)

	_, err = ParseWhen("2025-06-01 10:00", now, madrid)
	assert.ErrorIs(t, err, ErrPastTime)
}

func TestParseWhenDayMonthAssumesCurrentYear(t *testing.T) {
	now := at(2025, time.June, 1, 10, 0)

	got, err := ParseWhen("03/12 14:30", now, madrid)
	require.NoError(t, err)
	assert.Equal(t, at(2025, time.December, 3, 14, 30), got)
}

func TestParseWhenDayMonthRollsForwardOneDay(t *testing.T) {
	now := at(2025, time.June, 1, 10, 0)

	// same day, earlier hour -> tomorrow at that hour
	got, err := ParseWhen("01/06 09:00", now, madrid)
	require.NoError(t, err)
	assert.Equal(t, at(2025, time.June, 2, 9, 0), got)
}

func TestParseWhenDayMonthStillPastRejected(t *testing.T) {
	now := at(2025, time.June, 10, 10, 0)

	// months in the past: one day of roll-forward cannot save it
	_, err := ParseWhen("03/01 14:30", now, madrid)
	assert.ErrorIs(t, err, ErrPastTime)
}

func TestParseWhenBadFormat(t *testing.T) {
	now := at(2025, time.June, 1, 10, 0)
	for _, in := range []string{"", "mañana", "2025/12/03 14:30", "14:30", "99/99 10:00"} {
		_, err := ParseWhen(in, now, madrid)
		assert.ErrorIs(t, err, ErrBadFormat, "input %q", in)
	}
}
