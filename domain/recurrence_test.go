package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/todo-service/domain"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(value)
	require.NoError(t, err)
	return d
}

func TestNextOccurrence(t *testing.T) {
	cases := []struct {
		name       string
		recurrence domain.RecurrenceType
		base       string
		want       string
	}{
		{"daily", domain.RecurrenceDaily, "2026-01-28", "2026-01-29"},
		{"daily crosses year", domain.RecurrenceDaily, "2025-12-31", "2026-01-01"},
		{"weekly", domain.RecurrenceWeekly, "2026-02-25", "2026-03-04"},
		{"monthly same day", domain.RecurrenceMonthly, "2026-03-15", "2026-04-15"},
		{"monthly clamps to february", domain.RecurrenceMonthly, "2026-01-31", "2026-02-28"},
		{"monthly clamps to leap day", domain.RecurrenceMonthly, "2024-01-31", "2024-02-29"},
		{"monthly clamps to 30 day month", domain.RecurrenceMonthly, "2026-05-31", "2026-06-30"},
		{"monthly december rolls over", domain.RecurrenceMonthly, "2026-12-31", "2027-01-31"},
		{"none is identity", domain.RecurrenceNone, "2026-07-04", "2026-07-04"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.NextOccurrence(tc.recurrence, date(t, tc.base))
			assert.Equal(t, tc.want, got.Format(domain.DateLayout))
		})
	}
}

func TestNextOccurrence_IgnoresClock(t *testing.T) {
	base := time.Date(2026, 1, 28, 23, 59, 0, 0, time.UTC)
	got := domain.NextOccurrence(domain.RecurrenceDaily, base)
	assert.Equal(t, time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate_RejectsImpossibleDates(t *testing.T) {
	_, err := domain.ParseDate("2026-02-30")
	assert.Error(t, err)

	_, err = domain.ParseDate("2026-2-3")
	assert.Error(t, err)
}

func TestNewSubtaskProgress(t *testing.T) {
	assert.Equal(t, 0, domain.NewSubtaskProgress(0, 0).SubtaskProgressPercent)
	assert.Equal(t, 33, domain.NewSubtaskProgress(1, 3).SubtaskProgressPercent)
	assert.Equal(t, 66, domain.NewSubtaskProgress(2, 3).SubtaskProgressPercent)
	assert.Equal(t, 100, domain.NewSubtaskProgress(4, 4).SubtaskProgressPercent)
}
