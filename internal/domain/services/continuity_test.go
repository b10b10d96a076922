package services

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestRemainingCapacity(t *testing.T) {
	tests := []struct {
		name      string
		event     *entities.Event
		remaining int
		ok        bool
	}{
		{"nil event", nil, 0, false},
		{"unlimited", &entities.Event{AttendeesCount: 40}, 0, false},
		{"room left", &entities.Event{Capacity: entities.IntPtr(10), AttendeesCount: 4}, 6, true},
		{"exactly full", &entities.Event{Capacity: entities.IntPtr(10), AttendeesCount: 10}, 0, true},
		{"over-booked floors at zero", &entities.Event{Capacity: entities.IntPtr(10), AttendeesCount: 13}, 0, true},
		{"zero capacity", &entities.Event{Capacity: entities.IntPtr(0)}, 0, true},
		{"malformed negative capacity", &entities.Event{Capacity: entities.IntPtr(-3)}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			remaining, ok := RemainingCapacity(tt.event)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.remaining, remaining)
			assert.GreaterOrEqual(t, remaining, 0)
		})
	}
}

func TestEffectiveStart(t *testing.T) {
	explicit := testNow.Add(-2 * time.Hour)

	tests := []struct {
		name     string
		event    *entities.Event
		expected time.Time
		ok       bool
	}{
		{
			name:  "nil event",
			event: nil,
		},
		{
			name:  "no start information",
			event: &entities.Event{},
		},
		{
			name:     "explicit timestamp wins",
			event:    &entities.Event{StartDate: &explicit, Date: "2030-01-01", Time: "09:00"},
			expected: explicit,
			ok:       true,
		},
		{
			name:     "date and time in zone",
			event:    &entities.Event{Date: "2026-10-17", Time: "14:00", TimeZone: "Europe/Paris"},
			expected: testNow,
			ok:       true,
		},
		{
			name:     "date only starts at midnight UTC",
			event:    &entities.Event{Date: "2026-10-18"},
			expected: time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
			ok:       true,
		},
		{
			name:     "unknown zone falls back to UTC",
			event:    &entities.Event{Date: "2026-10-17", Time: "12:00", TimeZone: "Mars/Olympus"},
			expected: testNow,
			ok:       true,
		},
		{
			name:  "unparseable date",
			event: &entities.Event{Date: "17/10/2026"},
		},
		{
			name:  "time without date",
			event: &entities.Event{Time: "12:00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := EffectiveStart(tt.event)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.True(t, tt.expected.Equal(got), "expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestContinuity(t *testing.T) {
	past := testNow.Add(-24 * time.Hour)
	future := testNow.Add(time.Hour)

	tests := []struct {
		name     string
		event    *entities.Event
		expected entities.ContinuityStatus
	}{
		{"no start", &entities.Event{Capacity: entities.IntPtr(5)}, entities.StatusUnknown},
		{"future start", &entities.Event{StartDate: &future, Capacity: entities.IntPtr(5), AttendeesCount: 5}, entities.StatusNotStarted},
		{"started with room", &entities.Event{StartDate: &past, Capacity: entities.IntPtr(5), AttendeesCount: 4}, entities.StatusInProgressWithRoom},
		{"started and full", &entities.Event{StartDate: &past, Capacity: entities.IntPtr(5), AttendeesCount: 5}, entities.StatusInProgressFull},
		{"started over-booked", &entities.Event{StartDate: &past, Capacity: entities.IntPtr(5), AttendeesCount: 9}, entities.StatusInProgressFull},
		{"started unlimited", &entities.Event{StartDate: &past, AttendeesCount: 500}, entities.StatusInProgressWithRoom},
		{"starts exactly now", &entities.Event{StartDate: timePtr(testNow)}, entities.StatusInProgressWithRoom},
		{"starts exactly now and full", &entities.Event{StartDate: timePtr(testNow), Capacity: entities.IntPtr(1), AttendeesCount: 1}, entities.StatusInProgressFull},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Continuity(tt.event, testNow))
		})
	}
}

func TestContinuityStatus_Labels(t *testing.T) {
	assert.Equal(t, "Starting soon", entities.StatusNotStarted.Labels().In(entities.LocalePrimary))
	assert.Equal(t, "Complet", entities.StatusInProgressFull.Labels().In(entities.LocaleSecondary))
	assert.Equal(t, entities.StatusUnknown.Labels(), entities.ContinuityStatus("bogus").Labels())
}
