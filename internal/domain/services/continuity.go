package services

import (
	"time"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// RemainingCapacity returns the free seats of an event. ok is false when
// the event has no capacity, which means unlimited. The result never goes
// below zero, even for over-booked or malformed records.
func RemainingCapacity(e *entities.Event) (remaining int, ok bool) {
	if e == nil || e.Capacity == nil {
		return 0, false
	}
	return max(0, *e.Capacity-e.AttendeesCount), true
}

// EffectiveStart returns the instant the event's primary session starts:
// the explicit start timestamp, else the date and time fields read in the
// event's time zone (UTC when unset or unknown). ok is false when neither
// is usable.
func EffectiveStart(e *entities.Event) (time.Time, bool) {
	if e == nil {
		return time.Time{}, false
	}
	if e.StartDate != nil && !e.StartDate.IsZero() {
		return *e.StartDate, true
	}
	if e.Date == "" {
		return time.Time{}, false
	}

	loc := time.UTC
	if e.TimeZone != "" {
		if l, err := time.LoadLocation(e.TimeZone); err == nil {
			loc = l
		}
	}

	clock := e.Time
	if clock == "" {
		clock = "00:00"
	}
	start, err := time.ParseInLocation(entities.DateLayout+" "+entities.TimeLayout, e.Date+" "+clock, loc)
	if err != nil {
		return time.Time{}, false
	}
	return start, true
}

// Continuity classifies an event relative to now. The start instant
// itself counts as started.
func Continuity(e *entities.Event, now time.Time) entities.ContinuityStatus {
	start, ok := EffectiveStart(e)
	if !ok {
		return entities.StatusUnknown
	}
	if start.After(now) {
		return entities.StatusNotStarted
	}
	if remaining, limited := RemainingCapacity(e); limited && remaining == 0 {
		return entities.StatusInProgressFull
	}
	return entities.StatusInProgressWithRoom
}
