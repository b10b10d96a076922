// Package entities contains core domain data structures.
package entities

import "time"

// SessionFrequency describes how often an event's sessions recur.
type SessionFrequency string

const (
	FrequencyWeekly  SessionFrequency = "weekly"
	FrequencyMonthly SessionFrequency = "monthly"
	FrequencyOneTime SessionFrequency = "oneTime"
)

// IsValid reports whether f is a known frequency.
func (f SessionFrequency) IsValid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyOneTime:
		return true
	}
	return false
}

// SessionMode describes where an event's sessions take place.
type SessionMode string

const (
	ModeInPerson SessionMode = "inPerson"
	ModeOnline   SessionMode = "online"
	ModeHybrid   SessionMode = "hybrid"
)

// IsValid reports whether m is a known mode.
func (m SessionMode) IsValid() bool {
	switch m {
	case ModeInPerson, ModeOnline, ModeHybrid:
		return true
	}
	return false
}

// Date and time layouts used by the split start fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Event is a hosted event ("circle") as read from the document store.
// Classification fields may come from any taxonomy generation; derived
// values are recomputed on read and never written back.
type Event struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	HostID string `json:"hostId,omitempty"`

	Category     string `json:"category,omitempty"`     // legacy free-form category
	MainCategory string `json:"mainCategory,omitempty"` // canonical key, possibly stale
	Vibes        []Vibe `json:"vibes,omitempty"`

	Capacity       *int `json:"capacity,omitempty"` // nil means unlimited
	AttendeesCount int  `json:"attendeesCount,omitempty"`

	StartDate *time.Time `json:"startDate,omitempty"`
	Date      string     `json:"date,omitempty"` // DateLayout
	Time      string     `json:"time,omitempty"` // TimeLayout
	TimeZone  string     `json:"timeZone,omitempty"`

	SessionFrequency SessionFrequency `json:"sessionFrequency,omitempty"`
	SessionMode      SessionMode      `json:"sessionMode,omitempty"`

	City    string `json:"city,omitempty"`
	Country string `json:"country,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasVibe reports whether the event carries a vibe with the given key.
func (e *Event) HasVibe(key string) bool {
	for _, v := range e.Vibes {
		if v.Key == key {
			return true
		}
	}
	return false
}

// IntPtr returns a pointer to n, for building capacities.
func IntPtr(n int) *int {
	return &n
}
