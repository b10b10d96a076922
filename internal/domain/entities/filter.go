package entities

import "fmt"

// GroupSize is a capacity band. Bands do not overlap.
type GroupSize string

const (
	GroupSizeSmall  GroupSize = "2-5"
	GroupSizeMedium GroupSize = "6-10"
	GroupSizeLarge  GroupSize = "11+"
)

// GroupSizes lists the bands in ascending order.
var GroupSizes = []GroupSize{GroupSizeSmall, GroupSizeMedium, GroupSizeLarge}

// Bounds returns the inclusive capacity range of the band. hi is -1 for
// the open-ended band.
func (g GroupSize) Bounds() (lo, hi int, ok bool) {
	switch g {
	case GroupSizeSmall:
		return 2, 5, true
	case GroupSizeMedium:
		return 6, 10, true
	case GroupSizeLarge:
		return 11, -1, true
	}
	return 0, 0, false
}

// Contains reports whether capacity falls inside the band.
func (g GroupSize) Contains(capacity int) bool {
	lo, hi, ok := g.Bounds()
	if !ok || capacity < lo {
		return false
	}
	return hi < 0 || capacity <= hi
}

// ParseGroupSize validates a band name.
func ParseGroupSize(s string) (GroupSize, error) {
	g := GroupSize(s)
	if _, _, ok := g.Bounds(); !ok {
		return "", fmt.Errorf("invalid group size %q (valid: 2-5, 6-10, 11+)", s)
	}
	return g, nil
}

// ContinuityChoice is the user-facing "starting soon / ongoing" filter.
type ContinuityChoice string

const (
	ContinuityStartingSoon ContinuityChoice = "startingSoon"
	ContinuityOngoing      ContinuityChoice = "ongoing"
)

// ParseContinuityChoice validates a continuity filter value.
func ParseContinuityChoice(s string) (ContinuityChoice, error) {
	switch c := ContinuityChoice(s); c {
	case ContinuityStartingSoon, ContinuityOngoing:
		return c, nil
	}
	return "", fmt.Errorf("invalid continuity %q (valid: startingSoon, ongoing)", s)
}

// Matches reports whether an event status satisfies the choice. A full
// event in progress is not joinable, so it is not "ongoing".
func (c ContinuityChoice) Matches(status ContinuityStatus) bool {
	switch c {
	case ContinuityStartingSoon:
		return status == StatusNotStarted
	case ContinuityOngoing:
		return status == StatusInProgressWithRoom
	}
	return false
}

// FilterSpec holds the user's constraints. The zero value of each field
// leaves that dimension unconstrained. Dimensions combine with AND;
// the slice fields accept any of their values.
type FilterSpec struct {
	Category    Category           `json:"category,omitempty"`
	Country     string             `json:"country,omitempty"`
	City        string             `json:"city,omitempty"`
	GroupSize   GroupSize          `json:"groupSize,omitempty"`
	Frequencies []SessionFrequency `json:"frequencies,omitempty"`
	Modes       []SessionMode      `json:"modes,omitempty"`
	Vibes       []string           `json:"vibes,omitempty"`
	Continuity  ContinuityChoice   `json:"circleContinuity,omitempty"`
}

// IsUnconstrained reports whether no dimension is active.
func (f FilterSpec) IsUnconstrained() bool {
	return f.Category == "" &&
		f.Country == "" &&
		f.City == "" &&
		f.GroupSize == "" &&
		len(f.Frequencies) == 0 &&
		len(f.Modes) == 0 &&
		len(f.Vibes) == 0 &&
		f.Continuity == ""
}
