// Package parsers provides parsers for importing events from various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// RawEvent represents an event parsed from an external source before validation.
type RawEvent struct {
	ID               string          `json:"id,omitempty"`
	Title            string          `json:"title"`
	HostID           string          `json:"hostId,omitempty"`
	Category         string          `json:"category,omitempty"`
	MainCategory     string          `json:"mainCategory,omitempty"`
	Vibes            []entities.Vibe `json:"vibes,omitempty"`    // bare strings or structured objects
	Capacity         *int            `json:"capacity,omitempty"` // Pointer to distinguish 0 from unlimited
	AttendeesCount   int             `json:"attendeesCount,omitempty"`
	StartDate        string          `json:"startDate,omitempty"` // RFC 3339
	Date             string          `json:"date,omitempty"`
	Time             string          `json:"time,omitempty"`
	TimeZone         string          `json:"timeZone,omitempty"`
	SessionFrequency string          `json:"sessionFrequency,omitempty"`
	SessionMode      string          `json:"sessionMode,omitempty"`
	City             string          `json:"city,omitempty"`
	Country          string          `json:"country,omitempty"`
	LineNum          int             `json:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing events from various formats.
type Parser interface {
	Parse(r io.Reader) ([]RawEvent, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}
