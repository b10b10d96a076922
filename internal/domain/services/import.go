package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/domain/ports"
	"github.com/ersonp/circle-core/internal/infrastructure/parsers"
)

// ConflictStrategy defines how to handle existing events during import.
type ConflictStrategy string

const (
	// ConflictSkip skips events that already exist (by ID).
	ConflictSkip ConflictStrategy = "skip"
	// ConflictOverwrite overwrites existing events with new data.
	ConflictOverwrite ConflictStrategy = "overwrite"
)

// ParseConflictStrategy parses a conflict strategy name.
func ParseConflictStrategy(s string) (ConflictStrategy, error) {
	switch c := ConflictStrategy(strings.ToLower(strings.TrimSpace(s))); c {
	case ConflictSkip, ConflictOverwrite:
		return c, nil
	default:
		return "", fmt.Errorf("invalid conflict strategy %q (valid: skip, overwrite)", s)
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun     bool             // Validate without saving
	OnConflict ConflictStrategy // How to handle existing events
	Source     string           // Recorded in the audit log
}

// ImportError represents an error for a specific record during import.
type ImportError struct {
	Line    int    // Line number (1-indexed, 0 if unknown)
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// ImportResult contains the result of an import operation.
type ImportResult struct {
	Imported int
	Skipped  int
	Errors   []ImportError
	IDs      []string // IDs of imported events, in input order
}

// ImportService handles importing event records from external sources.
type ImportService struct {
	store ports.EventStore
}

// NewImportService creates a new import service.
func NewImportService(store ports.EventStore) *ImportService {
	return &ImportService{store: store}
}

// Import validates and imports raw event records into the store.
func (s *ImportService) Import(ctx context.Context, rawEvents []parsers.RawEvent, opts ImportOptions) (*ImportResult, error) {
	result := &ImportResult{}

	valid, validationErrors := s.validateEvents(rawEvents)
	result.Errors = validationErrors

	if len(valid) == 0 {
		return result, nil
	}

	events := s.convertToEntities(valid)

	if opts.DryRun {
		result.Imported = len(events)
		for i := range events {
			result.IDs = append(result.IDs, events[i].ID)
		}
		return result, nil
	}

	saved, skipped, err := s.saveWithConflictHandling(ctx, events, opts.OnConflict)
	if err != nil {
		return nil, fmt.Errorf("saving events: %w", err)
	}

	for i := range saved {
		details := map[string]any{
			"title":       saved[i].Title,
			"on_conflict": string(opts.OnConflict),
		}
		if opts.Source != "" {
			details["source"] = opts.Source
		}
		if err := s.store.LogAction(ctx, entities.AuditImport, saved[i].ID, details); err != nil {
			return nil, fmt.Errorf("logging import of %s: %w", saved[i].ID, err)
		}
		result.IDs = append(result.IDs, saved[i].ID)
	}

	result.Imported = len(saved)
	result.Skipped = skipped

	return result, nil
}

// validateEvents validates raw records and returns valid ones with any errors.
func (s *ImportService) validateEvents(rawEvents []parsers.RawEvent) ([]parsers.RawEvent, []ImportError) {
	valid := make([]parsers.RawEvent, 0, len(rawEvents))
	var errors []ImportError

	for i := range rawEvents {
		raw := &rawEvents[i]
		lineNum := raw.LineNum
		if lineNum == 0 {
			lineNum = i + 1
		}

		if err := validateRawEvent(raw, lineNum); err != nil {
			errors = append(errors, *err)
			continue
		}

		valid = append(valid, *raw)
	}

	return valid, errors
}

// validateRawEvent validates a single raw record and returns an error if invalid.
func validateRawEvent(raw *parsers.RawEvent, lineNum int) *ImportError {
	if strings.TrimSpace(raw.Title) == "" {
		return &ImportError{Line: lineNum, Field: "title", Message: "missing required field: title"}
	}

	if raw.SessionFrequency != "" && !entities.SessionFrequency(raw.SessionFrequency).IsValid() {
		return &ImportError{
			Line:    lineNum,
			Field:   "sessionFrequency",
			Value:   raw.SessionFrequency,
			Message: fmt.Sprintf("invalid session frequency %q (valid: weekly, monthly, oneTime)", raw.SessionFrequency),
		}
	}

	if raw.SessionMode != "" && !entities.SessionMode(raw.SessionMode).IsValid() {
		return &ImportError{
			Line:    lineNum,
			Field:   "sessionMode",
			Value:   raw.SessionMode,
			Message: fmt.Sprintf("invalid session mode %q (valid: inPerson, online, hybrid)", raw.SessionMode),
		}
	}

	if raw.StartDate != "" {
		if _, err := time.Parse(time.RFC3339, raw.StartDate); err != nil {
			return &ImportError{Line: lineNum, Field: "startDate", Value: raw.StartDate, Message: "startDate must be an RFC 3339 timestamp"}
		}
	}

	if raw.Date != "" {
		if _, err := time.Parse(entities.DateLayout, raw.Date); err != nil {
			return &ImportError{Line: lineNum, Field: "date", Value: raw.Date, Message: "date must use the YYYY-MM-DD format"}
		}
	}

	if raw.Time != "" {
		if _, err := time.Parse(entities.TimeLayout, raw.Time); err != nil {
			return &ImportError{Line: lineNum, Field: "time", Value: raw.Time, Message: "time must use the HH:MM format"}
		}
	}

	if raw.TimeZone != "" {
		if _, err := time.LoadLocation(raw.TimeZone); err != nil {
			return &ImportError{Line: lineNum, Field: "timeZone", Value: raw.TimeZone, Message: fmt.Sprintf("unknown time zone %q", raw.TimeZone)}
		}
	}

	// Negative capacity or attendee counts are stored as given;
	// RemainingCapacity clamps them.
	return nil
}

// convertToEntities converts raw records to domain entities. Stored
// classification fields are kept exactly as given.
func (s *ImportService) convertToEntities(rawEvents []parsers.RawEvent) []entities.Event {
	events := make([]entities.Event, 0, len(rawEvents))
	now := time.Now()

	for i := range rawEvents {
		raw := &rawEvents[i]
		id := raw.ID
		if id == "" {
			id = uuid.New().String()
		}

		frequency := entities.SessionFrequency(raw.SessionFrequency)
		if frequency == "" {
			frequency = entities.FrequencyOneTime
		}
		mode := entities.SessionMode(raw.SessionMode)
		if mode == "" {
			mode = entities.ModeInPerson
		}

		event := entities.Event{
			ID:               id,
			Title:            strings.TrimSpace(raw.Title),
			HostID:           raw.HostID,
			Category:         raw.Category,
			MainCategory:     raw.MainCategory,
			Vibes:            entities.CompactVibes(raw.Vibes),
			Capacity:         raw.Capacity,
			AttendeesCount:   raw.AttendeesCount,
			Date:             raw.Date,
			Time:             raw.Time,
			TimeZone:         raw.TimeZone,
			SessionFrequency: frequency,
			SessionMode:      mode,
			City:             raw.City,
			Country:          raw.Country,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if raw.StartDate != "" {
			// Already validated.
			start, _ := time.Parse(time.RFC3339, raw.StartDate)
			event.StartDate = &start
		}

		events = append(events, event)
	}

	return events
}

// saveWithConflictHandling saves events with conflict handling and returns
// the events that were written.
func (s *ImportService) saveWithConflictHandling(ctx context.Context, events []entities.Event, onConflict ConflictStrategy) (saved []entities.Event, skipped int, err error) {
	if onConflict != ConflictSkip {
		// Overwrite mode: preserve CreatedAt for existing events
		if err := s.preserveCreatedAt(ctx, events); err != nil {
			return nil, 0, err
		}
		if err := s.store.SaveEvents(ctx, events); err != nil {
			return nil, 0, err
		}
		return events, 0, nil
	}

	toSave, skipped, err := s.filterExisting(ctx, events)
	if err != nil {
		return nil, 0, err
	}
	if len(toSave) == 0 {
		return nil, skipped, nil
	}

	if err := s.store.SaveEvents(ctx, toSave); err != nil {
		return nil, 0, err
	}
	return toSave, skipped, nil
}

// preserveCreatedAt looks up existing events and keeps their CreatedAt timestamps.
func (s *ImportService) preserveCreatedAt(ctx context.Context, events []entities.Event) error {
	existing, err := s.store.FindEventsByIDs(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("looking up existing events: %w", err)
	}

	createdAt := make(map[string]time.Time, len(existing))
	for i := range existing {
		createdAt[existing[i].ID] = existing[i].CreatedAt
	}

	for i := range events {
		if t, ok := createdAt[events[i].ID]; ok {
			events[i].CreatedAt = t
		}
	}
	return nil
}

// filterExisting drops events that already exist in the store. Duplicate
// IDs within one batch keep only the first record.
func (s *ImportService) filterExisting(ctx context.Context, events []entities.Event) ([]entities.Event, int, error) {
	existing, err := s.store.FindEventsByIDs(ctx, eventIDs(events))
	if err != nil {
		return nil, 0, fmt.Errorf("checking existing events: %w", err)
	}

	seen := make(map[string]bool, len(existing)+len(events))
	for i := range existing {
		seen[existing[i].ID] = true
	}

	toSave := make([]entities.Event, 0, len(events))
	var skipped int
	for i := range events {
		if seen[events[i].ID] {
			skipped++
			continue
		}
		seen[events[i].ID] = true
		toSave = append(toSave, events[i])
	}

	return toSave, skipped, nil
}

func eventIDs(events []entities.Event) []string {
	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	return ids
}
