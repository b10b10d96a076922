// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// EventStore defines the interface to the document store holding event
// records. Records are returned exactly as stored; classification is
// derived by the caller.
type EventStore interface {
	// EnsureSchema creates the storage schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the store connection.
	Close() error

	// SaveEvent saves or replaces an event.
	SaveEvent(ctx context.Context, event *entities.Event) error

	// SaveEvents saves or replaces multiple events in one transaction.
	SaveEvents(ctx context.Context, events []entities.Event) error

	// FindEvent finds an event by ID. Returns nil if it doesn't exist.
	FindEvent(ctx context.Context, id string) (*entities.Event, error)

	// FindEventsByIDs finds the events with the given IDs. Missing IDs are skipped.
	FindEventsByIDs(ctx context.Context, ids []string) ([]entities.Event, error)

	// ListEvents lists events ordered by creation time with pagination.
	ListEvents(ctx context.Context, limit, offset int) ([]entities.Event, error)

	// CountEvents returns the total number of events.
	CountEvents(ctx context.Context) (int, error)

	// DeleteEvent deletes an event by ID.
	DeleteEvent(ctx context.Context, id string) error

	// FindEventsByStoredCategory finds events whose stored main or legacy
	// category, trimmed and lower-cased, is one of matches. Internal
	// whitespace is compared as stored, so a value with doubled spaces
	// does not match its single-spaced form. It does not look at vibes.
	FindEventsByStoredCategory(ctx context.Context, matches []string) ([]entities.Event, error)

	// LogAction logs an action to the audit log.
	LogAction(ctx context.Context, action string, eventID string, details map[string]any) error

	// FindAuditLog finds audit log entries for a specific event.
	FindAuditLog(ctx context.Context, eventID string) ([]entities.AuditEntry, error)
}
