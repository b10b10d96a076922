// Package sqlite provides a SQLite implementation of the EventStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/infrastructure/config"
)

// generateUUID returns a new UUID string.
func generateUUID() string {
	return uuid.New().String()
}

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

const eventColumns = `id, title, host_id, category, main_category, vibes, capacity, attendees_count,
	start_date, date, time, time_zone, session_frequency, session_mode, city, country,
	created_at, updated_at`

// Repository implements ports.EventStore using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.StoreConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Every connection to :memory: is a separate database
	if cfg.Path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Events, stored exactly as received
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		host_id TEXT,
		category TEXT,
		main_category TEXT,
		vibes TEXT,
		capacity INTEGER,
		attendees_count INTEGER NOT NULL DEFAULT 0,
		start_date TIMESTAMP,
		date TEXT,
		time TEXT,
		time_zone TEXT,
		session_frequency TEXT,
		session_mode TEXT,
		city TEXT,
		country TEXT,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_events_created ON events(created_at);
	CREATE INDEX IF NOT EXISTS idx_events_main_category ON events(lower(trim(main_category)));
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(lower(trim(category)));

	-- Audit log (tracks all actions)
	CREATE TABLE IF NOT EXISTS audit_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		action TEXT NOT NULL,
		event_id TEXT,
		details TEXT,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_audit_log_event ON audit_log(event_id);
	CREATE INDEX IF NOT EXISTS idx_audit_log_action ON audit_log(action);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SaveEvent saves or replaces an event. A missing ID or timestamp is filled in.
func (r *Repository) SaveEvent(ctx context.Context, event *entities.Event) error {
	return saveEvent(ctx, r.db, event)
}

// SaveEvents saves or replaces multiple events in one transaction.
func (r *Repository) SaveEvents(ctx context.Context, events []entities.Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	for i := range events {
		if err := saveEvent(ctx, tx, &events[i]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing events: %w", err)
	}
	return nil
}

func saveEvent(ctx context.Context, db execer, event *entities.Event) error {
	if event.ID == "" {
		event.ID = generateUUID()
	}
	now := timeNow()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	if event.UpdatedAt.IsZero() {
		event.UpdatedAt = now
	}

	vibes, err := json.Marshal(event.Vibes)
	if err != nil {
		return fmt.Errorf("marshaling vibes: %w", err)
	}

	var capacity sql.NullInt64
	if event.Capacity != nil {
		capacity = sql.NullInt64{Int64: int64(*event.Capacity), Valid: true}
	}
	var startDate sql.NullTime
	if event.StartDate != nil {
		startDate = sql.NullTime{Time: event.StartDate.UTC(), Valid: true}
	}

	query := `
		INSERT INTO events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			host_id = excluded.host_id,
			category = excluded.category,
			main_category = excluded.main_category,
			vibes = excluded.vibes,
			capacity = excluded.capacity,
			attendees_count = excluded.attendees_count,
			start_date = excluded.start_date,
			date = excluded.date,
			time = excluded.time,
			time_zone = excluded.time_zone,
			session_frequency = excluded.session_frequency,
			session_mode = excluded.session_mode,
			city = excluded.city,
			country = excluded.country,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at
	`
	_, err = db.ExecContext(ctx, query,
		event.ID,
		event.Title,
		event.HostID,
		event.Category,
		event.MainCategory,
		string(vibes),
		capacity,
		event.AttendeesCount,
		startDate,
		event.Date,
		event.Time,
		event.TimeZone,
		string(event.SessionFrequency),
		string(event.SessionMode),
		event.City,
		event.Country,
		event.CreatedAt.UTC(),
		event.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("saving event %s: %w", event.ID, err)
	}
	return nil
}

// FindEvent finds an event by ID. Returns nil if it doesn't exist.
func (r *Repository) FindEvent(ctx context.Context, id string) (*entities.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	event, err := scanEvent(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

// FindEventsByIDs finds multiple events by their IDs in a single query.
func (r *Repository) FindEventsByIDs(ctx context.Context, ids []string) ([]entities.Event, error) {
	if len(ids) == 0 {
		return []entities.Event{}, nil
	}

	// Build placeholders for IN clause
	placeholders, args := inClause(ids)
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id IN (%s) ORDER BY created_at ASC, rowid ASC`, eventColumns, placeholders)

	return r.queryEvents(ctx, query, len(ids), args...)
}

// ListEvents lists events ordered by creation time with pagination.
func (r *Repository) ListEvents(ctx context.Context, limit, offset int) ([]entities.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		ORDER BY created_at ASC, rowid ASC
		LIMIT ? OFFSET ?
	`
	return r.queryEvents(ctx, query, limit, limit, offset)
}

// CountEvents returns the total number of events.
func (r *Repository) CountEvents(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return count, nil
}

// DeleteEvent deletes an event by ID.
func (r *Repository) DeleteEvent(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("event not found: %s", id)
	}
	return nil
}

// FindEventsByStoredCategory finds events whose stored main or legacy
// category matches one of matches after trimming and lower-casing.
// SQLite's lower() only folds ASCII letters, and runs of internal
// whitespace are not collapsed, so matches are single-spaced.
func (r *Repository) FindEventsByStoredCategory(ctx context.Context, matches []string) ([]entities.Event, error) {
	if len(matches) == 0 {
		return []entities.Event{}, nil
	}

	placeholders, args := inClause(matches)
	query := fmt.Sprintf(`
		SELECT %s
		FROM events
		WHERE lower(trim(main_category)) IN (%s) OR lower(trim(category)) IN (%s)
		ORDER BY created_at ASC, rowid ASC
	`, eventColumns, placeholders, placeholders)

	return r.queryEvents(ctx, query, 0, append(args, args...)...)
}

// LogAction logs an action to the audit log.
func (r *Repository) LogAction(ctx context.Context, action string, eventID string, details map[string]any) error {
	var detailsJSON sql.NullString
	if details != nil {
		data, err := json.Marshal(details)
		if err != nil {
			return fmt.Errorf("marshaling details: %w", err)
		}
		detailsJSON = sql.NullString{String: string(data), Valid: true}
	}

	var eventIDPtr sql.NullString
	if eventID != "" {
		eventIDPtr = sql.NullString{String: eventID, Valid: true}
	}

	query := `INSERT INTO audit_log (action, event_id, details, created_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, action, eventIDPtr, detailsJSON, timeNow().UTC())
	if err != nil {
		return fmt.Errorf("logging action: %w", err)
	}
	return nil
}

// FindAuditLog finds audit log entries for a specific event, oldest first.
func (r *Repository) FindAuditLog(ctx context.Context, eventID string) ([]entities.AuditEntry, error) {
	query := `
		SELECT id, action, event_id, details, created_at
		FROM audit_log
		WHERE event_id = ?
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("querying audit log: %w", err)
	}
	defer rows.Close()

	var entries []entities.AuditEntry
	for rows.Next() {
		var entry entities.AuditEntry
		var id, details sql.NullString

		if err := rows.Scan(
			&entry.ID,
			&entry.Action,
			&id,
			&details,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}

		entry.EventID = id.String

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &entry.Details); err != nil {
				return nil, fmt.Errorf("unmarshaling details: %w", err)
			}
		}

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// queryEvents runs a query returning event rows. sizeHint preallocates.
func (r *Repository) queryEvents(ctx context.Context, query string, sizeHint int, args ...any) ([]entities.Event, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Event, 0, max(sizeHint, 0))
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *event)
	}
	return result, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*entities.Event, error) {
	var event entities.Event
	var hostID, category, mainCategory, vibes sql.NullString
	var date, clock, timeZone, frequency, mode sql.NullString
	var city, country sql.NullString
	var capacity sql.NullInt64
	var startDate sql.NullTime

	err := row.Scan(
		&event.ID,
		&event.Title,
		&hostID,
		&category,
		&mainCategory,
		&vibes,
		&capacity,
		&event.AttendeesCount,
		&startDate,
		&date,
		&clock,
		&timeZone,
		&frequency,
		&mode,
		&city,
		&country,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}

	event.HostID = hostID.String
	event.Category = category.String
	event.MainCategory = mainCategory.String
	event.Date = date.String
	event.Time = clock.String
	event.TimeZone = timeZone.String
	event.SessionFrequency = entities.SessionFrequency(frequency.String)
	event.SessionMode = entities.SessionMode(mode.String)
	event.City = city.String
	event.Country = country.String

	if capacity.Valid {
		n := int(capacity.Int64)
		event.Capacity = &n
	}
	if startDate.Valid {
		t := startDate.Time
		event.StartDate = &t
	}
	if vibes.Valid && vibes.String != "" && vibes.String != "null" {
		if err := json.Unmarshal([]byte(vibes.String), &event.Vibes); err != nil {
			return nil, fmt.Errorf("unmarshaling vibes of %s: %w", event.ID, err)
		}
		event.Vibes = entities.CompactVibes(event.Vibes)
	}

	return &event, nil
}

func inClause(values []string) (string, []any) {
	placeholders := make([]string, len(values))
	args := make([]any, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		args[i] = v
	}
	return strings.Join(placeholders, ","), args
}
