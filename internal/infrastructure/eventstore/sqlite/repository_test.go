package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func fixedClock(t *testing.T, now time.Time) {
	t.Helper()
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.StoreConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
		assert.Equal(t, ":memory:", repo.Path())
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.StoreConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	// Verify tables exist
	for _, table := range []string{"events", "audit_log"} {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}
}

func TestRepository_EnsureSchema_Idempotent(t *testing.T) {
	repo := setupTestRepo(t)

	// Should not error when called again
	err := repo.EnsureSchema(context.Background())
	require.NoError(t, err)
}

func TestRepository_SaveAndFindEvent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	start := time.Date(2026, 10, 20, 18, 0, 0, 0, time.UTC)
	created := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	custom := entities.Vibe{Kind: entities.VibeCustom, Key: "clay_lovers_ab12cd", Labels: entities.Labels{EN: "Clay lovers", FR: "Fans d'argile"}}

	event := &entities.Event{
		ID:               "evt-1",
		Title:            "Pottery night",
		HostID:           "host-9",
		Category:         "Arts & Culture",
		MainCategory:     "createMake",
		Vibes:            []entities.Vibe{entities.VibeFromKey("pottery"), custom},
		Capacity:         entities.IntPtr(8),
		AttendeesCount:   3,
		StartDate:        &start,
		Date:             "2026-10-20",
		Time:             "18:00",
		TimeZone:         "UTC",
		SessionFrequency: entities.FrequencyWeekly,
		SessionMode:      entities.ModeInPerson,
		City:             "Lyon",
		Country:          "France",
		CreatedAt:        created,
		UpdatedAt:        created,
	}
	require.NoError(t, repo.SaveEvent(ctx, event))

	found, err := repo.FindEvent(ctx, "evt-1")
	require.NoError(t, err)
	require.NotNil(t, found)

	assert.Equal(t, "Pottery night", found.Title)
	assert.Equal(t, "host-9", found.HostID)
	assert.Equal(t, "Arts & Culture", found.Category)
	assert.Equal(t, "createMake", found.MainCategory)
	require.Len(t, found.Vibes, 2)
	assert.Equal(t, entities.VibeFromKey("pottery"), found.Vibes[0])
	assert.Equal(t, custom, found.Vibes[1])
	require.NotNil(t, found.Capacity)
	assert.Equal(t, 8, *found.Capacity)
	assert.Equal(t, 3, found.AttendeesCount)
	require.NotNil(t, found.StartDate)
	assert.True(t, start.Equal(*found.StartDate))
	assert.Equal(t, "2026-10-20", found.Date)
	assert.Equal(t, "18:00", found.Time)
	assert.Equal(t, entities.FrequencyWeekly, found.SessionFrequency)
	assert.Equal(t, entities.ModeInPerson, found.SessionMode)
	assert.Equal(t, "Lyon", found.City)
	assert.Equal(t, "France", found.Country)
	assert.True(t, created.Equal(found.CreatedAt))
}

func TestRepository_SaveEvent_UnlimitedAndUndated(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	fixedClock(t, time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC))

	event := &entities.Event{Title: "Open picnic"}
	require.NoError(t, repo.SaveEvent(ctx, event))
	require.NotEmpty(t, event.ID, "missing IDs are generated")

	found, err := repo.FindEvent(ctx, event.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Nil(t, found.Capacity)
	assert.Nil(t, found.StartDate)
	assert.Nil(t, found.Vibes)
	assert.True(t, found.CreatedAt.Equal(timeNow()))
}

func TestRepository_SaveEvent_ZeroCapacityIsKept(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{ID: "evt", Title: "Closed", Capacity: entities.IntPtr(0)}))

	found, err := repo.FindEvent(ctx, "evt")
	require.NoError(t, err)
	require.NotNil(t, found.Capacity)
	assert.Equal(t, 0, *found.Capacity)
}

func TestRepository_FindEvent_SkipsKeylessStoredVibes(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO events (id, title, vibes, attendees_count, created_at, updated_at)
		VALUES (?, ?, ?, 0, ?, ?)`,
		"legacy", "Legacy row", `[null, "yoga", {"key": ""}]`, now, now)
	require.NoError(t, err)

	event, err := repo.FindEvent(ctx, "legacy")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, []string{"yoga"}, entities.VibeKeys(event.Vibes))
}

func TestRepository_SaveEvent_Upsert(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{ID: "evt", Title: "Old", City: "Lyon"}))
	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{ID: "evt", Title: "New"}))

	found, err := repo.FindEvent(ctx, "evt")
	require.NoError(t, err)
	assert.Equal(t, "New", found.Title)
	assert.Empty(t, found.City)

	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRepository_FindEvent_NotFound(t *testing.T) {
	repo := setupTestRepo(t)

	found, err := repo.FindEvent(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestRepository_SaveEvents_ListAndCount(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	events := []entities.Event{
		{ID: "c", Title: "Third", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "a", Title: "First", CreatedAt: base},
		{ID: "b", Title: "Second", CreatedAt: base.Add(time.Hour)},
	}
	require.NoError(t, repo.SaveEvents(ctx, events))
	require.NoError(t, repo.SaveEvents(ctx, nil))

	count, err := repo.CountEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	page, err := repo.ListEvents(ctx, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, eventIDs(page))

	page, err = repo.ListEvents(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, eventIDs(page))

	found, err := repo.FindEventsByIDs(ctx, []string{"c", "a", "missing"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, eventIDs(found))

	found, err = repo.FindEventsByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepository_DeleteEvent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveEvent(ctx, &entities.Event{ID: "evt", Title: "x"}))
	require.NoError(t, repo.DeleteEvent(ctx, "evt"))

	found, err := repo.FindEvent(ctx, "evt")
	require.NoError(t, err)
	assert.Nil(t, found)

	err = repo.DeleteEvent(ctx, "evt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "event not found")
}

func TestRepository_FindEventsByStoredCategory(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	events := []entities.Event{
		{ID: "a", Title: "a", Category: "  Sports ", CreatedAt: base},
		{ID: "b", Title: "b", MainCategory: "moveBreathe", CreatedAt: base.Add(time.Minute)},
		{ID: "c", Title: "c", Category: "Food & Drink", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "d", Title: "d", Vibes: []entities.Vibe{entities.VibeFromKey("yoga")}, CreatedAt: base.Add(3 * time.Minute)},
		{ID: "e", Title: "e", Category: "bien-être", CreatedAt: base.Add(4 * time.Minute)},
		{ID: "f", Title: "f", Category: "Food  &  Drink", CreatedAt: base.Add(5 * time.Minute)},
	}
	require.NoError(t, repo.SaveEvents(ctx, events))

	found, err := repo.FindEventsByStoredCategory(ctx, []string{"sports", "movebreathe", "bien-être"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "e"}, eventIDs(found))

	// Internal whitespace is compared as stored.
	found, err = repo.FindEventsByStoredCategory(ctx, []string{"food & drink"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c"}, eventIDs(found))

	found, err = repo.FindEventsByStoredCategory(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestRepository_AuditLog(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.LogAction(ctx, entities.AuditImport, "evt-1", map[string]any{"source": "events.json"}))
	require.NoError(t, repo.LogAction(ctx, entities.AuditCustomVibe, "evt-1", map[string]any{"key": "sunset_yoga_abcdef"}))
	require.NoError(t, repo.LogAction(ctx, entities.AuditDelete, "evt-2", nil))

	entries, err := repo.FindAuditLog(ctx, "evt-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entities.AuditImport, entries[0].Action)
	assert.Equal(t, "evt-1", entries[0].EventID)
	assert.Equal(t, "events.json", entries[0].Details["source"])
	assert.Equal(t, entities.AuditCustomVibe, entries[1].Action)

	entries, err = repo.FindAuditLog(ctx, "evt-2")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Details)

	entries, err = repo.FindAuditLog(ctx, "missing")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func eventIDs(events []entities.Event) []string {
	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	return ids
}
