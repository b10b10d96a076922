package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/domain/services"
)

var testNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

// Events written by three generations of the app: launch-era legacy
// labels, bare-string vibes, and the current canonical keys.
const eventsJSON = `[
  {"id": "yoga", "title": "Sunrise yoga", "category": "Wellness", "vibes": ["yoga"],
   "capacity": 10, "attendeesCount": 2, "startDate": "2026-10-18T07:00:00Z",
   "sessionFrequency": "weekly", "city": "Lyon", "country": "France"},
  {"id": "wine", "title": "Wine tasting", "mainCategory": "tasteSavor",
   "vibes": [{"key": "wine_tasting", "labels": {"en": "Wine tasting", "fr": "Dégustation de vin"}}],
   "capacity": 4, "attendeesCount": 4, "startDate": "2026-10-17T10:00:00Z",
   "sessionMode": "inPerson", "city": "Bordeaux", "country": "France"},
  {"id": "debate", "title": "Debate night", "vibes": ["intellectual"],
   "sessionMode": "online"}
]`

const eventsCSV = `id,title,category,vibes,capacity,attendees_count,date,time,time_zone,session_frequency,city,country
run,Trail run,Sports,running_club,12,3,2026-10-17,13:30,Europe/Paris,weekly,Annecy,France
market,Makers market,sell_and_shop,,,,,,,monthly,lyon,FRANCE
`

func importFixtures(t *testing.T, w *workspace) {
	t.Helper()
	files := []string{
		w.writeFile(t, "events.json", eventsJSON),
		w.writeFile(t, "events.csv", eventsCSV),
	}

	results, err := w.importer.HandleFiles(context.Background(), files, handlers.ImportOptions{
		OnConflict: services.ConflictSkip,
	})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 3, results[0].Imported)
	assert.Equal(t, 2, results[1].Imported)
	assert.Empty(t, results[0].Errors)
	assert.Empty(t, results[1].Errors)
}

func searchIDs(t *testing.T, w *workspace, spec entities.FilterSpec) []string {
	t.Helper()
	events, err := w.catalog.SearchAt(context.Background(), spec, testNow)
	require.NoError(t, err)
	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	return ids
}

func TestPipeline_DatabaseFileCreated(t *testing.T) {
	w := newWorkspace(t)

	_, err := os.Stat(w.cfg.DatabasePath(w.dir))
	require.NoError(t, err, "database file should exist")
}

func TestPipeline_ImportAndFilter(t *testing.T) {
	w := newWorkspace(t)
	importFixtures(t, w)

	tests := []struct {
		name     string
		spec     entities.FilterSpec
		expected []string
	}{
		{"unconstrained", entities.FilterSpec{}, []string{"yoga", "wine", "debate", "run", "market"}},
		{"legacy wellness and sports", entities.FilterSpec{Category: entities.CategoryMoveBreathe}, []string{"yoga", "run"}},
		{"legacy vibe category", entities.FilterSpec{Category: entities.CategoryTalkThink}, []string{"debate"}},
		{"stripped legacy key", entities.FilterSpec{Category: entities.CategoryCreateMake}, []string{"market"}},
		{"city ignores case", entities.FilterSpec{City: "LYON"}, []string{"yoga", "market"}},
		{"small groups", entities.FilterSpec{GroupSize: entities.GroupSizeSmall}, []string{"wine"}},
		{"weekly", entities.FilterSpec{Frequencies: []entities.SessionFrequency{entities.FrequencyWeekly}}, []string{"yoga", "run"}},
		{"starting soon", entities.FilterSpec{Continuity: entities.ContinuityStartingSoon}, []string{"yoga"}},
		{"ongoing excludes full", entities.FilterSpec{Continuity: entities.ContinuityOngoing}, []string{"run"}},
		{"vibe", entities.FilterSpec{Vibes: []string{"wine_tasting", "yoga"}}, []string{"yoga", "wine"}},
		{
			"combined",
			entities.FilterSpec{Category: entities.CategoryMoveBreathe, Country: "france", Continuity: entities.ContinuityOngoing},
			[]string{"run"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, searchIDs(t, w, tt.spec))
		})
	}
}

func TestPipeline_StoredCategoryLookup(t *testing.T) {
	w := newWorkspace(t)
	importFixtures(t, w)
	ctx := context.Background()

	events, err := w.catalog.ByStoredCategory(ctx, entities.CategoryMoveBreathe)
	require.NoError(t, err)
	ids := make([]string, len(events))
	for i := range events {
		ids[i] = events[i].ID
	}
	assert.Equal(t, []string{"yoga", "run"}, ids)

	// The debate event is talkThink only through a legacy vibe, which the
	// stored-category lookup does not read.
	events, err = w.catalog.ByStoredCategory(ctx, entities.CategoryTalkThink)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Equal(t, []string{"debate"}, searchIDs(t, w, entities.FilterSpec{Category: entities.CategoryTalkThink}))
}

func TestPipeline_ReimportSkipsExisting(t *testing.T) {
	w := newWorkspace(t)
	importFixtures(t, w)

	file := w.writeFile(t, "again.json", `[{"id": "yoga", "title": "Changed"}, {"id": "new", "title": "New"}]`)
	result, err := w.importer.Handle(context.Background(), file, handlers.ImportOptions{OnConflict: services.ConflictSkip})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	event, err := w.catalog.Get(context.Background(), "yoga")
	require.NoError(t, err)
	assert.Equal(t, "Sunrise yoga", event.Title)
}

func TestPipeline_CustomVibeSurvivesReopen(t *testing.T) {
	w := newWorkspace(t)
	importFixtures(t, w)
	ctx := context.Background()

	vibe, created, err := w.catalog.AddCustomVibe(ctx, "market", "Local makers", "Créateurs locaux")
	require.NoError(t, err)
	require.True(t, created)

	w.reopen(t)

	event, err := w.catalog.Get(ctx, "market")
	require.NoError(t, err)
	require.Len(t, event.Vibes, 1)
	assert.Equal(t, vibe, event.Vibes[0])
	assert.Equal(t, entities.VibeCustom, event.Vibes[0].Kind)

	assert.Equal(t, []string{"market"}, searchIDs(t, w, entities.FilterSpec{Vibes: []string{vibe.Key}}))
	assert.Equal(t, entities.CategoryCreateMake, w.classifier.ResolveCategory(event),
		"custom vibes do not change the resolved category")

	history, err := w.catalog.History(ctx, "market")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, entities.AuditImport, history[0].Action)
	assert.Equal(t, entities.AuditCustomVibe, history[1].Action)

	_, created, err = w.catalog.AddCustomVibe(ctx, "market", "Local makers", "Créateurs locaux")
	require.NoError(t, err)
	assert.False(t, created)
}

func TestPipeline_Delete(t *testing.T) {
	w := newWorkspace(t)
	importFixtures(t, w)
	ctx := context.Background()

	require.NoError(t, w.catalog.Delete(ctx, "wine"))
	assert.Equal(t, []string{"yoga", "debate", "run", "market"}, searchIDs(t, w, entities.FilterSpec{}))

	_, err := w.catalog.Get(ctx, "wine")
	require.Error(t, err)
}
