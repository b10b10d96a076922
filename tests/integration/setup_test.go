package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/ports"
	"github.com/ersonp/circle-core/internal/domain/services"
	"github.com/ersonp/circle-core/internal/infrastructure/config"
	"github.com/ersonp/circle-core/internal/infrastructure/eventstore/sqlite"
)

// workspace is an initialized circles directory with an open store.
type workspace struct {
	dir        string
	cfg        *config.Config
	store      *sqlite.Repository
	taxonomy   *services.TaxonomyService
	classifier *services.Classifier
	catalog    *services.CatalogService
	importer   *handlers.ImportHandler
}

func openSQLite(cfg *config.Config, basePath string) (ports.EventStore, error) {
	return sqlite.NewRepository(config.StoreConfig{Path: cfg.DatabasePath(basePath)})
}

// newWorkspace runs init in a temp directory and wires the services
// against the resulting database file.
func newWorkspace(t *testing.T) *workspace {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dir := t.TempDir()
	_, err := handlers.NewInitHandler(openSQLite, zap.NewNop()).Handle(context.Background(), dir)
	require.NoError(t, err)

	cfg, err := config.Load(dir)
	require.NoError(t, err)

	w := &workspace{dir: dir, cfg: cfg}
	w.open(t)
	return w
}

func (w *workspace) open(t *testing.T) {
	t.Helper()

	store, err := sqlite.NewRepository(config.StoreConfig{Path: w.cfg.DatabasePath(w.dir)})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.EnsureSchema(context.Background()))

	taxonomy, err := services.NewTaxonomyService(w.cfg.Taxonomy.Aliases)
	require.NoError(t, err)
	vibes := services.NewVibeService()
	classifier := services.NewClassifier(taxonomy, vibes)
	filter := services.NewFilterService(classifier, taxonomy)

	w.store = store
	w.taxonomy = taxonomy
	w.classifier = classifier
	w.catalog = services.NewCatalogService(store, classifier, filter, vibes)
	w.importer = handlers.NewImportHandler(services.NewImportService(store), zap.NewNop())
}

// reopen closes the store and opens the database file again.
func (w *workspace) reopen(t *testing.T) {
	t.Helper()
	require.NoError(t, w.store.Close())
	w.open(t)
}

func (w *workspace) writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(w.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
