package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/domain/ports"
	"github.com/ersonp/circle-core/internal/domain/services"
	"github.com/ersonp/circle-core/internal/infrastructure/config"
	"github.com/ersonp/circle-core/internal/infrastructure/eventstore/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and repositories are internal.
type Deps struct {
	Config   *config.Config
	Locale   entities.Locale
	Taxonomy *handlers.TaxonomyHandler
	Events   *handlers.EventHandler
	Import   *handlers.ImportHandler
}

// taxonomyDeps holds the store-independent services.
type taxonomyDeps struct {
	taxonomy   *services.TaxonomyService
	vibes      *services.VibeService
	classifier *services.Classifier
	filter     *services.FilterService
}

// withDeps loads config, opens the event store and builds the handlers,
// then calls the provided function. It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	locale, err := resolveLocale(cfg)
	if err != nil {
		return err
	}

	td, err := buildTaxonomy(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg, cwd)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	catalog := services.NewCatalogService(store, td.classifier, td.filter, td.vibes)

	return fn(&Deps{
		Config:   cfg,
		Locale:   locale,
		Taxonomy: handlers.NewTaxonomyHandler(td.taxonomy, td.vibes),
		Events:   handlers.NewEventHandler(catalog, td.classifier, logger),
		Import:   handlers.NewImportHandler(services.NewImportService(store), logger),
	})
}

// withTaxonomy provides the taxonomy handler without opening the store.
func withTaxonomy(fn func(*handlers.TaxonomyHandler, entities.Locale) error) error {
	cfg := globalConfig
	if cfg == nil {
		cfg = config.Default()
	}

	locale, err := resolveLocale(cfg)
	if err != nil {
		return err
	}

	td, err := buildTaxonomy(cfg)
	if err != nil {
		return err
	}

	return fn(handlers.NewTaxonomyHandler(td.taxonomy, td.vibes), locale)
}

func buildTaxonomy(cfg *config.Config) (*taxonomyDeps, error) {
	taxonomy, err := services.NewTaxonomyService(cfg.Taxonomy.Aliases)
	if err != nil {
		return nil, fmt.Errorf("building taxonomy: %w", err)
	}

	vibes := services.NewVibeService()
	classifier := services.NewClassifier(taxonomy, vibes)

	return &taxonomyDeps{
		taxonomy:   taxonomy,
		vibes:      vibes,
		classifier: classifier,
		filter:     services.NewFilterService(classifier, taxonomy),
	}, nil
}

// openStore opens the SQLite event store configured for basePath.
func openStore(cfg *config.Config, basePath string) (ports.EventStore, error) {
	store, err := sqlite.NewRepository(config.StoreConfig{Path: cfg.DatabasePath(basePath)})
	if err != nil {
		return nil, fmt.Errorf("creating sqlite repository: %w", err)
	}
	return store, nil
}

// resolveLocale prefers the --locale flag over the configured locale.
func resolveLocale(cfg *config.Config) (entities.Locale, error) {
	raw := globalLocale
	if raw == "" {
		raw = cfg.Display.Locale
	}
	if raw == "" {
		return entities.LocalePrimary, nil
	}
	return entities.ParseLocale(raw)
}
