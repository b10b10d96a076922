// Package handlers contains application use case handlers.
package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ersonp/circle-core/internal/domain/ports"
	"github.com/ersonp/circle-core/internal/infrastructure/config"
)

// StoreOpener opens the event store described by cfg.
type StoreOpener func(cfg *config.Config, basePath string) (ports.EventStore, error)

// InitHandler handles workspace initialization.
type InitHandler struct {
	openStore StoreOpener
	logger    *zap.Logger
}

// NewInitHandler creates a new init handler.
func NewInitHandler(openStore StoreOpener, logger *zap.Logger) *InitHandler {
	return &InitHandler{
		openStore: openStore,
		logger:    logger,
	}
}

// InitResult contains the result of initialization.
type InitResult struct {
	ConfigPath   string
	DatabasePath string
}

// Handle writes the default configuration and creates the store schema.
func (h *InitHandler) Handle(ctx context.Context, basePath string) (*InitResult, error) {
	if config.Exists(basePath) {
		return nil, fmt.Errorf("circles already initialized in %s", basePath)
	}

	if err := config.WriteDefault(basePath); err != nil {
		return nil, fmt.Errorf("writing default config: %w", err)
	}

	cfg, err := config.Load(basePath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := h.openStore(cfg, basePath)
	if err != nil {
		return nil, fmt.Errorf("opening event store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	result := &InitResult{
		ConfigPath:   config.ConfigFilePath(basePath),
		DatabasePath: cfg.DatabasePath(basePath),
	}
	h.logger.Info("initialized workspace",
		zap.String("config", result.ConfigPath),
		zap.String("database", result.DatabasePath),
	)
	return result, nil
}
