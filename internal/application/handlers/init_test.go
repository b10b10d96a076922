package handlers

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ersonp/circle-core/internal/domain/mocks"
	"github.com/ersonp/circle-core/internal/domain/ports"
	"github.com/ersonp/circle-core/internal/infrastructure/config"
)

func mockOpener(store *mocks.EventStore, opened *string) StoreOpener {
	return func(cfg *config.Config, basePath string) (ports.EventStore, error) {
		if opened != nil {
			*opened = cfg.DatabasePath(basePath)
		}
		return store, nil
	}
}

func TestInitHandler_Handle(t *testing.T) {
	dir := t.TempDir()
	var opened string
	handler := NewInitHandler(mockOpener(mocks.NewEventStore(), &opened), zap.NewNop())

	result, err := handler.Handle(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, config.ConfigFilePath(dir), result.ConfigPath)
	assert.Equal(t, filepath.Join(dir, ".circles", "circles.db"), result.DatabasePath)
	assert.Equal(t, result.DatabasePath, opened)
	assert.True(t, config.Exists(dir))
}

func TestInitHandler_Handle_AlreadyInitialized(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.WriteDefault(dir))

	called := false
	handler := NewInitHandler(func(*config.Config, string) (ports.EventStore, error) {
		called = true
		return mocks.NewEventStore(), nil
	}, zap.NewNop())

	_, err := handler.Handle(context.Background(), dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
	assert.False(t, called)
}

func TestInitHandler_Handle_OpenError(t *testing.T) {
	handler := NewInitHandler(func(*config.Config, string) (ports.EventStore, error) {
		return nil, errors.New("disk full")
	}, zap.NewNop())

	_, err := handler.Handle(context.Background(), t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening event store")
	assert.Contains(t, err.Error(), "disk full")
}

func TestInitHandler_Handle_SchemaError(t *testing.T) {
	store := mocks.NewEventStore()
	store.Err = errors.New("read-only")
	handler := NewInitHandler(mockOpener(store, nil), zap.NewNop())

	_, err := handler.Handle(context.Background(), t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating schema")
}
