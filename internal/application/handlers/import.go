package handlers

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ersonp/circle-core/internal/domain/services"
	"github.com/ersonp/circle-core/internal/infrastructure/parsers"
)

// maxParallelParses bounds how many import files are parsed at once.
const maxParallelParses = 4

// ImportHandler handles importing events from files.
type ImportHandler struct {
	service *services.ImportService
	logger  *zap.Logger
}

// NewImportHandler creates a new import handler.
func NewImportHandler(service *services.ImportService, logger *zap.Logger) *ImportHandler {
	return &ImportHandler{
		service: service,
		logger:  logger,
	}
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	Format     string                    // "json", "csv", or "auto"
	DryRun     bool                      // Validate without saving
	OnConflict services.ConflictStrategy // How to handle existing events
}

// ImportResult contains the result of importing one file.
type ImportResult struct {
	File     string
	Imported int
	Skipped  int
	Errors   []services.ImportError
}

// Handle imports events from a single file.
func (h *ImportHandler) Handle(ctx context.Context, filePath string, opts ImportOptions) (*ImportResult, error) {
	results, err := h.HandleFiles(ctx, []string{filePath}, opts)
	if err != nil {
		return nil, err
	}
	return results[0], nil
}

// HandleFiles parses every file concurrently, then imports them one after
// another in the given order. Parsing errors abort before anything is saved.
func (h *ImportHandler) HandleFiles(ctx context.Context, filePaths []string, opts ImportOptions) ([]*ImportResult, error) {
	parsed := make([][]parsers.RawEvent, len(filePaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelParses)
	for i, path := range filePaths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raws, err := parseFile(path, opts.Format)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			parsed[i] = raws
			h.logger.Debug("parsed import file", zap.String("file", path), zap.Int("records", len(raws)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := make([]*ImportResult, 0, len(filePaths))
	for i, path := range filePaths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := &ImportResult{File: path}
		if len(parsed[i]) > 0 {
			serviceResult, err := h.service.Import(ctx, parsed[i], services.ImportOptions{
				DryRun:     opts.DryRun,
				OnConflict: opts.OnConflict,
				Source:     path,
			})
			if err != nil {
				return nil, fmt.Errorf("importing %s: %w", path, err)
			}
			result.Imported = serviceResult.Imported
			result.Skipped = serviceResult.Skipped
			result.Errors = serviceResult.Errors
		}

		h.logger.Info("imported events",
			zap.String("file", path),
			zap.Int("imported", result.Imported),
			zap.Int("skipped", result.Skipped),
			zap.Int("invalid", len(result.Errors)),
			zap.Bool("dry_run", opts.DryRun),
		)
		results = append(results, result)
	}

	return results, nil
}

func parseFile(filePath, format string) ([]parsers.RawEvent, error) {
	var parser parsers.Parser
	if format == "" || format == "auto" {
		parser = parsers.ForFile(filePath)
	} else {
		parser = parsers.ForFormat(format)
	}

	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	raws, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	return raws, nil
}
