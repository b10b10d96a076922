package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/services"
)

type importFlags struct {
	format     string
	dryRun     bool
	onConflict string
}

func newImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Import events from JSON or CSV",
		Long:  "Imports events from one or more structured files. Files are parsed in parallel and saved in order.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.onConflict, "on-conflict", "skip", "Conflict handling (skip, overwrite)")

	return cmd
}

func runImport(cmd *cobra.Command, files []string, flags importFlags) error {
	onConflict, err := services.ParseConflictStrategy(flags.onConflict)
	if err != nil {
		return fmt.Errorf("invalid --on-conflict: %w", err)
	}

	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		opts := handlers.ImportOptions{
			Format:     flags.format,
			DryRun:     flags.dryRun,
			OnConflict: onConflict,
		}

		results, err := d.Import.HandleFiles(ctx, files, opts)
		if err != nil {
			return fmt.Errorf("importing files: %w", err)
		}

		for _, result := range results {
			displayImportResult(result, flags.dryRun)
		}
		return nil
	})
}

func displayImportResult(result *handlers.ImportResult, dryRun bool) {
	fmt.Printf("%s:\n", result.File)

	if len(result.Errors) > 0 {
		fmt.Printf("  Validation errors (%d):\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("    %s\n", e.Error())
		}
	}

	if dryRun {
		fmt.Printf("  Dry run: %d events would be imported", result.Imported)
	} else {
		fmt.Printf("  Imported: %d events", result.Imported)
	}

	if result.Skipped > 0 {
		fmt.Printf(", %d skipped (already exist)", result.Skipped)
	}

	if len(result.Errors) > 0 {
		fmt.Printf(", %d invalid", len(result.Errors))
	}

	fmt.Println()
}
