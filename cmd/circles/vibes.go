package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/domain/services"
)

func newVibesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vibes",
		Short: "Manage vibes",
		Long:  "List preset vibes or attach a custom vibe to an event.",
	}

	cmd.AddCommand(newVibesListCmd())
	cmd.AddCommand(newVibesAddCmd())

	return cmd
}

func newVibesListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List preset vibes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTaxonomy(func(h *handlers.TaxonomyHandler, locale entities.Locale) error {
				presets, err := h.Presets(category, locale)
				if err != nil {
					return err
				}

				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "KEY\tLABEL\tCATEGORY")
				for _, v := range presets {
					fmt.Fprintf(w, "%s\t%s\t%s\n", v.Key, v.Label, v.Category)
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only list presets of this category (any known spelling)")

	return cmd
}

func newVibesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <event-id> <label-en> <label-fr>",
		Short: "Attach a custom vibe to an event",
		Long:  "Creates a custom vibe from an English and a French label and adds it to the event.",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				result, err := d.Events.AddCustomVibe(ctx, args[0], args[1], args[2])
				if err != nil {
					var rejection *services.VibeRejection
					if errors.As(err, &rejection) {
						return fmt.Errorf("vibe rejected: %w", err)
					}
					return fmt.Errorf("adding vibe: %w", err)
				}

				if !result.Created {
					fmt.Printf("Event %s already has vibe %s\n", args[0], result.Vibe.Key)
					return nil
				}
				fmt.Printf("Added vibe %s (%s) to %s\n", result.Vibe.Key, result.Vibe.Labels.In(d.Locale), args[0])
				return nil
			})
		},
	}
}
