package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/entities"
)

func newCategoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"cats"},
		Short:   "Inspect the category taxonomy",
		Long:    "List canonical categories, resolve stored values and show legacy spellings.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesList()
		},
	}

	cmd.AddCommand(newCategoriesListCmd())
	cmd.AddCommand(newCategoriesNormalizeCmd())
	cmd.AddCommand(newCategoriesAliasesCmd())

	return cmd
}

func newCategoriesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List canonical categories and their preset vibes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategoriesList()
		},
	}
}

func runCategoriesList() error {
	return withTaxonomy(func(h *handlers.TaxonomyHandler, locale entities.Locale) error {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KEY\tLABEL\tPRESET VIBES")
		for _, c := range h.Categories(locale) {
			keys := make([]string, len(c.Presets))
			for i, p := range c.Presets {
				keys[i] = p.Key
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", c.Key, c.Label, strings.Join(keys, ", "))
		}
		return w.Flush()
	})
}

func newCategoriesNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize <raw>...",
		Short: "Resolve stored category values to canonical keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTaxonomy(func(h *handlers.TaxonomyHandler, locale entities.Locale) error {
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "RAW\tCATEGORY\tLABEL")
				for _, raw := range args {
					r := h.Normalize(raw, locale)
					if !r.Resolved {
						fmt.Fprintf(w, "%q\t-\t(unrecognized)\n", r.Raw)
						continue
					}
					fmt.Fprintf(w, "%q\t%s\t%s\n", r.Raw, r.Category, r.Label)
				}
				return w.Flush()
			})
		},
	}
}

func newCategoriesAliasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases <category>",
		Short: "Show every stored spelling that maps to a category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withTaxonomy(func(h *handlers.TaxonomyHandler, _ entities.Locale) error {
				cat, aliases, err := h.Aliases(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s (%d stored spellings):\n", cat, len(aliases))
				for _, a := range aliases {
					fmt.Printf("  %s\n", a)
				}
				return nil
			})
		},
	}
}
