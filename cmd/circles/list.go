package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ersonp/circle-core/internal/application/handlers"
)

func newListCmd() *cobra.Command {
	var flags filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Long:  "Lists stored events matching every given filter. With no filters, all events are listed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDeps(cmd.Context(), func(d *Deps) error {
				views, err := flags.fetchEvents(cmd, d)
				if err != nil {
					return err
				}

				if len(views) == 0 {
					fmt.Println("No events found.")
					return nil
				}

				return displayEvents(os.Stdout, views)
			})
		},
	}

	flags.register(cmd)

	return cmd
}

func displayEvents(out io.Writer, views []handlers.EventView) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSPOTS\tSTATUS\tCITY")
	for i := range views {
		e := &views[i].Event
		s := views[i].Summary
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID,
			truncate(e.Title, titleWidth),
			truncate(s.CategoryLabel, labelWidth),
			formatRemaining(s.Remaining),
			s.StatusLabel,
			e.City,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(out, "\n%d events\n", len(views))
	return err
}

// formatRemaining renders remaining capacity; nil means unlimited.
func formatRemaining(remaining *int) string {
	if remaining == nil {
		return "unlimited"
	}
	return strconv.Itoa(*remaining)
}

// truncate shortens a string to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
