package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/entities"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show an event with its derived category, capacity and status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				detail, err := d.Events.Show(ctx, args[0], d.Locale)
				if err != nil {
					return err
				}
				return displayEventDetail(os.Stdout, detail, d.Locale)
			})
		},
	}
}

func displayEventDetail(out io.Writer, detail *handlers.EventDetail, locale entities.Locale) error {
	e := &detail.Event
	s := detail.Summary

	var b strings.Builder
	fmt.Fprintf(&b, "ID:        %s\n", e.ID)
	fmt.Fprintf(&b, "Title:     %s\n", e.Title)
	fmt.Fprintf(&b, "Category:  %s (%s)\n", s.CategoryLabel, s.Category)
	if e.MainCategory != "" || e.Category != "" {
		fmt.Fprintf(&b, "Stored:    main=%q legacy=%q\n", e.MainCategory, e.Category)
	}
	if len(e.Vibes) > 0 {
		labels := make([]string, len(e.Vibes))
		for i, v := range e.Vibes {
			labels[i] = v.Labels.In(locale)
			if labels[i] == "" {
				labels[i] = v.Key
			}
		}
		fmt.Fprintf(&b, "Vibes:     %s\n", strings.Join(labels, ", "))
	}
	fmt.Fprintf(&b, "Spots:     %s\n", formatRemaining(s.Remaining))
	fmt.Fprintf(&b, "Status:    %s\n", s.StatusLabel)
	if e.StartDate != nil {
		fmt.Fprintf(&b, "Starts:    %s\n", e.StartDate.Format(time.RFC3339))
	} else if e.Date != "" {
		fmt.Fprintf(&b, "Starts:    %s %s %s\n", e.Date, e.Time, e.TimeZone)
	}
	if e.SessionFrequency != "" || e.SessionMode != "" {
		fmt.Fprintf(&b, "Sessions:  %s, %s\n", e.SessionFrequency, e.SessionMode)
	}
	if e.City != "" || e.Country != "" {
		fmt.Fprintf(&b, "Where:     %s, %s\n", e.City, e.Country)
	}

	if len(detail.History) > 0 {
		b.WriteString("\nHistory:\n")
		for _, h := range detail.History {
			fmt.Fprintf(&b, "  %s  %s\n", h.CreatedAt.Format(time.RFC3339), h.Action)
		}
	}

	_, err := io.WriteString(out, b.String())
	return err
}
