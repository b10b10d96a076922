package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/entities"
)

type exportFlags struct {
	format string
	output string
	filter filterFlags
}

func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events to file",
		Long:  "Exports events with their resolved category, remaining capacity and status to JSON, CSV, or YAML.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "json", "Output format (json, csv, yaml)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file (default: stdout)")
	flags.filter.register(cmd)

	return cmd
}

func runExport(cmd *cobra.Command, flags exportFlags) error {
	if !slices.Contains(validFormats, flags.format) {
		return fmt.Errorf("invalid format %q, valid formats: %v", flags.format, validFormats)
	}

	return withDeps(cmd.Context(), func(d *Deps) error {
		views, err := flags.filter.fetchEvents(cmd, d)
		if err != nil {
			return err
		}

		if len(views) == 0 {
			return fmt.Errorf("no events found to export")
		}

		return writeExport(flags.format, flags.output, views)
	})
}

func writeExport(format, output string, views []handlers.EventView) (err error) {
	var w io.Writer = os.Stdout

	if output != "" {
		var f *os.File
		f, err = os.OpenFile(output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("creating file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing file: %w", cerr)
			}
		}()
		w = f
	}

	if err := formatEvents(w, format, views); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if output != "" {
		fmt.Printf("Exported %d events to %s\n", len(views), output)
	}
	return nil
}

func formatEvents(w io.Writer, format string, views []handlers.EventView) error {
	switch format {
	case "json":
		return formatJSON(w, views)
	case "csv":
		return formatCSV(w, views)
	case "yaml":
		return formatYAML(w, views)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// exportEvent is the flattened export shape: stored fields first, then
// the values derived at export time.
type exportEvent struct {
	ID               string   `json:"id" yaml:"id"`
	Title            string   `json:"title" yaml:"title"`
	HostID           string   `json:"hostId,omitempty" yaml:"host_id,omitempty"`
	Category         string   `json:"category,omitempty" yaml:"category,omitempty"`
	MainCategory     string   `json:"mainCategory,omitempty" yaml:"main_category,omitempty"`
	Vibes            []string `json:"vibes,omitempty" yaml:"vibes,omitempty"`
	Capacity         *int     `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	AttendeesCount   int      `json:"attendeesCount" yaml:"attendees_count"`
	StartDate        string   `json:"startDate,omitempty" yaml:"start_date,omitempty"`
	Date             string   `json:"date,omitempty" yaml:"date,omitempty"`
	Time             string   `json:"time,omitempty" yaml:"time,omitempty"`
	TimeZone         string   `json:"timeZone,omitempty" yaml:"time_zone,omitempty"`
	SessionFrequency string   `json:"sessionFrequency,omitempty" yaml:"session_frequency,omitempty"`
	SessionMode      string   `json:"sessionMode,omitempty" yaml:"session_mode,omitempty"`
	City             string   `json:"city,omitempty" yaml:"city,omitempty"`
	Country          string   `json:"country,omitempty" yaml:"country,omitempty"`

	ResolvedCategory string `json:"resolvedCategory" yaml:"resolved_category"`
	CategoryLabel    string `json:"categoryLabel" yaml:"category_label"`
	Remaining        *int   `json:"remaining,omitempty" yaml:"remaining,omitempty"`
	Status           string `json:"status" yaml:"status"`
}

func toExportEvents(views []handlers.EventView) []exportEvent {
	out := make([]exportEvent, 0, len(views))
	for i := range views {
		e := &views[i].Event
		s := views[i].Summary

		var start string
		if e.StartDate != nil {
			start = e.StartDate.UTC().Format(time.RFC3339)
		}

		var vibes []string
		if len(e.Vibes) > 0 {
			vibes = entities.VibeKeys(e.Vibes)
		}

		out = append(out, exportEvent{
			ID:               e.ID,
			Title:            e.Title,
			HostID:           e.HostID,
			Category:         e.Category,
			MainCategory:     e.MainCategory,
			Vibes:            vibes,
			Capacity:         e.Capacity,
			AttendeesCount:   e.AttendeesCount,
			StartDate:        start,
			Date:             e.Date,
			Time:             e.Time,
			TimeZone:         e.TimeZone,
			SessionFrequency: string(e.SessionFrequency),
			SessionMode:      string(e.SessionMode),
			City:             e.City,
			Country:          e.Country,
			ResolvedCategory: string(s.Category),
			CategoryLabel:    s.CategoryLabel,
			Remaining:        s.Remaining,
			Status:           string(s.Status),
		})
	}
	return out
}

func formatJSON(w io.Writer, views []handlers.EventView) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toExportEvents(views))
}

func formatYAML(w io.Writer, views []handlers.EventView) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(toExportEvents(views)); err != nil {
		return err
	}
	return encoder.Close()
}

// csvHeader matches the importer's column names so an export can be
// re-imported; the derived columns are ignored on import.
var csvHeader = []string{
	"id", "title", "host_id", "category", "main_category", "vibes",
	"capacity", "attendees_count", "start_date", "date", "time", "time_zone",
	"session_frequency", "session_mode", "city", "country",
	"resolved_category", "category_label", "remaining", "status",
}

func formatCSV(w io.Writer, views []handlers.EventView) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, e := range toExportEvents(views) {
		row := []string{
			e.ID,
			e.Title,
			e.HostID,
			e.Category,
			e.MainCategory,
			strings.Join(e.Vibes, ";"),
			optionalInt(e.Capacity),
			strconv.Itoa(e.AttendeesCount),
			e.StartDate,
			e.Date,
			e.Time,
			e.TimeZone,
			e.SessionFrequency,
			e.SessionMode,
			e.City,
			e.Country,
			e.ResolvedCategory,
			e.CategoryLabel,
			optionalInt(e.Remaining),
			e.Status,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func optionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
