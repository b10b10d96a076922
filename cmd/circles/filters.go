package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/entities"
)

// filterFlags are the event filter dimensions shared by list and export.
type filterFlags struct {
	category       string
	storedCategory string
	country        string
	city           string
	groupSize      string
	frequencies    []string
	modes          []string
	vibes          []string
	continuity     string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category (any known spelling, resolved to a canonical key)")
	cmd.Flags().StringVar(&f.storedCategory, "stored-category", "", "Match stored category fields only, ignoring vibes and other filters")
	cmd.Flags().StringVar(&f.country, "country", "", "Country (case-insensitive)")
	cmd.Flags().StringVar(&f.city, "city", "", "City (case-insensitive)")
	cmd.Flags().StringVarP(&f.groupSize, "group-size", "g", "", "Capacity band (2-5, 6-10, 11+)")
	cmd.Flags().StringSliceVar(&f.frequencies, "frequency", nil, "Session frequency (weekly, monthly, oneTime); repeatable")
	cmd.Flags().StringSliceVar(&f.modes, "mode", nil, "Session mode (inPerson, online, hybrid); repeatable")
	cmd.Flags().StringSliceVar(&f.vibes, "vibe", nil, "Vibe key; repeatable, matches any")
	cmd.Flags().StringVar(&f.continuity, "continuity", "", "Continuity (startingSoon, ongoing)")
}

// spec validates the flags and builds a filter. Category spellings are
// resolved through the taxonomy so legacy labels are accepted.
func (f *filterFlags) spec(taxonomy *handlers.TaxonomyHandler) (entities.FilterSpec, error) {
	var spec entities.FilterSpec

	if f.category != "" {
		cat, err := resolveCategory(taxonomy, f.category)
		if err != nil {
			return spec, err
		}
		spec.Category = cat
	}

	spec.Country = strings.TrimSpace(f.country)
	spec.City = strings.TrimSpace(f.city)

	if f.groupSize != "" {
		g, err := entities.ParseGroupSize(f.groupSize)
		if err != nil {
			return spec, err
		}
		spec.GroupSize = g
	}

	for _, v := range f.frequencies {
		freq := entities.SessionFrequency(strings.TrimSpace(v))
		if !freq.IsValid() {
			return spec, fmt.Errorf("invalid frequency %q (valid: weekly, monthly, oneTime)", v)
		}
		spec.Frequencies = append(spec.Frequencies, freq)
	}

	for _, v := range f.modes {
		mode := entities.SessionMode(strings.TrimSpace(v))
		if !mode.IsValid() {
			return spec, fmt.Errorf("invalid mode %q (valid: inPerson, online, hybrid)", v)
		}
		spec.Modes = append(spec.Modes, mode)
	}

	for _, v := range f.vibes {
		if key := strings.TrimSpace(v); key != "" {
			spec.Vibes = append(spec.Vibes, key)
		}
	}

	if f.continuity != "" {
		c, err := entities.ParseContinuityChoice(f.continuity)
		if err != nil {
			return spec, err
		}
		spec.Continuity = c
	}

	return spec, nil
}

func resolveCategory(taxonomy *handlers.TaxonomyHandler, raw string) (entities.Category, error) {
	r := taxonomy.Normalize(raw, entities.LocalePrimary)
	if !r.Resolved {
		return "", fmt.Errorf("unknown category %q", raw)
	}
	return r.Category, nil
}

// fetchEvents runs either the stored-category lookup or the compound filter.
func (f *filterFlags) fetchEvents(cmd *cobra.Command, d *Deps) ([]handlers.EventView, error) {
	ctx := cmd.Context()

	if f.storedCategory != "" {
		cat, err := resolveCategory(d.Taxonomy, f.storedCategory)
		if err != nil {
			return nil, err
		}
		return d.Events.ByStoredCategory(ctx, cat, d.Locale)
	}

	spec, err := f.spec(d.Taxonomy)
	if err != nil {
		return nil, err
	}
	return d.Events.List(ctx, spec, d.Locale)
}
