package handlers

import (
	"fmt"

	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/domain/services"
)

// TaxonomyHandler exposes the category and vibe tables.
type TaxonomyHandler struct {
	taxonomy *services.TaxonomyService
	vibes    *services.VibeService
}

// NewTaxonomyHandler creates a new taxonomy handler.
func NewTaxonomyHandler(taxonomy *services.TaxonomyService, vibes *services.VibeService) *TaxonomyHandler {
	return &TaxonomyHandler{
		taxonomy: taxonomy,
		vibes:    vibes,
	}
}

// CategoryView is a canonical category with its presets, labelled in one locale.
type CategoryView struct {
	Key     entities.Category
	Label   string
	Presets []VibeView
}

// VibeView is a vibe labelled in one locale.
type VibeView struct {
	Key      string
	Label    string
	Custom   bool
	Category entities.Category
}

// NormalizeResult is the outcome of resolving a raw stored value.
type NormalizeResult struct {
	Raw      string
	Resolved bool
	Category entities.Category
	Label    string
}

// Categories lists the canonical categories in display order.
func (h *TaxonomyHandler) Categories(locale entities.Locale) []CategoryView {
	cats := h.taxonomy.Categories()
	views := make([]CategoryView, 0, len(cats))
	for _, c := range cats {
		presets := h.vibes.PresetsFor(c)
		view := CategoryView{
			Key:     c,
			Label:   h.taxonomy.LabelOf(c, locale),
			Presets: make([]VibeView, 0, len(presets)),
		}
		for _, v := range presets {
			view.Presets = append(view.Presets, newVibeView(v, locale))
		}
		views = append(views, view)
	}
	return views
}

// Normalize resolves a raw key or label to its canonical category.
func (h *TaxonomyHandler) Normalize(raw string, locale entities.Locale) NormalizeResult {
	result := NormalizeResult{Raw: raw}
	if c, ok := h.taxonomy.Normalize(raw); ok {
		result.Resolved = true
		result.Category = c
		result.Label = h.taxonomy.LabelOf(c, locale)
	}
	return result
}

// Aliases returns every stored spelling equivalent to the category named
// by raw, which may itself be any known spelling.
func (h *TaxonomyHandler) Aliases(raw string) (entities.Category, []string, error) {
	c, ok := h.taxonomy.Normalize(raw)
	if !ok {
		return "", nil, fmt.Errorf("unknown category %q", raw)
	}
	return c, h.taxonomy.LegacyMatches(c), nil
}

// Presets lists preset vibes, optionally restricted to one category.
func (h *TaxonomyHandler) Presets(raw string, locale entities.Locale) ([]VibeView, error) {
	var presets []entities.Vibe
	if raw == "" {
		presets = h.vibes.Presets()
	} else {
		c, ok := h.taxonomy.Normalize(raw)
		if !ok {
			return nil, fmt.Errorf("unknown category %q", raw)
		}
		presets = h.vibes.PresetsFor(c)
	}

	views := make([]VibeView, 0, len(presets))
	for _, v := range presets {
		views = append(views, newVibeView(v, locale))
	}
	return views, nil
}

func newVibeView(v entities.Vibe, locale entities.Locale) VibeView {
	return VibeView{
		Key:      v.Key,
		Label:    v.Labels.In(locale),
		Custom:   v.Kind == entities.VibeCustom,
		Category: v.Category,
	}
}
