package services

import (
	"time"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// Classifier derives the canonical category of events whose stored
// classification may come from any taxonomy generation.
type Classifier struct {
	taxonomy *TaxonomyService
	vibes    *VibeService
}

// NewClassifier creates a new Classifier.
func NewClassifier(taxonomy *TaxonomyService, vibes *VibeService) *Classifier {
	return &Classifier{
		taxonomy: taxonomy,
		vibes:    vibes,
	}
}

// ResolveCategory always returns a canonical category. It tries, in order,
// the stored canonical key, the first vibe that implies a category, the
// legacy category field, and finally DefaultCategory.
func (c *Classifier) ResolveCategory(e *entities.Event) entities.Category {
	if e == nil {
		return entities.DefaultCategory
	}
	if cat, ok := c.taxonomy.Normalize(e.MainCategory); ok {
		return cat
	}
	for _, v := range e.Vibes {
		if cat, ok := c.vibes.CategoryOfVibe(v.Key); ok {
			return cat
		}
	}
	if cat, ok := c.taxonomy.Normalize(e.Category); ok {
		return cat
	}
	return entities.DefaultCategory
}

// LabelFor returns the display label of the event's resolved category.
func (c *Classifier) LabelFor(e *entities.Event, locale entities.Locale) string {
	return c.taxonomy.LabelOf(c.ResolveCategory(e), locale)
}

// LegacyMatchesCanonical returns the folded stored values equivalent to cat.
func (c *Classifier) LegacyMatchesCanonical(cat entities.Category) []string {
	return c.taxonomy.LegacyMatches(cat)
}

// Summary is the derived, display-ready view of an event.
type Summary struct {
	Category      entities.Category         `json:"category" yaml:"category"`
	CategoryLabel string                    `json:"categoryLabel" yaml:"category_label"`
	Remaining     *int                      `json:"remaining,omitempty" yaml:"remaining,omitempty"` // nil means unlimited
	Status        entities.ContinuityStatus `json:"status" yaml:"status"`
	StatusLabel   string                    `json:"statusLabel" yaml:"status_label"`
}

// Summarize derives category, capacity and continuity for display.
func (c *Classifier) Summarize(e *entities.Event, locale entities.Locale, now time.Time) Summary {
	cat := c.ResolveCategory(e)
	status := Continuity(e, now)

	s := Summary{
		Category:      cat,
		CategoryLabel: c.taxonomy.LabelOf(cat, locale),
		Status:        status,
		StatusLabel:   status.Labels().In(locale),
	}
	if remaining, ok := RemainingCapacity(e); ok {
		s.Remaining = &remaining
	}
	return s
}
