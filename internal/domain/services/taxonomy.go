package services

import (
	"fmt"
	"sort"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// TaxonomyService resolves category keys and labels from every taxonomy
// generation to the canonical set. It is built once and never mutated, so
// it is safe for concurrent use.
type TaxonomyService struct {
	folded   map[string]entities.Category
	stripped map[string]entities.Category
	matches  map[entities.Category][]string
}

// NewTaxonomyService indexes the canonical categories, the built-in alias
// table and any extra aliases (alias -> canonical key) from configuration.
// It fails if an alias would resolve to two different categories.
func NewTaxonomyService(extra map[string]string) (*TaxonomyService, error) {
	s := &TaxonomyService{
		folded:   make(map[string]entities.Category),
		stripped: make(map[string]entities.Category),
		matches:  make(map[entities.Category][]string),
	}

	for _, def := range entities.CanonicalCategories {
		for _, alias := range append([]string{string(def.Key)}, def.Labels.All()...) {
			if err := s.add(alias, def.Key); err != nil {
				return nil, err
			}
		}
	}

	for _, a := range entities.LegacyCategoryAliases {
		if !a.Category.IsCanonical() {
			return nil, fmt.Errorf("alias %q targets unknown category %q", a.Alias, a.Category)
		}
		if err := s.add(a.Alias, a.Category); err != nil {
			return nil, err
		}
	}

	// Sorted so that conflicts are reported deterministically.
	aliases := make([]string, 0, len(extra))
	for alias := range extra {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		target := entities.Category(extra[alias])
		if !target.IsCanonical() {
			return nil, fmt.Errorf("configured alias %q targets unknown category %q", alias, extra[alias])
		}
		if err := s.add(alias, target); err != nil {
			return nil, fmt.Errorf("configured alias: %w", err)
		}
	}

	for c, list := range s.matches {
		sort.Strings(list)
		s.matches[c] = dedupeSorted(list)
	}

	return s, nil
}

func (s *TaxonomyService) add(alias string, c entities.Category) error {
	fk := foldKey(alias)
	if fk == "" {
		return fmt.Errorf("empty alias for category %q", c)
	}
	if prev, ok := s.folded[fk]; ok && prev != c {
		return fmt.Errorf("alias %q maps to both %q and %q", alias, prev, c)
	}
	s.folded[fk] = c
	s.matches[c] = append(s.matches[c], fk)

	sk := stripKey(alias)
	if sk == "" {
		return nil
	}
	if prev, ok := s.stripped[sk]; ok && prev != c {
		return fmt.Errorf("alias %q collides with an alias of %q", alias, prev)
	}
	s.stripped[sk] = c
	return nil
}

// Categories returns the canonical categories in declaration order.
func (s *TaxonomyService) Categories() []entities.Category {
	return entities.CategoryKeys()
}

// LabelOf returns the display label of a canonical category. An unknown
// key or unsupported locale is a programming error and panics.
func (s *TaxonomyService) LabelOf(c entities.Category, locale entities.Locale) string {
	return c.Labels().In(locale)
}

// Normalize maps a raw stored value to its canonical category. Lookups go
// from exact key, to folded form, to stripped form. An unresolvable value
// is reported with ok == false; it is not an error.
func (s *TaxonomyService) Normalize(raw string) (entities.Category, bool) {
	if c := entities.Category(raw); c.IsCanonical() {
		return c, true
	}
	if c, ok := s.folded[foldKey(raw)]; ok {
		return c, true
	}
	if sk := stripKey(raw); sk != "" {
		if c, ok := s.stripped[sk]; ok {
			return c, true
		}
	}
	return "", false
}

// LegacyMatches returns every folded key and label equivalent to c, sorted.
// It is meant for queries that match raw stored values and cannot run the
// classifier. The returned slice is a copy.
func (s *TaxonomyService) LegacyMatches(c entities.Category) []string {
	list := s.matches[c]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func dedupeSorted(in []string) []string {
	if len(in) == 0 {
		return in
	}
	out := in[:1]
	for _, v := range in[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
