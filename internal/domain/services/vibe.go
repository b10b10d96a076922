package services

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

const (
	// MaxVibeLabelLength is the longest accepted custom vibe label, in characters.
	MaxVibeLabelLength = 28
	// maxVibeSlugLength bounds the readable part of a generated key.
	maxVibeSlugLength = 30
)

// RejectReason says why a custom vibe was refused.
type RejectReason string

const (
	// RejectEmpty means a label was blank after trimming.
	RejectEmpty RejectReason = "empty"
	// RejectTooLong means a label exceeded MaxVibeLabelLength runes.
	RejectTooLong RejectReason = "too_long"
	// RejectDuplicatePreset means a label matches a preset vibe in either locale.
	RejectDuplicatePreset RejectReason = "duplicate_preset"
	// RejectDuplicateExisting means a label matches a vibe the event already has.
	RejectDuplicateExisting RejectReason = "duplicate_existing"
)

// VibeRejection is returned when a custom vibe label is not acceptable.
// It is a user-correctable condition.
type VibeRejection struct {
	Reason RejectReason
	Locale entities.Locale // which of the two labels was rejected
	Label  string
}

func (r *VibeRejection) Error() string {
	switch r.Reason {
	case RejectEmpty:
		return fmt.Sprintf("%s label is empty", r.Locale)
	case RejectTooLong:
		return fmt.Sprintf("%s label %q is longer than %d characters", r.Locale, r.Label, MaxVibeLabelLength)
	case RejectDuplicatePreset:
		return fmt.Sprintf("%s label %q is already a preset vibe", r.Locale, r.Label)
	case RejectDuplicateExisting:
		return fmt.Sprintf("%s label %q is already used by another vibe", r.Locale, r.Label)
	default:
		return fmt.Sprintf("%s label %q rejected: %s", r.Locale, r.Label, r.Reason)
	}
}

// VibeService exposes the preset vibe table and validates custom vibes.
type VibeService struct {
	presetLabels map[string]struct{}
	categoryOf   map[string]entities.Category
}

// NewVibeService indexes the preset and legacy vibe tables.
func NewVibeService() *VibeService {
	s := &VibeService{
		presetLabels: make(map[string]struct{}, 2*len(entities.PresetVibes)),
		categoryOf:   make(map[string]entities.Category, len(entities.PresetVibes)+len(entities.LegacyVibeCategories)),
	}
	for key, c := range entities.LegacyVibeCategories {
		s.categoryOf[key] = c
	}
	for _, v := range entities.PresetVibes {
		s.categoryOf[v.Key] = v.Category
		for _, l := range v.Labels.All() {
			s.presetLabels[foldKey(l)] = struct{}{}
		}
	}
	return s
}

// Presets returns every preset vibe in declaration order.
func (s *VibeService) Presets() []entities.Vibe {
	out := make([]entities.Vibe, len(entities.PresetVibes))
	copy(out, entities.PresetVibes)
	return out
}

// PresetsFor returns the presets of one category in declaration order.
func (s *VibeService) PresetsFor(c entities.Category) []entities.Vibe {
	var out []entities.Vibe
	for _, v := range entities.PresetVibes {
		if v.Category == c {
			out = append(out, v)
		}
	}
	return out
}

// CategoryOfVibe returns the category a vibe key implies, if any.
func (s *VibeService) CategoryOfVibe(key string) (entities.Category, bool) {
	c, ok := s.categoryOf[key]
	return c, ok
}

// CreateCustom builds a custom vibe from a primary and a secondary label.
// It returns a *VibeRejection if either label is empty, too long, or
// already used by a preset or by one of existing, in either locale.
// existing is not modified.
func (s *VibeService) CreateCustom(labelEN, labelFR string, existing []entities.Vibe) (entities.Vibe, error) {
	en := strings.TrimSpace(labelEN)
	fr := strings.TrimSpace(labelFR)

	candidates := []struct {
		locale entities.Locale
		label  string
	}{
		{entities.LocalePrimary, en},
		{entities.LocaleSecondary, fr},
	}

	for _, c := range candidates {
		if c.label == "" {
			return entities.Vibe{}, &VibeRejection{Reason: RejectEmpty, Locale: c.locale}
		}
		if utf8.RuneCountInString(c.label) > MaxVibeLabelLength {
			return entities.Vibe{}, &VibeRejection{Reason: RejectTooLong, Locale: c.locale, Label: c.label}
		}
	}

	taken := make(map[string]struct{}, 2*len(existing))
	for _, v := range existing {
		for _, l := range v.Labels.All() {
			taken[foldKey(l)] = struct{}{}
		}
	}

	for _, c := range candidates {
		key := foldKey(c.label)
		if _, ok := s.presetLabels[key]; ok {
			return entities.Vibe{}, &VibeRejection{Reason: RejectDuplicatePreset, Locale: c.locale, Label: c.label}
		}
		if _, ok := taken[key]; ok {
			return entities.Vibe{}, &VibeRejection{Reason: RejectDuplicateExisting, Locale: c.locale, Label: c.label}
		}
	}

	return entities.Vibe{
		Kind:   entities.VibeCustom,
		Key:    CustomVibeKey(labelEN, labelFR),
		Labels: entities.Labels{EN: en, FR: fr},
	}, nil
}

// CustomVibeKey derives a stable key from the two labels: a readable slug
// of at most 30 characters followed by a 6 hex digit checksum of the raw
// labels. The same labels always yield the same key.
func CustomVibeKey(labelEN, labelFR string) string {
	slug := vibeSlug(strings.TrimSpace(labelEN) + " " + strings.TrimSpace(labelFR))
	if len(slug) > maxVibeSlugLength {
		slug = strings.TrimRight(slug[:maxVibeSlugLength], "_")
	}
	if slug == "" {
		slug = "vibe"
	}
	return fmt.Sprintf("%s_%06x", slug, vibeChecksum(labelEN+labelFR))
}

// vibeSlug lower-cases s and turns every run of non-alphanumerics into a
// single underscore. The result is ASCII only.
func vibeSlug(s string) string {
	s = strings.ToLower(removeAccents(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}

// vibeChecksum is FNV-1a over s, folded from 32 to 24 bits.
func vibeChecksum(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	sum := h.Sum32()
	return (sum >> 24) ^ (sum & 0xffffff)
}
