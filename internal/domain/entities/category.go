package entities

import (
	"fmt"
	"strings"
)

// Locale selects which of the two display languages a label is rendered in.
type Locale string

const (
	// LocalePrimary is the primary display language (English).
	LocalePrimary Locale = "en"
	// LocaleSecondary is the secondary display language (French).
	LocaleSecondary Locale = "fr"
)

// Locales lists the supported locales, primary first.
var Locales = []Locale{LocalePrimary, LocaleSecondary}

// ParseLocale converts user input such as a flag or config value to a Locale.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case LocalePrimary:
		return LocalePrimary, nil
	case LocaleSecondary:
		return LocaleSecondary, nil
	default:
		return "", fmt.Errorf("unsupported locale %q (valid: en, fr)", s)
	}
}

// Labels holds one display label per locale.
type Labels struct {
	EN string `json:"en" yaml:"en"`
	FR string `json:"fr" yaml:"fr"`
}

// In returns the label for the given locale. An unsupported locale is a
// caller bug and panics.
func (l Labels) In(locale Locale) string {
	switch locale {
	case LocalePrimary:
		return l.EN
	case LocaleSecondary:
		return l.FR
	default:
		panic(fmt.Sprintf("entities: unsupported locale %q", locale))
	}
}

// All returns both labels, primary first.
func (l Labels) All() []string {
	return []string{l.EN, l.FR}
}

// Category is a canonical event category key.
type Category string

// Canonical categories of the current taxonomy generation.
const (
	CategoryTalkThink   Category = "talkThink"
	CategoryMoveBreathe Category = "moveBreathe"
	CategoryCreateMake  Category = "createMake"
	CategoryTasteSavor  Category = "tasteSavor"
	CategoryMeetConnect Category = "meetConnect"
)

// DefaultCategory is used when nothing on an event can be classified.
const DefaultCategory = CategoryMeetConnect

// IsCanonical reports whether c is one of the current canonical keys.
func (c Category) IsCanonical() bool {
	_, ok := categoryIndex[c]
	return ok
}

// Labels returns the display labels of a canonical category.
// Calling it with a non-canonical key panics.
func (c Category) Labels() Labels {
	def, ok := categoryIndex[c]
	if !ok {
		panic(fmt.Sprintf("entities: unknown canonical category %q", string(c)))
	}
	return def.Labels
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// CategoryDefinition describes one canonical category.
type CategoryDefinition struct {
	Key    Category `json:"key" yaml:"key"`
	Labels Labels   `json:"labels" yaml:"labels"`
}

var categoryIndex = func() map[Category]CategoryDefinition {
	m := make(map[Category]CategoryDefinition, len(CanonicalCategories))
	for _, def := range CanonicalCategories {
		m[def.Key] = def
	}
	return m
}()

// CategoryKeys returns the canonical keys in declaration order.
func CategoryKeys() []Category {
	keys := make([]Category, len(CanonicalCategories))
	for i, def := range CanonicalCategories {
		keys[i] = def.Key
	}
	return keys
}
