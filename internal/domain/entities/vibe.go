package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// VibeKind distinguishes system presets from user-authored vibes.
type VibeKind int

const (
	// VibePreset is a system-defined vibe belonging to exactly one category.
	VibePreset VibeKind = iota
	// VibeCustom is a user-authored vibe with a generated key.
	VibeCustom
)

// String implements fmt.Stringer.
func (k VibeKind) String() string {
	switch k {
	case VibePreset:
		return "preset"
	case VibeCustom:
		return "custom"
	default:
		return fmt.Sprintf("VibeKind(%d)", int(k))
	}
}

// MarshalText renders the kind by name.
func (k VibeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Vibe is a sub-tag on an event. Category is only set for presets.
type Vibe struct {
	Kind     VibeKind `json:"-" yaml:"kind"`
	Key      string   `json:"key" yaml:"key"`
	Labels   Labels   `json:"labels" yaml:"labels"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`
}

// IsPreset reports whether v is a system preset.
func (v Vibe) IsPreset() bool {
	return v.Kind == VibePreset
}

// storedVibe is the structured on-disk shape of a vibe.
type storedVibe struct {
	Key      string   `json:"key"`
	Labels   *Labels  `json:"labels,omitempty"`
	Custom   bool     `json:"custom,omitempty"`
	Category Category `json:"category,omitempty"`

	// Older structured records used flat label fields.
	LabelEN string `json:"labelEn,omitempty"`
	LabelFR string `json:"labelFr,omitempty"`
}

// MarshalJSON always writes the structured form.
func (v Vibe) MarshalJSON() ([]byte, error) {
	labels := v.Labels
	return json.Marshal(storedVibe{
		Key:      v.Key,
		Labels:   &labels,
		Custom:   v.Kind == VibeCustom,
		Category: v.Category,
	})
}

// UnmarshalJSON accepts a bare legacy string or a structured object and
// resolves it to a preset or custom vibe. null and entries without a key
// decode to the zero Vibe; CompactVibes drops them.
func (v *Vibe) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var key string
		if err := json.Unmarshal(data, &key); err != nil {
			return fmt.Errorf("decoding vibe: %w", err)
		}
		*v = VibeFromKey(key)
		return nil
	}

	var sv storedVibe
	if err := json.Unmarshal(data, &sv); err != nil {
		return fmt.Errorf("decoding vibe: %w", err)
	}
	key := strings.TrimSpace(sv.Key)
	if key == "" {
		*v = Vibe{}
		return nil
	}
	if !sv.Custom {
		if preset, ok := FindPresetVibe(key); ok {
			*v = preset
			return nil
		}
	}

	labels := Labels{EN: sv.LabelEN, FR: sv.LabelFR}
	if sv.Labels != nil {
		labels = *sv.Labels
	}
	if labels.EN == "" {
		labels.EN = key
	}
	if labels.FR == "" {
		labels.FR = labels.EN
	}
	*v = Vibe{Kind: VibeCustom, Key: key, Labels: labels}
	return nil
}

// VibeFromKey resolves a bare vibe key. Preset keys become that preset;
// anything else becomes a custom vibe labelled with the key itself.
func VibeFromKey(key string) Vibe {
	key = strings.TrimSpace(key)
	if preset, ok := FindPresetVibe(key); ok {
		return preset
	}
	return Vibe{Kind: VibeCustom, Key: key, Labels: Labels{EN: key, FR: key}}
}

// CompactVibes removes vibes without a key, keeping the order of the
// rest. It returns nil when nothing is left.
func CompactVibes(vibes []Vibe) []Vibe {
	var out []Vibe
	for _, v := range vibes {
		if v.Key != "" {
			out = append(out, v)
		}
	}
	return out
}

// VibeKeys returns the keys of vibes in order.
func VibeKeys(vibes []Vibe) []string {
	keys := make([]string, len(vibes))
	for i, v := range vibes {
		keys[i] = v.Key
	}
	return keys
}
