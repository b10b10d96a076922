package services

import (
	"strings"
	"time"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// FilterService evaluates filter specifications over event collections.
type FilterService struct {
	classifier *Classifier
	taxonomy   *TaxonomyService
}

// NewFilterService creates a new FilterService.
func NewFilterService(classifier *Classifier, taxonomy *TaxonomyService) *FilterService {
	return &FilterService{
		classifier: classifier,
		taxonomy:   taxonomy,
	}
}

// Apply filters events against spec using the current time.
func (s *FilterService) Apply(events []entities.Event, spec entities.FilterSpec) []entities.Event {
	return s.ApplyAt(events, spec, timeNow())
}

// ApplyAt returns the events that satisfy every active dimension of spec,
// in their original order. events is never modified.
func (s *FilterService) ApplyAt(events []entities.Event, spec entities.FilterSpec, now time.Time) []entities.Event {
	preds := s.predicates(spec, now)

	out := make([]entities.Event, 0, len(events))
	for i := range events {
		if matchesAll(&events[i], preds) {
			out = append(out, events[i])
		}
	}
	return out
}

// Matches reports whether a single event satisfies spec.
func (s *FilterService) Matches(e *entities.Event, spec entities.FilterSpec, now time.Time) bool {
	return matchesAll(e, s.predicates(spec, now))
}

type predicate func(e *entities.Event) bool

func matchesAll(e *entities.Event, preds []predicate) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}

// predicates builds one predicate per active dimension.
func (s *FilterService) predicates(spec entities.FilterSpec, now time.Time) []predicate {
	var preds []predicate

	if spec.Category != "" {
		want, ok := s.taxonomy.Normalize(string(spec.Category))
		if !ok {
			return []predicate{func(*entities.Event) bool { return false }}
		}
		preds = append(preds, func(e *entities.Event) bool {
			return s.classifier.ResolveCategory(e) == want
		})
	}

	if country := strings.TrimSpace(spec.Country); country != "" {
		preds = append(preds, func(e *entities.Event) bool {
			return strings.EqualFold(strings.TrimSpace(e.Country), country)
		})
	}

	if city := strings.TrimSpace(spec.City); city != "" {
		preds = append(preds, func(e *entities.Event) bool {
			return strings.EqualFold(strings.TrimSpace(e.City), city)
		})
	}

	if spec.GroupSize != "" {
		band := spec.GroupSize
		preds = append(preds, func(e *entities.Event) bool {
			// No capacity means unlimited, which no band describes.
			return e.Capacity != nil && band.Contains(*e.Capacity)
		})
	}

	if len(spec.Frequencies) > 0 {
		accepted := toSet(spec.Frequencies)
		preds = append(preds, func(e *entities.Event) bool {
			_, ok := accepted[e.SessionFrequency]
			return ok
		})
	}

	if len(spec.Modes) > 0 {
		accepted := toSet(spec.Modes)
		preds = append(preds, func(e *entities.Event) bool {
			_, ok := accepted[e.SessionMode]
			return ok
		})
	}

	if len(spec.Vibes) > 0 {
		accepted := toSet(spec.Vibes)
		preds = append(preds, func(e *entities.Event) bool {
			for _, v := range e.Vibes {
				if _, ok := accepted[v.Key]; ok {
					return true
				}
			}
			return false
		})
	}

	if spec.Continuity != "" {
		choice := spec.Continuity
		preds = append(preds, func(e *entities.Event) bool {
			return choice.Matches(Continuity(e, now))
		})
	}

	return preds
}

func toSet[T comparable](values []T) map[T]struct{} {
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
