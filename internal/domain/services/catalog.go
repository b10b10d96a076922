package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/domain/ports"
)

// catalogPageSize is the number of events read per store round trip.
const catalogPageSize = 500

// CatalogService reads and maintains stored events.
type CatalogService struct {
	store      ports.EventStore
	classifier *Classifier
	filter     *FilterService
	vibes      *VibeService
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store ports.EventStore, classifier *Classifier, filter *FilterService, vibes *VibeService) *CatalogService {
	return &CatalogService{
		store:      store,
		classifier: classifier,
		filter:     filter,
		vibes:      vibes,
	}
}

// All returns every stored event in store order.
func (s *CatalogService) All(ctx context.Context) ([]entities.Event, error) {
	var all []entities.Event
	for offset := 0; ; offset += catalogPageSize {
		page, err := s.store.ListEvents(ctx, catalogPageSize, offset)
		if err != nil {
			return nil, fmt.Errorf("listing events: %w", err)
		}
		all = append(all, page...)
		if len(page) < catalogPageSize {
			return all, nil
		}
	}
}

// Search returns the stored events matching spec at the current time.
func (s *CatalogService) Search(ctx context.Context, spec entities.FilterSpec) ([]entities.Event, error) {
	return s.SearchAt(ctx, spec, timeNow())
}

// SearchAt returns the stored events matching spec at now.
func (s *CatalogService) SearchAt(ctx context.Context, spec entities.FilterSpec, now time.Time) ([]entities.Event, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	return s.filter.ApplyAt(all, spec, now), nil
}

// Get finds an event by ID.
func (s *CatalogService) Get(ctx context.Context, id string) (*entities.Event, error) {
	event, err := s.store.FindEvent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("finding event: %w", err)
	}
	if event == nil {
		return nil, fmt.Errorf("event not found: %s", id)
	}
	return event, nil
}

// ByStoredCategory returns events whose stored category fields match any
// spelling of cat. Unlike Search it does not consider vibes, so it is
// only a coarse pre-selection.
func (s *CatalogService) ByStoredCategory(ctx context.Context, cat entities.Category) ([]entities.Event, error) {
	events, err := s.store.FindEventsByStoredCategory(ctx, s.classifier.LegacyMatchesCanonical(cat))
	if err != nil {
		return nil, fmt.Errorf("finding events by category: %w", err)
	}
	return events, nil
}

// Delete removes an event and records it in the audit log.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	event, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteEvent(ctx, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	if err := s.store.LogAction(ctx, entities.AuditDelete, id, map[string]any{"title": event.Title}); err != nil {
		return fmt.Errorf("logging delete: %w", err)
	}
	return nil
}

// AddCustomVibe attaches a custom vibe to an event. Adding the same labels
// twice returns the vibe already attached and leaves the event unchanged;
// created reports whether the event was modified.
func (s *CatalogService) AddCustomVibe(ctx context.Context, eventID, labelEN, labelFR string) (vibe entities.Vibe, created bool, err error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return entities.Vibe{}, false, err
	}

	key := CustomVibeKey(labelEN, labelFR)
	for _, v := range event.Vibes {
		if v.Key == key {
			return v, false, nil
		}
	}

	vibe, err = s.vibes.CreateCustom(labelEN, labelFR, event.Vibes)
	if err != nil {
		return entities.Vibe{}, false, err
	}

	event.Vibes = append(event.Vibes, vibe)
	event.UpdatedAt = timeNow()
	if err := s.store.SaveEvent(ctx, event); err != nil {
		return entities.Vibe{}, false, fmt.Errorf("saving event: %w", err)
	}

	details := map[string]any{
		"key":      vibe.Key,
		"label_en": vibe.Labels.EN,
		"label_fr": vibe.Labels.FR,
	}
	if err := s.store.LogAction(ctx, entities.AuditCustomVibe, eventID, details); err != nil {
		return entities.Vibe{}, false, fmt.Errorf("logging custom vibe: %w", err)
	}
	return vibe, true, nil
}

// History returns the audit trail of an event.
func (s *CatalogService) History(ctx context.Context, eventID string) ([]entities.AuditEntry, error) {
	entries, err := s.store.FindAuditLog(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("finding audit log: %w", err)
	}
	return entries, nil
}
