package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ersonp/circle-core/internal/domain/entities"
	"github.com/ersonp/circle-core/internal/domain/services"
)

// EventHandler handles reading, filtering and editing stored events.
type EventHandler struct {
	catalog    *services.CatalogService
	classifier *services.Classifier
	logger     *zap.Logger
	now        func() time.Time
}

// NewEventHandler creates a new event handler.
func NewEventHandler(catalog *services.CatalogService, classifier *services.Classifier, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		catalog:    catalog,
		classifier: classifier,
		logger:     logger,
		now:        time.Now,
	}
}

// EventView is a stored event together with its derived summary.
type EventView struct {
	Event   entities.Event
	Summary services.Summary
}

// EventDetail is an EventView with its audit trail.
type EventDetail struct {
	EventView
	History []entities.AuditEntry
}

// List returns the events matching spec, in store order, summarized in locale.
func (h *EventHandler) List(ctx context.Context, spec entities.FilterSpec, locale entities.Locale) ([]EventView, error) {
	now := h.now()
	events, err := h.catalog.SearchAt(ctx, spec, now)
	if err != nil {
		return nil, fmt.Errorf("searching events: %w", err)
	}

	h.logger.Debug("filtered events",
		zap.Int("matched", len(events)),
		zap.Bool("unconstrained", spec.IsUnconstrained()),
	)
	return h.views(events, locale, now), nil
}

// ByStoredCategory returns events whose stored category fields spell cat
// in any taxonomy generation.
func (h *EventHandler) ByStoredCategory(ctx context.Context, cat entities.Category, locale entities.Locale) ([]EventView, error) {
	events, err := h.catalog.ByStoredCategory(ctx, cat)
	if err != nil {
		return nil, err
	}
	return h.views(events, locale, h.now()), nil
}

// Show returns one event with its summary and history.
func (h *EventHandler) Show(ctx context.Context, id string, locale entities.Locale) (*EventDetail, error) {
	event, err := h.catalog.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	history, err := h.catalog.History(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EventDetail{
		EventView: EventView{
			Event:   *event,
			Summary: h.classifier.Summarize(event, locale, h.now()),
		},
		History: history,
	}, nil
}

// Delete removes an event.
func (h *EventHandler) Delete(ctx context.Context, id string) error {
	if err := h.catalog.Delete(ctx, id); err != nil {
		return err
	}
	h.logger.Info("deleted event", zap.String("id", id))
	return nil
}

// AddVibeResult is the outcome of attaching a custom vibe.
type AddVibeResult struct {
	Vibe    entities.Vibe
	Created bool
}

// AddCustomVibe attaches a custom vibe to an event. Re-adding the same
// labels is a no-op that returns the existing vibe.
func (h *EventHandler) AddCustomVibe(ctx context.Context, eventID, labelEN, labelFR string) (*AddVibeResult, error) {
	vibe, created, err := h.catalog.AddCustomVibe(ctx, eventID, labelEN, labelFR)
	if err != nil {
		h.logger.Debug("custom vibe not added", zap.String("event", eventID), zap.Error(err))
		return nil, err
	}

	if created {
		h.logger.Info("added custom vibe", zap.String("event", eventID), zap.String("key", vibe.Key))
	}
	return &AddVibeResult{Vibe: vibe, Created: created}, nil
}

func (h *EventHandler) views(events []entities.Event, locale entities.Locale, now time.Time) []EventView {
	views := make([]EventView, len(events))
	for i := range events {
		views[i] = EventView{
			Event:   events[i],
			Summary: h.classifier.Summarize(&events[i], locale, now),
		}
	}
	return views
}
