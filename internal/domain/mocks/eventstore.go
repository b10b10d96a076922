// Package mocks provides in-memory implementations of the domain ports for tests.
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// EventStore is a mock implementation of ports.EventStore. It keeps events
// in insertion order.
type EventStore struct {
	mu     sync.Mutex
	order  []string
	Events map[string]entities.Event
	Audit  []entities.AuditEntry
	Err    error

	SaveCallCount  int
	SaveBatchCalls int
}

// NewEventStore creates a mock store seeded with events.
func NewEventStore(events ...entities.Event) *EventStore {
	m := &EventStore{Events: make(map[string]entities.Event)}
	for _, e := range events {
		m.put(e)
	}
	return m
}

func (m *EventStore) put(e entities.Event) {
	if m.Events == nil {
		m.Events = make(map[string]entities.Event)
	}
	if _, ok := m.Events[e.ID]; !ok {
		m.order = append(m.order, e.ID)
	}
	m.Events[e.ID] = e
}

// EnsureSchema creates the storage schema if it doesn't exist.
func (m *EventStore) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the store connection.
func (m *EventStore) Close() error {
	return nil
}

// SaveEvent saves or replaces an event.
func (m *EventStore) SaveEvent(_ context.Context, event *entities.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.SaveCallCount++
	m.put(*event)
	return nil
}

// SaveEvents saves or replaces multiple events.
func (m *EventStore) SaveEvents(_ context.Context, events []entities.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.SaveBatchCalls++
	for _, e := range events {
		m.put(e)
	}
	return nil
}

// FindEvent finds an event by ID.
func (m *EventStore) FindEvent(_ context.Context, id string) (*entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	e, ok := m.Events[id]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

// FindEventsByIDs finds the events with the given IDs.
func (m *EventStore) FindEventsByIDs(_ context.Context, ids []string) ([]entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.Event
	for _, id := range ids {
		if e, ok := m.Events[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// ListEvents lists events in insertion order.
func (m *EventStore) ListEvents(_ context.Context, limit, offset int) ([]entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if offset >= len(m.order) {
		return []entities.Event{}, nil
	}
	end := len(m.order)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	out := make([]entities.Event, 0, end-offset)
	for _, id := range m.order[offset:end] {
		out = append(out, m.Events[id])
	}
	return out, nil
}

// CountEvents returns the total number of events.
func (m *EventStore) CountEvents(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	return len(m.order), nil
}

// DeleteEvent deletes an event by ID.
func (m *EventStore) DeleteEvent(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	if _, ok := m.Events[id]; !ok {
		return fmt.Errorf("event not found: %s", id)
	}
	delete(m.Events, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// FindEventsByStoredCategory matches trimmed, lower-cased stored categories.
func (m *EventStore) FindEventsByStoredCategory(_ context.Context, matches []string) ([]entities.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	set := make(map[string]bool, len(matches))
	for _, v := range matches {
		set[v] = true
	}
	var out []entities.Event
	for _, id := range m.order {
		e := m.Events[id]
		if set[strings.ToLower(strings.TrimSpace(e.MainCategory))] || set[strings.ToLower(strings.TrimSpace(e.Category))] {
			out = append(out, e)
		}
	}
	return out, nil
}

// LogAction logs an action to the audit log.
func (m *EventStore) LogAction(_ context.Context, action string, eventID string, details map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Audit = append(m.Audit, entities.AuditEntry{
		ID:      int64(len(m.Audit) + 1),
		Action:  action,
		EventID: eventID,
		Details: details,
	})
	return nil
}

// FindAuditLog finds audit log entries for a specific event.
func (m *EventStore) FindAuditLog(_ context.Context, eventID string) ([]entities.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	var out []entities.AuditEntry
	for _, a := range m.Audit {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}
