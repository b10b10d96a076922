package a

import "context"

type Event struct{ ID string }

type EventStore interface {
	SaveEvent(ctx context.Context, event *Event) error
	SaveEvents(ctx context.Context, events []Event) error
	FindEvent(ctx context.Context, id string) (*Event, error)
	LogAction(ctx context.Context, action, id string) error
}

func bad(ctx context.Context, events []Event, store EventStore) {
	for i := range events {
		store.SaveEvent(ctx, &events[i]) // want "potential N\\+1: SaveEvent called inside loop - use SaveEvents"
		store.FindEvent(ctx, events[i].ID) // want "potential N\\+1: FindEvent called inside loop - use FindEventsByIDs"
	}
}

func good(ctx context.Context, events []Event, store EventStore) {
	store.SaveEvents(ctx, events)
	for _, e := range events {
		store.LogAction(ctx, "import", e.ID)
	}
}
