package parsers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// JSONParser parses events from a JSON array.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed events.
func (p *JSONParser) Parse(r io.Reader) ([]RawEvent, error) {
	var events []RawEvent

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&events); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	// Set line numbers (array index + 1, 1-indexed)
	for i := range events {
		events[i].LineNum = i + 1
		events[i].Vibes = entities.CompactVibes(events[i].Vibes)
	}

	return events, nil
}
