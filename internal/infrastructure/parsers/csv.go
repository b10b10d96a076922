package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ersonp/circle-core/internal/domain/entities"
)

// vibeSeparator separates vibe keys inside the vibes column.
const vibeSeparator = ";"

// CSVParser parses events from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed events.
// Expected columns: id, title, host_id, category, main_category, vibes,
// capacity, attendees_count, start_date, date, time, time_zone,
// session_frequency, session_mode, city, country. Only title is required.
func (p *CSVParser) Parse(r io.Reader) ([]RawEvent, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	if _, ok := colIndex["title"]; !ok {
		return nil, fmt.Errorf("missing required column: title")
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawEvents.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawEvent, error) {
	var events []RawEvent
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		event, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

// parseRecord converts a CSV record to a RawEvent.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawEvent, error) {
	event := RawEvent{
		ID:               getColumn(record, colIndex, "id"),
		Title:            getColumn(record, colIndex, "title"),
		HostID:           getColumn(record, colIndex, "host_id"),
		Category:         getColumn(record, colIndex, "category"),
		MainCategory:     getColumn(record, colIndex, "main_category"),
		StartDate:        getColumn(record, colIndex, "start_date"),
		Date:             getColumn(record, colIndex, "date"),
		Time:             getColumn(record, colIndex, "time"),
		TimeZone:         getColumn(record, colIndex, "time_zone"),
		SessionFrequency: getColumn(record, colIndex, "session_frequency"),
		SessionMode:      getColumn(record, colIndex, "session_mode"),
		City:             getColumn(record, colIndex, "city"),
		Country:          getColumn(record, colIndex, "country"),
		LineNum:          lineNum,
	}

	for _, key := range strings.Split(getColumn(record, colIndex, "vibes"), vibeSeparator) {
		if key = strings.TrimSpace(key); key != "" {
			event.Vibes = append(event.Vibes, entities.VibeFromKey(key))
		}
	}

	if capStr := strings.TrimSpace(getColumn(record, colIndex, "capacity")); capStr != "" {
		capacity, err := strconv.Atoi(capStr)
		if err != nil {
			return RawEvent{}, fmt.Errorf("line %d: invalid capacity value %q: %w", lineNum, capStr, err)
		}
		event.Capacity = &capacity
	}

	if countStr := strings.TrimSpace(getColumn(record, colIndex, "attendees_count")); countStr != "" {
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return RawEvent{}, fmt.Errorf("line %d: invalid attendees_count value %q: %w", lineNum, countStr, err)
		}
		event.AttendeesCount = count
	}

	return event, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
