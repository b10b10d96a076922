package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/circle-core/internal/application/handlers"
	"github.com/ersonp/circle-core/internal/domain/entities"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		max      int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"Échanger & Réfléchir", 10, "Échange..."},
		{"abcdef", 2, "ab"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.expected, truncate(tt.in, tt.max))
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "unlimited", formatRemaining(nil))
	assert.Equal(t, "0", formatRemaining(entities.IntPtr(0)))
	assert.Equal(t, "4", formatRemaining(entities.IntPtr(4)))
}

func TestDisplayEvents(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, displayEvents(&buf, testViews()))

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "Pottery night")
	assert.Contains(t, out, "Create & Make")
	assert.Contains(t, out, "unlimited")
	assert.Contains(t, out, "2 events")
}

func TestDisplayEventDetail(t *testing.T) {
	views := testViews()
	detail := &handlers.EventDetail{
		EventView: views[0],
		History:   []entities.AuditEntry{{Action: entities.AuditImport, EventID: "evt-1"}},
	}

	var buf bytes.Buffer
	require.NoError(t, displayEventDetail(&buf, detail, entities.LocaleSecondary))

	out := buf.String()
	assert.Contains(t, out, "Create & Make (createMake)")
	assert.Contains(t, out, "Poterie, Artisanat")
	assert.Contains(t, out, "Spots:     3")
	assert.Contains(t, out, "History:")
	assert.Contains(t, out, entities.AuditImport)
}
