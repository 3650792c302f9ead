package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestType_IsValid(t *testing.T) {
	tests := []struct {
		name      string
		eventType Type
		want      bool
	}{
		{"file selected", TypeFileSelected, true},
		{"analysis completed", TypeAnalysisCompleted, true},
		{"report generated", TypeReportGenerated, true},
		{"unknown", Type("analysis.paused"), false},
		{"empty", Type(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.eventType.IsValid())
		})
	}
}

func TestNewEvent(t *testing.T) {
	e := NewEvent(TypeAnalysisStarted, "run-1", map[string]interface{}{
		"files": 2,
		"mode":  "pair",
	})

	require.NotEmpty(t, e.ID)
	assert.Equal(t, TypeAnalysisStarted, e.Type)
	assert.Equal(t, "run-1", e.RunID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, int64(2), e.GetPayloadInt("files"))
	assert.Equal(t, "pair", e.GetPayloadString("mode"))
}

func TestNewEvent_UniqueIDs(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		e := NewEvent(TypeFileSelected, "", nil)
		assert.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true
	}
}

func TestEvent_PayloadAccessorsOnMissingKeys(t *testing.T) {
	e := NewEvent(TypeFileSelected, "", nil)

	assert.NotNil(t, e.Payload)
	assert.Equal(t, "", e.GetPayloadString("path"))
	assert.Equal(t, int64(0), e.GetPayloadInt("slot"))

	e.Payload["slot"] = 1.0
	assert.Equal(t, int64(1), e.GetPayloadInt("slot"))
}
