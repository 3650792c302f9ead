package event

import (
	"time"

	"github.com/google/uuid"
)

// Event records one step of an analysis session
type Event struct {
	ID        string                 `json:"id" yaml:"id"`
	Type      Type                   `json:"type" yaml:"type"`
	RunID     string                 `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Payload   map[string]interface{} `json:"payload,omitempty" yaml:"payload,omitempty"`
	Timestamp time.Time              `json:"timestamp" yaml:"timestamp"`
}

// NewEvent creates an event with a fresh ID and the current time.
// runID may be empty for events outside an analysis run.
func NewEvent(eventType Type, runID string, payload map[string]interface{}) *Event {
	if payload == nil {
		payload = make(map[string]interface{})
	}
	return &Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		RunID:     runID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// GetPayloadString retrieves a string value from the payload
func (e *Event) GetPayloadString(key string) string {
	if str, ok := e.Payload[key].(string); ok {
		return str
	}
	return ""
}

// GetPayloadInt retrieves an integer value from the payload
func (e *Event) GetPayloadInt(key string) int64 {
	switch v := e.Payload[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	}
	return 0
}
