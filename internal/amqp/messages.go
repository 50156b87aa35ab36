package amqp

import (
	"encoding/json"
	"time"
)

// MirrorMessage carries one ledger mutation to the spreadsheet worker.
// Save/update actions ship the full record in Payload; delete actions only
// need EntityID.
type MirrorMessage struct {
	Action    string          `json:"action"`
	EntityID  string          `json:"entityId,omitempty"`
	ProjectID string          `json:"projectId,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMirrorMessage creates a mirror message stamped with the current time.
func NewMirrorMessage(action, entityID, projectID string, payload []byte) *MirrorMessage {
	return &MirrorMessage{
		Action:    action,
		EntityID:  entityID,
		ProjectID: projectID,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *MirrorMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MirrorMessageFromJSON creates a message from JSON bytes.
func MirrorMessageFromJSON(data []byte) (*MirrorMessage, error) {
	var msg MirrorMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
