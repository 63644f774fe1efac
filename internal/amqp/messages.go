package amqp

import (
	"encoding/json"
	"time"
)

// ArchivedMessage announces that one transaction was archived at the remote
// source. Consumers re-fetch whatever they need; the message carries only
// the opaque record id.
type ArchivedMessage struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewArchivedMessage(id string) *ArchivedMessage {
	return &ArchivedMessage{ID: id, Timestamp: time.Now()}
}

func (m *ArchivedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ArchivedMessageFromJSON(data []byte) (*ArchivedMessage, error) {
	var msg ArchivedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
