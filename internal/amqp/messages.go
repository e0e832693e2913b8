package amqp

import (
	"encoding/json"
	"time"
)

// FileIngestedMessage is the audit event published once per ingested
// file. It carries the outcome only; the records themselves never
// leave the session.
type FileIngestedMessage struct {
	SessionID   string    `json:"session_id"`
	File        string    `json:"file"`
	RowsKept    int       `json:"rows_kept"`
	RowsUndated int       `json:"rows_undated"`
	Error       string    `json:"error,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewFileIngestedMessage stamps an audit event for one file.
func NewFileIngestedMessage(sessionID, file string, rowsKept, rowsUndated int, ingestErr string) *FileIngestedMessage {
	return &FileIngestedMessage{
		SessionID:   sessionID,
		File:        file,
		RowsKept:    rowsKept,
		RowsUndated: rowsUndated,
		Error:       ingestErr,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *FileIngestedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FileIngestedMessageFromJSON creates a message from JSON bytes.
func FileIngestedMessageFromJSON(data []byte) (*FileIngestedMessage, error) {
	var msg FileIngestedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
