package domain

import (
	"encoding/json"
	"time"
)

// Activity actions recorded for a todo.
const (
	ActivityCreated   = "created"
	ActivityUpdated   = "updated"
	ActivityCompleted = "completed"
	ActivitySuccessor = "successor_created"
	ActivityDeleted   = "deleted"
)

// Activity is one entry of a todo's history. Payload holds the todo snapshot after the change.
type Activity struct {
	ID        string          `json:"id"`
	TodoID    string          `json:"todo_id"`
	OwnerID   string          `json:"owner_id"`
	Action    string          `json:"action"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}
