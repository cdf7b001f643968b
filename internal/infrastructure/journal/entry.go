package journal

import (
	"time"

	"github.com/google/uuid"

	"github.com/fastygo/todo-service/domain"
)

// Entry is an activity waiting to be flushed to the primary store.
type Entry struct {
	ID        string          `json:"id"`
	Activity  domain.Activity `json:"activity"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

// NewEntry wraps an activity, assigning ids and timestamps that are still empty.
func NewEntry(activity domain.Activity) Entry {
	entry := Entry{Activity: activity}
	entry.normalize()
	return entry
}

func (e *Entry) normalize() {
	if e.Activity.ID == "" {
		e.Activity.ID = uuid.NewString()
	}
	if e.ID == "" {
		e.ID = e.Activity.ID
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if e.Activity.CreatedAt.IsZero() {
		e.Activity.CreatedAt = e.Timestamp
	}
}
