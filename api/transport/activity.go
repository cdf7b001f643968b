package transport

import (
	"encoding/json"
	"time"

	"github.com/fastygo/todo-service/domain"
)

type ActivityResponse struct {
	ID        string          `json:"id"`
	TodoID    string          `json:"todoId"`
	Action    string          `json:"action"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt string          `json:"createdAt"`
}

func NewActivityListResponse(entries []domain.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(entries))
	for _, a := range entries {
		out = append(out, ActivityResponse{
			ID:        a.ID,
			TodoID:    a.TodoID,
			Action:    a.Action,
			Payload:   a.Payload,
			CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return out
}
