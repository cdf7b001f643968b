package services

import (
	"context"
	"encoding/json"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/usecase"
)

// ActivityJournal adapts the processor to the use case recorder port.
type ActivityJournal struct {
	processor *JournalProcessor
}

func NewActivityJournal(processor *JournalProcessor) *ActivityJournal {
	return &ActivityJournal{processor: processor}
}

func (j *ActivityJournal) RecordTodo(ctx context.Context, action string, todo *domain.Todo) error {
	if j.processor == nil || todo == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(todo)
	if err != nil {
		return err
	}
	return j.processor.Record(ctx, domain.Activity{
		TodoID:  todo.ID,
		OwnerID: todo.OwnerID,
		Action:  action,
		Payload: payload,
	})
}

var _ usecase.ActivityRecorder = (*ActivityJournal)(nil)
