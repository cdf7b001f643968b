package transport

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/optional"
	todouc "github.com/fastygo/todo-service/usecase/todo"
)

const (
	maxNameLength   = 100
	maxDetailLength = 500
)

var updateFields = []string{"name", "detail", "dueDate", "progressStatus", "recurrenceType"}

// DecodeCreateTodo validates a create payload. Unknown keys are ignored.
func DecodeCreateTodo(body []byte) (todouc.CreateRequest, error) {
	var req todouc.CreateRequest

	obj, err := decodeObject(body)
	if err != nil {
		return req, err
	}

	name, err := obj.str("name")
	if err != nil {
		return req, err
	}
	if name == nil {
		return req, domain.RequiredFieldMissing("name")
	}
	if req.Name, err = validName(*name); err != nil {
		return req, err
	}

	detail, err := obj.str("detail")
	if err != nil {
		return req, err
	}
	if detail != nil {
		if err := validDetail(*detail); err != nil {
			return req, err
		}
		req.Detail = *detail
	}

	due, err := obj.str("dueDate")
	if err != nil {
		return req, err
	}
	if due != nil {
		d, err := parseDate("dueDate", *due)
		if err != nil {
			return req, err
		}
		req.DueDate = &d
	}

	status, err := obj.str("progressStatus")
	if err != nil {
		return req, err
	}
	if status != nil {
		if req.ProgressStatus, err = validStatus("progressStatus", *status); err != nil {
			return req, err
		}
	}

	recurrence, err := obj.str("recurrenceType")
	if err != nil {
		return req, err
	}
	if recurrence != nil {
		if req.RecurrenceType, err = validRecurrence(*recurrence); err != nil {
			return req, err
		}
	}

	parentID, err := obj.str("parentId")
	if err != nil {
		return req, err
	}
	if parentID != nil {
		if _, err := uuid.Parse(*parentID); err != nil {
			return req, domain.InvalidFormat("parentId", reasonInvalidFormat)
		}
		req.ParentID = parentID
	}

	return req, nil
}

// DecodeUpdateTodo validates a partial update. Unknown keys are rejected. Explicit nulls
// are passed through so the engine can tell "clear" from "omit".
func DecodeUpdateTodo(body []byte) (todouc.UpdateRequest, error) {
	var req todouc.UpdateRequest

	obj, err := decodeObject(body)
	if err != nil {
		return req, err
	}
	if err := obj.rejectUnknown(updateFields...); err != nil {
		return req, err
	}

	name, err := obj.field("name")
	if err != nil {
		return req, err
	}
	if v, ok := name.Value(); ok {
		trimmed, err := validName(v)
		if err != nil {
			return req, err
		}
		req.Name = optional.Of(trimmed)
	} else {
		req.Name = name
	}

	if req.Detail, err = obj.field("detail"); err != nil {
		return req, err
	}
	if v, ok := req.Detail.Value(); ok {
		if err := validDetail(v); err != nil {
			return req, err
		}
	}

	due, err := obj.field("dueDate")
	if err != nil {
		return req, err
	}
	switch {
	case due.IsNull():
		req.DueDate = optional.Null[time.Time]()
	case due.HasValue():
		v, _ := due.Value()
		d, err := parseDate("dueDate", v)
		if err != nil {
			return req, err
		}
		req.DueDate = optional.Of(d)
	}

	status, err := obj.field("progressStatus")
	if err != nil {
		return req, err
	}
	switch {
	case status.IsNull():
		req.ProgressStatus = optional.Null[domain.ProgressStatus]()
	case status.HasValue():
		v, _ := status.Value()
		s, err := validStatus("progressStatus", v)
		if err != nil {
			return req, err
		}
		req.ProgressStatus = optional.Of(s)
	}

	recurrence, err := obj.field("recurrenceType")
	if err != nil {
		return req, err
	}
	switch {
	case recurrence.IsNull():
		req.RecurrenceType = optional.Null[domain.RecurrenceType]()
	case recurrence.HasValue():
		v, _ := recurrence.Value()
		r, err := validRecurrence(v)
		if err != nil {
			return req, err
		}
		req.RecurrenceType = optional.Of(r)
	}

	return req, nil
}

// ParseListQuery reads keyword, progressStatus and dueDate. Other parameters are rejected.
func ParseListQuery(args *fasthttp.Args) (todouc.ListRequest, error) {
	var (
		req     todouc.ListRequest
		unknown string
	)
	if args == nil {
		return req, nil
	}

	args.VisitAll(func(key, _ []byte) {
		switch string(key) {
		case "keyword", "progressStatus", "dueDate":
		default:
			if unknown == "" {
				unknown = string(key)
			}
		}
	})
	if unknown != "" {
		return req, domain.InvalidFormat(unknown, reasonUnrecognized)
	}

	req.Keyword = string(args.Peek("keyword"))
	if v := args.Peek("progressStatus"); len(v) > 0 {
		status, err := validStatus("progressStatus", string(v))
		if err != nil {
			return req, err
		}
		req.ProgressStatus = status
	}
	if v := args.Peek("dueDate"); len(v) > 0 {
		filter := domain.DueDateFilter(v)
		if !filter.Valid() {
			return req, domain.InvalidFormat("dueDate", reasonInvalidFormat)
		}
		req.DueDate = filter
	}
	return req, nil
}

func validName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", domain.RequiredFieldMissing("name")
	}
	if utf8.RuneCountInString(trimmed) > maxNameLength {
		return "", domain.InvalidFormat("name", "too_long")
	}
	return trimmed, nil
}

func validDetail(detail string) error {
	if utf8.RuneCountInString(detail) > maxDetailLength {
		return domain.InvalidFormat("detail", "too_long")
	}
	return nil
}

func validStatus(field, value string) (domain.ProgressStatus, error) {
	status := domain.ProgressStatus(value)
	if !status.Valid() {
		return "", domain.InvalidFormat(field, reasonInvalidFormat)
	}
	return status, nil
}

func validRecurrence(value string) (domain.RecurrenceType, error) {
	recurrence := domain.RecurrenceType(value)
	if !recurrence.Valid() {
		return "", domain.InvalidFormat("recurrenceType", reasonInvalidFormat)
	}
	return recurrence, nil
}

// TodoResponse is the wire form of a todo.
type TodoResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Detail         string  `json:"detail"`
	DueDate        *string `json:"dueDate"`
	ProgressStatus string  `json:"progressStatus"`
	RecurrenceType string  `json:"recurrenceType"`
	ParentID       *string `json:"parentId"`
	PreviousTodoID *string `json:"previousTodoId"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// TodoDetailResponse adds the subtask progress computed on single reads.
type TodoDetailResponse struct {
	TodoResponse
	CompletedSubtaskCount  int `json:"completedSubtaskCount"`
	TotalSubtaskCount      int `json:"totalSubtaskCount"`
	SubtaskProgressPercent int `json:"subtaskProgressPercent"`
}

func NewTodoResponse(t domain.Todo) TodoResponse {
	return TodoResponse{
		ID:             t.ID,
		Name:           t.Name,
		Detail:         t.Detail,
		DueDate:        FormatDate(t.DueDate),
		ProgressStatus: string(t.ProgressStatus),
		RecurrenceType: string(t.RecurrenceType),
		ParentID:       t.ParentID,
		PreviousTodoID: t.PreviousTodoID,
		CreatedAt:      t.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:      t.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func NewTodoDetailResponse(d *domain.TodoDetail) TodoDetailResponse {
	return TodoDetailResponse{
		TodoResponse:           NewTodoResponse(d.Todo),
		CompletedSubtaskCount:  d.CompletedSubtaskCount,
		TotalSubtaskCount:      d.TotalSubtaskCount,
		SubtaskProgressPercent: d.SubtaskProgressPercent,
	}
}

func NewTodoListResponse(todos []domain.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, NewTodoResponse(t))
	}
	return out
}
