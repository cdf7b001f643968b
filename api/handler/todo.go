package handler

import (
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo-service/api/transport"
	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/httpcontext"
	"github.com/fastygo/todo-service/repository"
	activityUC "github.com/fastygo/todo-service/usecase/activity"
	todoUC "github.com/fastygo/todo-service/usecase/todo"
)

type TodoHandler struct {
	baseHandler
	todos    *todoUC.UseCase
	activity *activityUC.UseCase
}

func NewTodoHandler(todos *todoUC.UseCase, activity *activityUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TodoHandler {
	return &TodoHandler{
		baseHandler: newBaseHandler(adapter, logger),
		todos:       todos,
		activity:    activity,
	}
}

// @Summary List todos
// @Tags todos
// @Param keyword query string false "substring of name or detail"
// @Param progressStatus query string false "not_started | in_progress | completed"
// @Param dueDate query string false "all | overdue | today | this_week | none"
// @Router /api/v1/todos [get]
func (h *TodoHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	req, err := transport.ParseListQuery(ctx.QueryArgs())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	todos, err := h.todos.List(stdCtx, userID, req)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTodoListResponse(todos))
}

// @Summary Create todo
// @Tags todos
// @Accept json
// @Produce json
// @Router /api/v1/todos [post]
func (h *TodoHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	req, err := transport.DecodeCreateTodo(ctx.PostBody())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	created, err := h.todos.Create(stdCtx, userID, req)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, transport.NewTodoDetailResponse(created))
}

// @Summary Get todo with subtask progress
// @Tags todos
// @Router /api/v1/todos/{id} [get]
func (h *TodoHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	detail, err := h.todos.Get(stdCtx, userID, pathID(ctx))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTodoDetailResponse(detail))
}

// @Summary Partially update todo
// @Tags todos
// @Accept json
// @Produce json
// @Router /api/v1/todos/{id} [patch]
func (h *TodoHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	req, err := transport.DecodeUpdateTodo(ctx.PostBody())
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	updated, err := h.todos.Update(stdCtx, userID, pathID(ctx), req)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewTodoDetailResponse(updated))
}

// @Summary Delete todo and its subtasks
// @Tags todos
// @Router /api/v1/todos/{id} [delete]
func (h *TodoHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.todos.Delete(stdCtx, userID, pathID(ctx)); err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondNoContent(ctx)
}

// @Summary Activity history of a todo
// @Tags todos
// @Param limit query int false "max entries, newest first"
// @Router /api/v1/todos/{id}/activity [get]
func (h *TodoHandler) Activity(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	limit, err := parseLimit(ctx.QueryArgs().Peek("limit"))
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}

	entries, err := h.activity.List(stdCtx, userID, pathID(ctx), limit)
	if err != nil {
		h.respondError(ctx, stdCtx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, transport.NewActivityListResponse(entries))
}

func pathID(ctx *fasthttp.RequestCtx) string {
	id, _ := ctx.UserValue("id").(string)
	return id
}

func parseLimit(raw []byte) (int, error) {
	if len(raw) == 0 {
		return 0, nil
	}
	limit, err := strconv.Atoi(string(raw))
	if err != nil || limit <= 0 || limit > repository.MaxActivityLimit {
		return 0, domain.InvalidFormat("limit", "out_of_range")
	}
	return limit, nil
}
