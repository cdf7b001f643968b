package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/todo-service/internal/infrastructure/monitor"
)

type journalProbe struct{ size int }

func (p journalProbe) Ping() error        { return nil }
func (p journalProbe) Size() (int, error) { return p.size, nil }

func healthy(context.Context) error { return nil }

func TestHealthHandler_Check(t *testing.T) {
	tests := []struct {
		name   string
		redis  monitor.Check
		status int
		body   string
	}{
		{"all up", healthy, http.StatusOK, `"backlog":3`},
		{"redis down", func(context.Context) error { return errors.New("refused") }, http.StatusServiceUnavailable, `"DEGRADED"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mon := monitor.New(monitor.Checks{Postgres: healthy, Redis: tt.redis, Journal: journalProbe{size: 3}}, 0, nil)
			mon.Refresh(context.Background())

			var rc fasthttp.RequestCtx
			NewHealthHandler(mon, nil, nil).Check(&rc)

			assert.Equal(t, tt.status, rc.Response.StatusCode())
			assert.Contains(t, string(rc.Response.Body()), tt.body)
		})
	}
}
