package middleware

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/valyala/fasthttp"

	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/httpcontext"
	authUC "github.com/fastygo/todo-service/usecase/auth"
)

type authenticatorMock struct {
	mock.Mock
}

func (m *authenticatorMock) Authenticate(ctx context.Context, authorization string) (*authUC.Principal, error) {
	args := m.Called(ctx, authorization)
	var principal *authUC.Principal
	if value := args.Get(0); value != nil {
		principal = value.(*authUC.Principal)
	}
	return principal, args.Error(1)
}

func TestAuth_SetsPrincipal(t *testing.T) {
	authenticator := new(authenticatorMock)
	authenticator.On("Authenticate", mock.Anything, "Bearer good").
		Return(&authUC.Principal{UserID: "user-1", SessionID: "sid-1"}, nil).Once()

	var seenUser, seenSession string
	handler := Auth(authenticator, nil, nil)(func(ctx *fasthttp.RequestCtx) {
		seenUser = httpcontext.UserID(ctx)
		seenSession = httpcontext.SessionID(ctx)
		ctx.SetStatusCode(http.StatusOK)
	})

	var rc fasthttp.RequestCtx
	rc.Request.Header.Set("Authorization", "Bearer good")
	handler(&rc)

	assert.Equal(t, http.StatusOK, rc.Response.StatusCode())
	assert.Equal(t, "user-1", seenUser)
	assert.Equal(t, "sid-1", seenSession)
	authenticator.AssertExpectations(t)
}

func TestAuth_Rejects(t *testing.T) {
	for name, err := range map[string]error{
		"unauthorized":    domain.ErrUnauthorized,
		"backend failure": errors.New("redis down"),
	} {
		t.Run(name, func(t *testing.T) {
			authenticator := new(authenticatorMock)
			authenticator.On("Authenticate", mock.Anything, "").Return(nil, err).Once()

			called := false
			handler := Auth(authenticator, nil, nil)(func(*fasthttp.RequestCtx) { called = true })

			var rc fasthttp.RequestCtx
			handler(&rc)

			assert.False(t, called)
			assert.Equal(t, http.StatusUnauthorized, rc.Response.StatusCode())
			assert.Equal(t, "Bearer", string(rc.Response.Header.Peek("WWW-Authenticate")))
			assert.Contains(t, string(rc.Response.Body()), `"UNAUTHORIZED"`)
		})
	}
}
