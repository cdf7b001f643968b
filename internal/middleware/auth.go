package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/todo-service/api/transport"
	"github.com/fastygo/todo-service/domain"
	"github.com/fastygo/todo-service/pkg/httpcontext"
	appLogger "github.com/fastygo/todo-service/pkg/logger"
	authUC "github.com/fastygo/todo-service/usecase/auth"
)

// Authenticator verifies the Authorization header value.
type Authenticator interface {
	Authenticate(ctx context.Context, authorization string) (*authUC.Principal, error)
}

// Auth rejects requests without a valid bearer token and records the caller on the
// request for downstream handlers.
func Auth(authenticator Authenticator, adapter *httpcontext.Adapter, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if adapter == nil {
		adapter = httpcontext.NewAdapter(0)
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			stdCtx, cancel := adapter.Attach(ctx)
			principal, err := authenticator.Authenticate(stdCtx, string(ctx.Request.Header.Peek("Authorization")))
			cancel()

			if err != nil {
				if !domain.IsDomainError(err, domain.ErrCodeUnauthorized) {
					appLogger.FromContext(stdCtx, logger).Error("authentication backend failure", zap.Error(err))
				}
				unauthorized(ctx)
				return
			}

			httpcontext.SetPrincipal(ctx, principal.UserID, principal.SessionID)
			next(ctx)
		}
	}
}

func unauthorized(ctx *fasthttp.RequestCtx) {
	body, _ := json.Marshal(transport.NewError(string(domain.ErrCodeUnauthorized), "could not validate credentials", nil))
	ctx.Response.Header.SetContentType("application/json")
	ctx.Response.Header.Set("WWW-Authenticate", "Bearer")
	ctx.SetStatusCode(http.StatusUnauthorized)
	ctx.SetBody(body)
}
