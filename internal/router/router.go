package router

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/fastygo/todo-service/api/handler"
)

type Handlers struct {
	Auth    *apiHandler.AuthHandler
	Profile *apiHandler.ProfileHandler
	Todo    *apiHandler.TodoHandler
	Health  *apiHandler.HealthHandler
}

func New(handlers Handlers, authMiddleware func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	// Auth routes
	r.POST("/api/v1/auth/register", handlers.Auth.Register)
	r.POST("/api/v1/auth/login", handlers.Auth.Login)

	// Protected routes
	r.POST("/api/v1/auth/logout", authMiddleware(handlers.Auth.Logout))
	r.GET("/api/v1/profile", authMiddleware(handlers.Profile.GetProfile))

	r.GET("/api/v1/todos", authMiddleware(handlers.Todo.List))
	r.POST("/api/v1/todos", authMiddleware(handlers.Todo.Create))
	r.GET("/api/v1/todos/{id}", authMiddleware(handlers.Todo.Get))
	r.PATCH("/api/v1/todos/{id}", authMiddleware(handlers.Todo.Update))
	r.DELETE("/api/v1/todos/{id}", authMiddleware(handlers.Todo.Delete))
	r.GET("/api/v1/todos/{id}/activity", authMiddleware(handlers.Todo.Activity))

	return r
}
