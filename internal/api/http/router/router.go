// Package router wires handlers, middleware and routes into a single
// http.Handler. Registration and login are public; every other route runs
// behind the authenticate middleware.
package router

import (
	"net/http"

	"github.com/taskhive/taskhive-server/internal/api/http/handler"
	"github.com/taskhive/taskhive-server/internal/api/http/middleware"
	"github.com/taskhive/taskhive-server/internal/logger"
	"github.com/taskhive/taskhive-server/internal/model"
	"github.com/taskhive/taskhive-server/internal/service"
)

// Router builds the HTTP route table for user and task operations.
type Router struct {
	authService    *service.Auth
	userService    *service.User
	taskService    *service.Task
	tokenService   *service.TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	userService *service.User,
	taskService *service.Task,
	tokenService *service.TokenService,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		userService:    userService,
		taskService:    taskService,
		tokenService:   tokenService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Register builds the route table and returns the root handler.
func (r *Router) Register() http.Handler {
	authHandler := handler.NewAuth(r.authService, r.contextManager, r.logger)
	userHandler := handler.NewUser(r.userService, r.contextManager, r.logger)
	taskHandler := handler.NewTask(r.taskService, r.contextManager, r.logger)

	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokenService, r.contextManager, r.logger)

	mux := http.NewServeMux()

	// Public routes.
	mux.HandleFunc("POST /users", authHandler.Register)
	mux.HandleFunc("POST /users/login", authHandler.Login)

	// Authenticated routes.
	protected := func(h http.HandlerFunc) http.Handler {
		return authenticate.Handle(h)
	}

	mux.Handle("POST /users/logout", protected(authHandler.Logout))
	mux.Handle("POST /users/logoutAll", protected(authHandler.LogoutAll))

	mux.Handle("GET /users/me", protected(userHandler.Me))
	mux.Handle("PATCH /users/me", protected(userHandler.UpdateMe))
	mux.Handle("DELETE /users/me", protected(userHandler.DeleteMe))
	mux.Handle("POST /users/me/avatar", protected(userHandler.SetAvatar))
	mux.Handle("GET /users/me/avatar", protected(userHandler.GetAvatar))
	mux.Handle("DELETE /users/me/avatar", protected(userHandler.DeleteAvatar))

	mux.Handle("POST /tasks", protected(taskHandler.Create))
	mux.Handle("GET /tasks", protected(taskHandler.List))
	mux.Handle("DELETE /tasks", protected(taskHandler.DeleteAll))
	mux.Handle("GET /tasks/{id}", protected(taskHandler.Get))
	mux.Handle("PATCH /tasks/{id}", protected(taskHandler.Update))
	mux.Handle("DELETE /tasks/{id}", protected(taskHandler.Delete))
	mux.Handle("POST /tasks/{id}/img", protected(taskHandler.SetImage))
	mux.Handle("GET /tasks/{id}/img", protected(taskHandler.GetImage))
	mux.Handle("DELETE /tasks/{id}/img", protected(taskHandler.DeleteImage))

	return logging.Handle(mux)
}
