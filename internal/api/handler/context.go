package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/notesapp/notes-manager/internal/api/middleware"
	"github.com/notesapp/notes-manager/internal/core/domain"
)

// ctxUser returns the caller injected by the Auth middleware. A missing user
// means the route was wired without the middleware, which is reported as 401
// rather than letting a handler run anonymously.
func ctxUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil || user.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}
