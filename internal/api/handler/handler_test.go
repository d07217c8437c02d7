package handler

import (
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/notesapp/notes-manager/internal/api/middleware"
	"github.com/notesapp/notes-manager/internal/core/domain"
)

var alice = &domain.User{ID: "u-alice", Username: "Alice", Email: "alice@example.com"}

// newTestContext builds an echo.Context with the validator wired. When user
// is non-nil it is injected the way the Auth middleware would.
func newTestContext(method, target, body string, user *domain.User) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req = httptest.NewRequest(method, target, nil)
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != nil {
		c.Set(middleware.UserKey, user)
	}
	return c, rec
}
