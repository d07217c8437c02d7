package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/notesapp/notes-manager/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.Invalid("title is required"), http.StatusBadRequest, "title is required"},
		{"bare validation", domain.ErrValidation, http.StatusBadRequest, "validation failed"},
		{"exists", domain.ErrUserExists, http.StatusBadRequest, "user already exists"},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid Credentials"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "not authorized, token failed"},
		{"forbidden", fmt.Errorf("update: %w", domain.ErrForbidden), http.StatusForbidden, "not authorized to modify this note"},
		{"not found", domain.ErrNoteNotFound, http.StatusNotFound, "note not found"},
		{"echo", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), http.StatusBadRequest, "invalid payload"},
		{"unexpected", errors.New("socket closed"), http.StatusInternalServerError, "internal server error"},
		{"leaked store error", fmt.Errorf("authenticate: %w", domain.ErrUserNotFound), http.StatusInternalServerError, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range cases {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

		h(tc.err, c)

		if rec.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.code, rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid json: %v", tc.name, err)
		}
		if body.Message != tc.msg {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.msg, body.Message)
		}
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrNoteNotFound, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was overwritten: %d %q", rec.Code, rec.Body.String())
	}
}
