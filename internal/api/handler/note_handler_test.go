package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/notesapp/notes-manager/internal/core/domain"
	"github.com/notesapp/notes-manager/internal/core/ports"
)

type stubNoteService struct {
	listFn   func(ctx context.Context, ownerID string) ([]domain.Note, error)
	createFn func(ctx context.Context, ownerID string, in ports.NoteInput) (*domain.Note, error)
	getFn    func(ctx context.Context, ownerID, noteID string) (*domain.Note, error)
	updateFn func(ctx context.Context, ownerID, noteID string, upd ports.NoteUpdate) (*domain.Note, error)
	deleteFn func(ctx context.Context, ownerID, noteID string) error
}

func (s *stubNoteService) List(ctx context.Context, ownerID string) ([]domain.Note, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubNoteService) Create(ctx context.Context, ownerID string, in ports.NoteInput) (*domain.Note, error) {
	return s.createFn(ctx, ownerID, in)
}

func (s *stubNoteService) Get(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	return s.getFn(ctx, ownerID, noteID)
}

func (s *stubNoteService) Update(ctx context.Context, ownerID, noteID string, upd ports.NoteUpdate) (*domain.Note, error) {
	return s.updateFn(ctx, ownerID, noteID, upd)
}

func (s *stubNoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	return s.deleteFn(ctx, ownerID, noteID)
}

func TestNoteHandler_List_EmptyIsArray(t *testing.T) {
	stub := &stubNoteService{
		listFn: func(_ context.Context, ownerID string) ([]domain.Note, error) {
			if ownerID != alice.ID {
				t.Fatalf("expected owner %s, got %s", alice.ID, ownerID)
			}
			return []domain.Note{}, nil
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/api/notes", "", alice)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestNoteHandler_Create(t *testing.T) {
	stub := &stubNoteService{
		createFn: func(_ context.Context, ownerID string, in ports.NoteInput) (*domain.Note, error) {
			if ownerID != alice.ID {
				t.Fatalf("unexpected owner %s", ownerID)
			}
			if in.Title != "Groceries" || len(in.Tags) != 2 {
				t.Fatalf("unexpected input %+v", in)
			}
			if in.Date == nil || in.Date.Format(dateLayout) != "2024-05-01" {
				t.Fatalf("expected date 2024-05-01, got %v", in.Date)
			}
			return &domain.Note{ID: "n1", OwnerID: ownerID, Title: in.Title, Description: in.Description, Tags: in.Tags, Date: in.Date}, nil
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/api/notes",
		`{"title":"Groceries","description":"milk","tags":["home","errand"],"date":"2024-05-01"}`, alice)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp noteResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "n1" || resp.OwnerID != alice.ID || resp.Date == nil {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestNoteHandler_Create_Rejects(t *testing.T) {
	stub := &stubNoteService{
		createFn: func(context.Context, string, ports.NoteInput) (*domain.Note, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewNoteHandler(stub)

	for _, body := range []string{
		`{"description":"no title"}`,
		`{"title":"no description"}`,
		`{"title":"t","description":"d","date":"05/01/2024"}`,
	} {
		c, _ := newTestContext(http.MethodPost, "/api/notes", body, alice)
		if err := h.Create(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestNoteHandler_Create_TagsPassedThrough(t *testing.T) {
	var got ports.NoteInput
	stub := &stubNoteService{
		createFn: func(_ context.Context, ownerID string, in ports.NoteInput) (*domain.Note, error) {
			got = in
			return &domain.Note{ID: "n1", OwnerID: ownerID, Title: in.Title, Description: in.Description, Tags: in.Tags}, nil
		},
	}
	h := NewNoteHandler(stub)

	title := strings.Repeat("t", 500)
	body := `{"title":"` + title + `","description":"d","tags":["Work"," work ",""]}`
	c, rec := newTestContext(http.MethodPost, "/api/notes", body, alice)
	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Title != title {
		t.Fatalf("title was altered")
	}
	if !reflect.DeepEqual(got.Tags, []string{"Work", " work ", ""}) {
		t.Fatalf("tags were altered: %q", got.Tags)
	}
}

func TestNoteHandler_Get_PassesIDAndMapsNotFound(t *testing.T) {
	stub := &stubNoteService{
		getFn: func(_ context.Context, ownerID, noteID string) (*domain.Note, error) {
			if noteID != "n42" {
				t.Fatalf("expected id n42, got %s", noteID)
			}
			return nil, domain.ErrNoteNotFound
		},
	}
	h := NewNoteHandler(stub)

	c, _ := newTestContext(http.MethodGet, "/api/notes/n42", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("n42")
	if err := h.Get(c); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteHandler_Update_OnlySuppliedFields(t *testing.T) {
	var got ports.NoteUpdate
	stub := &stubNoteService{
		updateFn: func(_ context.Context, _, noteID string, upd ports.NoteUpdate) (*domain.Note, error) {
			got = upd
			return &domain.Note{ID: noteID, OwnerID: alice.ID, Title: *upd.Title}, nil
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/api/notes/n1", `{"title":"Renamed"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("n1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Title == nil || *got.Title != "Renamed" {
		t.Fatalf("expected title update, got %+v", got)
	}
	if got.Description != nil || got.Tags != nil || got.Date != nil || got.ClearDate {
		t.Fatalf("expected other fields untouched, got %+v", got)
	}
}

func TestNoteHandler_Update_EmptyTagsAndClearDate(t *testing.T) {
	var got ports.NoteUpdate
	stub := &stubNoteService{
		updateFn: func(_ context.Context, _, noteID string, upd ports.NoteUpdate) (*domain.Note, error) {
			got = upd
			return &domain.Note{ID: noteID, OwnerID: alice.ID}, nil
		},
	}
	h := NewNoteHandler(stub)

	c, _ := newTestContext(http.MethodPut, "/api/notes/n1", `{"tags":[],"date":""}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("n1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got.Tags == nil || len(*got.Tags) != 0 {
		t.Fatalf("expected explicit empty tags, got %+v", got.Tags)
	}
	if !got.ClearDate || got.Date != nil {
		t.Fatalf("expected date to be cleared, got %+v", got)
	}
}

func TestNoteHandler_Update_SetsDate(t *testing.T) {
	var got ports.NoteUpdate
	stub := &stubNoteService{
		updateFn: func(_ context.Context, _, noteID string, upd ports.NoteUpdate) (*domain.Note, error) {
			got = upd
			return &domain.Note{ID: noteID}, nil
		},
	}
	h := NewNoteHandler(stub)

	c, _ := newTestContext(http.MethodPut, "/api/notes/n1", `{"date":"2024-06-02T15:04:05Z"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("n1")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	want := time.Date(2024, 6, 2, 15, 4, 5, 0, time.UTC)
	if got.Date == nil || !got.Date.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got.Date)
	}
}

func TestNoteHandler_Update_Rejects(t *testing.T) {
	stub := &stubNoteService{
		updateFn: func(context.Context, string, string, ports.NoteUpdate) (*domain.Note, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewNoteHandler(stub)

	for _, body := range []string{`{}`, `{"date":"tomorrow"}`} {
		c, _ := newTestContext(http.MethodPut, "/api/notes/n1", body, alice)
		c.SetParamNames("id")
		c.SetParamValues("n1")
		if err := h.Update(c); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("%s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestNoteHandler_Update_Forbidden(t *testing.T) {
	stub := &stubNoteService{
		updateFn: func(context.Context, string, string, ports.NoteUpdate) (*domain.Note, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewNoteHandler(stub)

	c, _ := newTestContext(http.MethodPut, "/api/notes/n1", `{"title":"x"}`, alice)
	c.SetParamNames("id")
	c.SetParamValues("n1")
	if err := h.Update(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	deleted := ""
	stub := &stubNoteService{
		deleteFn: func(_ context.Context, ownerID, noteID string) error {
			if ownerID != alice.ID {
				t.Fatalf("unexpected owner %s", ownerID)
			}
			deleted = noteID
			return nil
		},
	}
	h := NewNoteHandler(stub)

	c, rec := newTestContext(http.MethodDelete, "/api/notes/n7", "", alice)
	c.SetParamNames("id")
	c.SetParamValues("n7")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "n7" || rec.Code != http.StatusOK {
		t.Fatalf("expected n7 deleted with 200, got %q %d", deleted, rec.Code)
	}
}

func TestNoteHandler_RequiresUser(t *testing.T) {
	h := NewNoteHandler(&stubNoteService{})
	c, _ := newTestContext(http.MethodGet, "/api/notes", "", nil)
	if err := h.List(c); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
