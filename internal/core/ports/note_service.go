package ports

import (
	"context"
	"time"

	"github.com/notesapp/notes-manager/internal/core/domain"
)

// NoteInput carries the fields for a new note.
type NoteInput struct {
	Title       string
	Description string
	Tags        []string
	Date        *time.Time
}

// NoteUpdate is a partial update. Nil fields are left untouched; a non-nil
// field overwrites the stored value even when it holds the zero value.
type NoteUpdate struct {
	Title       *string
	Description *string
	Tags        *[]string
	Date        *time.Time
	// ClearDate removes the stored date. Ignored when Date is set.
	ClearDate bool
}

// Empty reports whether the update carries no changes.
func (u NoteUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Tags == nil && u.Date == nil && !u.ClearDate
}

// NoteService defines owner-scoped note use cases.
type NoteService interface {
	List(ctx context.Context, ownerID string) ([]domain.Note, error)
	Create(ctx context.Context, ownerID string, in NoteInput) (*domain.Note, error)
	Get(ctx context.Context, ownerID, noteID string) (*domain.Note, error)
	Update(ctx context.Context, ownerID, noteID string, upd NoteUpdate) (*domain.Note, error)
	Delete(ctx context.Context, ownerID, noteID string) error
}
