package ports

import (
	"context"

	"github.com/notesapp/notes-manager/internal/core/domain"
)

// NoteRepository defines persistence operations for notes.
type NoteRepository interface {
	Create(ctx context.Context, n *domain.Note) (*domain.Note, error)
	// FindByID returns domain.ErrNoteNotFound for unknown or malformed IDs.
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	// ListByOwner returns the owner's notes in insertion order.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error)
	// Update overwrites the mutable fields of n. The owner is part of the
	// match filter, so a note can never move between owners.
	Update(ctx context.Context, n *domain.Note) error
	Delete(ctx context.Context, id, ownerID string) error
}
