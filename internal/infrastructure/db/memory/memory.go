// Package memory provides process-local repositories for development runs
// and tests. Data is lost on restart.
package memory

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/notesapp/notes-manager/internal/core/domain"
)

// UserRepository keeps users in a map guarded by a mutex. Emails match
// exactly, like the unique index in MongoDB.
type UserRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.User
	email map[string]string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:  make(map[string]domain.User),
		email: make(map[string]string),
	}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.email[user.Email]; exists {
		return nil, domain.ErrUserExists
	}

	stored := *user
	stored.ID = primitive.NewObjectID().Hex()
	r.byID[stored.ID] = stored
	r.email[stored.Email] = stored.ID

	out := stored
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.email[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := r.byID[id]
	return &u, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

// NoteRepository keeps notes in insertion order.
type NoteRepository struct {
	mu    sync.RWMutex
	notes []domain.Note
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{}
}

func (r *NoteRepository) Create(_ context.Context, n *domain.Note) (*domain.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneNote(*n)
	stored.ID = primitive.NewObjectID().Hex()
	r.notes = append(r.notes, stored)

	out := cloneNote(stored)
	return &out, nil
}

func (r *NoteRepository) FindByID(_ context.Context, id string) (*domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(id); i >= 0 {
		out := cloneNote(r.notes[i])
		return &out, nil
	}
	return nil, domain.ErrNoteNotFound
}

func (r *NoteRepository) ListByOwner(_ context.Context, ownerID string) ([]domain.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []domain.Note{}
	for _, n := range r.notes {
		if n.OwnerID == ownerID {
			out = append(out, cloneNote(n))
		}
	}
	return out, nil
}

func (r *NoteRepository) Update(_ context.Context, n *domain.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(n.ID)
	if i < 0 || r.notes[i].OwnerID != n.OwnerID {
		return domain.ErrNoteNotFound
	}
	updated := cloneNote(*n)
	updated.CreatedAt = r.notes[i].CreatedAt
	r.notes[i] = updated
	return nil
}

func (r *NoteRepository) Delete(_ context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 || r.notes[i].OwnerID != ownerID {
		return domain.ErrNoteNotFound
	}
	r.notes = append(r.notes[:i], r.notes[i+1:]...)
	return nil
}

func (r *NoteRepository) index(id string) int {
	for i := range r.notes {
		if r.notes[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneNote(n domain.Note) domain.Note {
	if n.Tags != nil {
		n.Tags = append([]string(nil), n.Tags...)
	}
	if n.Date != nil {
		d := *n.Date
		n.Date = &d
	}
	return n
}
