package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/notesapp/notes-manager/internal/core/domain"
	"github.com/notesapp/notes-manager/internal/core/ports"
)

type NoteService struct {
	repo   ports.NoteRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewNoteService(repo ports.NoteRepository, logger zerolog.Logger) *NoteService {
	return &NoteService{repo: repo, logger: logger, now: time.Now}
}

// List returns every note owned by ownerID. An owner with no notes gets an
// empty slice, never nil.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]domain.Note, error) {
	notes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	return notes, nil
}

func (s *NoteService) Create(ctx context.Context, ownerID string, in ports.NoteInput) (*domain.Note, error) {
	if isBlank(in.Title) || isBlank(in.Description) {
		return nil, domain.Invalid("title and description are required")
	}

	now := s.now().UTC()
	note := &domain.Note{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Tags:        domain.UniqueTags(in.Tags),
		Date:        calendarDate(in.Date),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, note)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to create note")
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.logger.Info().Str("note_id", created.ID).Str("owner_id", ownerID).Msg("note created")
	return created, nil
}

// Get returns the note only when ownerID owns it. Foreign notes are reported
// as not found.
func (s *NoteService) Get(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !note.OwnedBy(ownerID) {
		return nil, domain.ErrNoteNotFound
	}
	return note, nil
}

func (s *NoteService) Update(ctx context.Context, ownerID, noteID string, upd ports.NoteUpdate) (*domain.Note, error) {
	note, err := s.owned(ctx, ownerID, noteID)
	if err != nil {
		return nil, err
	}

	if upd.Title != nil {
		if isBlank(*upd.Title) {
			return nil, domain.Invalid("title cannot be blank")
		}
		note.Title = *upd.Title
	}
	if upd.Description != nil {
		if isBlank(*upd.Description) {
			return nil, domain.Invalid("description cannot be blank")
		}
		note.Description = *upd.Description
	}
	if upd.Tags != nil {
		note.Tags = domain.UniqueTags(*upd.Tags)
	}
	switch {
	case upd.Date != nil:
		note.Date = calendarDate(upd.Date)
	case upd.ClearDate:
		note.Date = nil
	}
	note.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.logger.Info().Str("note_id", note.ID).Msg("note updated")
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	if _, err := s.owned(ctx, ownerID, noteID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, noteID, ownerID); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.logger.Info().Str("note_id", noteID).Msg("note deleted")
	return nil
}

// owned loads a note and checks that ownerID may mutate it.
func (s *NoteService) owned(ctx context.Context, ownerID, noteID string) (*domain.Note, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !note.OwnedBy(ownerID) {
		return nil, domain.ErrForbidden
	}
	return note, nil
}

func calendarDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := domain.CalendarDate(*t)
	return &d
}
