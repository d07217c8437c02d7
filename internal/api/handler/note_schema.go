package handler

import (
	"time"

	"github.com/notesapp/notes-manager/internal/core/domain"
	"github.com/notesapp/notes-manager/internal/core/ports"
)

const dateLayout = "2006-01-02"

// errorBody documents the error envelope written by the HTTP error handler.
type errorBody struct {
	Message string `json:"message"`
}

type createNoteRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date,omitempty" example:"2024-05-01"`
}

// updateNoteRequest distinguishes absent fields (nil) from supplied ones.
// An empty date string clears the date.
type updateNoteRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
	Date        *string   `json:"date,omitempty" example:"2024-05-01"`
}

type noteResponse struct {
	ID          string     `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tags        []string   `json:"tags"`
	Date        *time.Time `json:"date,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toNoteResponse(n *domain.Note) noteResponse {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteResponse{
		ID:          n.ID,
		OwnerID:     n.OwnerID,
		Title:       n.Title,
		Description: n.Description,
		Tags:        tags,
		Date:        n.Date,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}
}

func toNoteResponses(notes []domain.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i]))
	}
	return out
}

func (r createNoteRequest) toInput() (ports.NoteInput, error) {
	in := ports.NoteInput{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
	}
	if r.Date != "" {
		d, err := parseDate(r.Date)
		if err != nil {
			return ports.NoteInput{}, err
		}
		in.Date = &d
	}
	return in, nil
}

func (r updateNoteRequest) toUpdate() (ports.NoteUpdate, error) {
	upd := ports.NoteUpdate{
		Title:       r.Title,
		Description: r.Description,
		Tags:        r.Tags,
	}
	if r.Date != nil {
		if *r.Date == "" {
			upd.ClearDate = true
		} else {
			d, err := parseDate(*r.Date)
			if err != nil {
				return ports.NoteUpdate{}, err
			}
			upd.Date = &d
		}
	}
	return upd, nil
}

// parseDate accepts a bare calendar day or a full RFC 3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, domain.Invalid("date must be YYYY-MM-DD or RFC 3339, got %q", s)
}
