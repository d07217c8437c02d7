package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/notesapp/notes-manager/internal/api/metrics"
	"github.com/notesapp/notes-manager/internal/core/domain"
	"github.com/notesapp/notes-manager/internal/core/ports"
)

type messageResponse struct {
	Message string `json:"message"`
}

// NoteHandler serves the owner-scoped /api/notes resource. Every route
// requires the Auth middleware.
type NoteHandler struct {
	noteService ports.NoteService
}

func NewNoteHandler(noteService ports.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

// List returns the caller's notes in creation order.
//
// @Summary      List notes
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   noteResponse
// @Failure      401  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	notes, err := h.noteService.List(c.Request().Context(), user.ID)
	metrics.NoteOperationsTotal.WithLabelValues("list", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNoteResponses(notes))
}

// Create stores a new note owned by the caller.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "Note fields"
// @Success      201   {object}  noteResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req createNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.NoteOperationsTotal.WithLabelValues("create", metrics.ResultRejected).Inc()
		return err
	}
	in, err := req.toInput()
	if err != nil {
		return err
	}

	note, err := h.noteService.Create(c.Request().Context(), user.ID, in)
	metrics.NoteOperationsTotal.WithLabelValues("create", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toNoteResponse(note))
}

// Get returns one of the caller's notes.
//
// @Summary      Get a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  noteResponse
// @Failure      401  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /notes/{id} [get]
func (h *NoteHandler) Get(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	note, err := h.noteService.Get(c.Request().Context(), user.ID, c.Param("id"))
	metrics.NoteOperationsTotal.WithLabelValues("get", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Update applies a partial update. Fields absent from the body are kept.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Note ID"
// @Param        body  body      updateNoteRequest  true  "Fields to change"
// @Success      200   {object}  noteResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      403   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	upd, err := req.toUpdate()
	if err != nil {
		return err
	}
	if upd.Empty() {
		return domain.Invalid("no fields to update")
	}

	note, err := h.noteService.Update(c.Request().Context(), user.ID, c.Param("id"), upd)
	metrics.NoteOperationsTotal.WithLabelValues("update", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toNoteResponse(note))
}

// Delete removes one of the caller's notes.
//
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Note ID"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorBody
// @Failure      403  {object}  errorBody
// @Failure      404  {object}  errorBody
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	err = h.noteService.Delete(c.Request().Context(), user.ID, c.Param("id"))
	metrics.NoteOperationsTotal.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "note removed"})
}
