package handler

import (
	"mime"
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"

	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

// NoteHandler handles HTTP requests for note operations.
type NoteHandler struct {
	noteService ports.NoteService
}

func NewNoteHandler(noteService ports.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

type updateNoteRequest struct {
	Text string `json:"text" validate:"required,max=10000"`
	Tag  string `json:"tag"`
}

type noteResponse struct {
	Success bool            `json:"success"`
	Note    domain.NoteView `json:"note"`
}

type deleteResponse struct {
	Success bool `json:"success"`
}

// List returns all of an owner's notes, newest first.
//
// @Summary      List notes for a user
// @Tags         notes
// @Produce      json
// @Param        userId  path      string  true  "Owner's user id"
// @Success      200     {array}   domain.NoteView
// @Failure      400     {object}  map[string]any
// @Router       /notes/{userId} [get]
func (h *NoteHandler) List(c echo.Context) error {
	views, err := h.noteService.List(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// Create adds a new note from a multipart form, with an optional image part.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       multipart/form-data
// @Produce      json
// @Param        text    formData  string  true   "Note text (may contain rich-text HTML)"
// @Param        tag     formData  string  false  "Tag (defaults to General)"
// @Param        userId  formData  string  true   "Owner's user id"
// @Param        image   formData  file    false  "Image attachment"
// @Success      200     {object}  noteResponse
// @Failure      400     {object}  map[string]any
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	in := ports.CreateNoteInput{
		Text:    c.FormValue("text"),
		Tag:     c.FormValue("tag"),
		OwnerID: c.FormValue("userId"),
	}

	if fh, err := c.FormFile("image"); err == nil {
		src, err := fh.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
		}
		defer src.Close()
		in.Image = src
		in.ImageName = fh.Filename
	}

	view, err := h.noteService.Create(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, noteResponse{Success: true, Note: *view})
}

// Update rewrites a note's text and tag.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Note id"
// @Param        body  body      updateNoteRequest  true  "New text and tag"
// @Success      200   {object}  noteResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /notes/{id} [put]
func (h *NoteHandler) Update(c echo.Context) error {
	var req updateNoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	view, err := h.noteService.Update(c.Request().Context(), c.Param("id"), req.Text, req.Tag)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, noteResponse{Success: true, Note: *view})
}

// Delete removes a note.
//
// @Summary      Delete a note
// @Tags         notes
// @Produce      json
// @Param        id  path      string  true  "Note id"
// @Success      200 {object}  deleteResponse
// @Failure      404 {object}  map[string]any
// @Router       /notes/{id} [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	if err := h.noteService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{Success: true})
}

// GetImage streams a note's image attachment.
//
// @Summary      Fetch a note's image
// @Tags         notes
// @Produce      octet-stream
// @Param        id  path  string  true  "Note id"
// @Success      200
// @Failure      404 {object}  map[string]any
// @Router       /notes/{id}/image [get]
func (h *NoteHandler) GetImage(c echo.Context) error {
	rc, name, err := h.noteService.FetchImage(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = echo.MIMEOctetStream
	}
	return c.Stream(http.StatusOK, contentType, rc)
}
