package ports

import (
	"context"
	"io"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// CreateNoteInput carries the fields of a note creation request. Image is
// optional; when non-nil the binary is stored under a generated name and
// ImageName only contributes its file extension.
type CreateNoteInput struct {
	Text      string
	Tag       string
	OwnerID   string
	Image     io.Reader
	ImageName string
}

// NoteService is the CRUD orchestration contract for notes.
type NoteService interface {
	List(ctx context.Context, ownerID string) ([]domain.NoteView, error)
	Create(ctx context.Context, in CreateNoteInput) (*domain.NoteView, error)
	Update(ctx context.Context, id, text, tag string) (*domain.NoteView, error)
	Delete(ctx context.Context, id string) error
	// FetchImage streams the note's attached binary. It returns
	// domain.ErrImageNotFound both when the note carries no image reference
	// and when the referenced binary is absent from storage. The second
	// return value is the stored filename, for content-type detection.
	FetchImage(ctx context.Context, noteID string) (io.ReadCloser, string, error)
}
