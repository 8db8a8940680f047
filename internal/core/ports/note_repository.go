package ports

import (
	"context"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// NoteRepository defines the persistence contract for notes.
type NoteRepository interface {
	Create(ctx context.Context, note *domain.Note) (*domain.Note, error)
	FindByID(ctx context.Context, id string) (*domain.Note, error)
	// ListByOwner returns the owner's notes newest-first by creation time,
	// ties stable in insertion order. An owner without notes yields an
	// empty slice, not an error.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error)
	Update(ctx context.Context, note *domain.Note) error
	Delete(ctx context.Context, id string) error
}
