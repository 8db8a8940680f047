package ports

import (
	"context"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

// NoteListCache caches an owner's rendered note views between mutations.
// Get's second return reports a hit; a miss with a nil error is normal.
type NoteListCache interface {
	Get(ctx context.Context, ownerID string) ([]domain.NoteView, bool, error)
	Set(ctx context.Context, ownerID string, views []domain.NoteView) error
	Invalidate(ctx context.Context, ownerID string) error
}
