package service

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/quicknotes/notes-api/internal/api/metrics"
	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

// NoteService implements note CRUD plus image retrieval. The list cache and
// the image cleaner are optional; a nil cache disables caching and a nil
// cleaner makes image removal synchronous.
type NoteService struct {
	repo    ports.NoteRepository
	images  ports.ImageStore
	cache   ports.NoteListCache
	cleaner ports.ImageCleaner
	logger  zerolog.Logger
}

func NewNoteService(
	repo ports.NoteRepository,
	images ports.ImageStore,
	cache ports.NoteListCache,
	cleaner ports.ImageCleaner,
	logger zerolog.Logger,
) *NoteService {
	return &NoteService{
		repo:    repo,
		images:  images,
		cache:   cache,
		cleaner: cleaner,
		logger:  logger,
	}
}

// List returns the owner's notes newest-first. A cache hit skips the
// repository entirely; cache failures degrade to a normal read.
func (s *NoteService) List(ctx context.Context, ownerID string) ([]domain.NoteView, error) {
	if ownerID == "" {
		return nil, domain.NewValidationError("userId", "User ID is required")
	}

	if s.cache != nil {
		views, hit, err := s.cache.Get(ctx, ownerID)
		if err != nil {
			s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("note list cache read failed")
		} else if hit {
			metrics.ListCacheTotal.WithLabelValues("hit").Inc()
			return views, nil
		} else {
			metrics.ListCacheTotal.WithLabelValues("miss").Inc()
		}
	}

	notes, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error().Err(err).Str("owner_id", ownerID).Msg("failed to list notes")
		return nil, err
	}

	views := make([]domain.NoteView, 0, len(notes))
	for i := range notes {
		views = append(views, notes[i].PublicView())
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, views); err != nil {
			s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("note list cache write failed")
		}
	}

	return views, nil
}

// Create validates and persists a new note, storing the uploaded image
// first when one is attached.
func (s *NoteService) Create(ctx context.Context, in ports.CreateNoteInput) (*domain.NoteView, error) {
	if in.Text == "" || in.OwnerID == "" {
		return nil, domain.NewValidationError("note", "Text and userId are required")
	}

	note, err := domain.NewNote(in.Text, in.Tag, in.OwnerID, "", time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if in.Image != nil {
		name := uuid.NewString() + strings.ToLower(filepath.Ext(in.ImageName))
		if err := s.images.Save(name, in.Image); err != nil {
			s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to store note image")
			return nil, err
		}
		note.Image = name
	}

	created, err := s.repo.Create(ctx, note)
	if err != nil {
		if note.HasImage() {
			s.removeImage(note.Image)
		}
		s.logger.Error().Err(err).Str("owner_id", in.OwnerID).Msg("failed to create note")
		return nil, err
	}

	s.invalidate(ctx, created.OwnerID)
	metrics.NotesCreatedTotal.WithLabelValues(string(created.Tag)).Inc()
	s.logger.Info().Str("note_id", created.ID).Str("owner_id", created.OwnerID).Msg("note created")

	view := created.PublicView()
	return &view, nil
}

// Update mutates text and tag of an existing note. The tag re-defaults to
// General when omitted, mirroring creation.
func (s *NoteService) Update(ctx context.Context, id, text, tag string) (*domain.NoteView, error) {
	if text == "" {
		return nil, domain.NewValidationError("text", "Text is required")
	}

	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNoteNotFound) {
			s.logger.Error().Err(err).Str("note_id", id).Msg("failed to load note for update")
		}
		return nil, err
	}

	if err := note.ApplyUpdate(text, tag, time.Now().UTC()); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, note); err != nil {
		if !errors.Is(err, domain.ErrNoteNotFound) {
			s.logger.Error().Err(err).Str("note_id", id).Msg("failed to update note")
		}
		return nil, err
	}

	s.invalidate(ctx, note.OwnerID)
	s.logger.Info().Str("note_id", note.ID).Msg("note updated")

	view := note.PublicView()
	return &view, nil
}

// Delete removes a note; its stored image binary is cleaned up off the
// request path.
func (s *NoteService) Delete(ctx context.Context, id string) error {
	note, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNoteNotFound) {
			s.logger.Error().Err(err).Str("note_id", id).Msg("failed to load note for delete")
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if !errors.Is(err, domain.ErrNoteNotFound) {
			s.logger.Error().Err(err).Str("note_id", id).Msg("failed to delete note")
		}
		return err
	}

	if note.HasImage() {
		s.removeImage(note.Image)
	}

	s.invalidate(ctx, note.OwnerID)
	metrics.NotesDeletedTotal.Inc()
	s.logger.Info().Str("note_id", id).Msg("note deleted")

	return nil
}

// FetchImage streams a note's attached binary. Missing note, missing image
// reference and missing binary all surface as ErrImageNotFound.
func (s *NoteService) FetchImage(ctx context.Context, noteID string) (io.ReadCloser, string, error) {
	note, err := s.repo.FindByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			return nil, "", domain.ErrImageNotFound
		}
		s.logger.Error().Err(err).Str("note_id", noteID).Msg("failed to load note for image")
		return nil, "", err
	}
	if !note.HasImage() {
		return nil, "", domain.ErrImageNotFound
	}

	rc, err := s.images.Open(note.Image)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", domain.ErrImageNotFound
		}
		s.logger.Error().Err(err).Str("note_id", noteID).Str("image", note.Image).Msg("failed to open note image")
		return nil, "", err
	}

	return rc, note.Image, nil
}

func (s *NoteService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn().Err(err).Str("owner_id", ownerID).Msg("note list cache invalidation failed")
	}
}

func (s *NoteService) removeImage(name string) {
	if s.cleaner != nil {
		s.cleaner.Enqueue(name)
		return
	}
	if err := s.images.Remove(name); err != nil {
		s.logger.Warn().Err(err).Str("image", name).Msg("failed to remove note image")
	}
}
