package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/quicknotes/notes-api/internal/core/domain"
	"github.com/quicknotes/notes-api/internal/core/ports"
)

type stubNoteService struct {
	listFn       func(ctx context.Context, ownerID string) ([]domain.NoteView, error)
	createFn     func(ctx context.Context, in ports.CreateNoteInput) (*domain.NoteView, error)
	updateFn     func(ctx context.Context, id, text, tag string) (*domain.NoteView, error)
	deleteFn     func(ctx context.Context, id string) error
	fetchImageFn func(ctx context.Context, noteID string) (io.ReadCloser, string, error)
}

func (s *stubNoteService) List(ctx context.Context, ownerID string) ([]domain.NoteView, error) {
	return s.listFn(ctx, ownerID)
}

func (s *stubNoteService) Create(ctx context.Context, in ports.CreateNoteInput) (*domain.NoteView, error) {
	return s.createFn(ctx, in)
}

func (s *stubNoteService) Update(ctx context.Context, id, text, tag string) (*domain.NoteView, error) {
	return s.updateFn(ctx, id, text, tag)
}

func (s *stubNoteService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func (s *stubNoteService) FetchImage(ctx context.Context, noteID string) (io.ReadCloser, string, error) {
	return s.fetchImageFn(ctx, noteID)
}

func TestNoteHandler_List(t *testing.T) {
	e := echo.New()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	stub := &stubNoteService{
		listFn: func(ctx context.Context, ownerID string) ([]domain.NoteView, error) {
			if ownerID != "owner1" {
				t.Fatalf("unexpected owner: %s", ownerID)
			}
			return []domain.NoteView{
				{ID: "n2", Text: "newer", Tag: domain.TagWork, CreatedAt: created.Add(time.Minute)},
				{ID: "n1", Text: "older", Tag: domain.TagGeneral, CreatedAt: created},
			}, nil
		},
	}
	handler := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/notes/owner1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("owner1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// Bare array, not an envelope.
	var views []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("expected a JSON array: %v", err)
	}
	if len(views) != 2 || views[0]["id"] != "n2" || views[1]["id"] != "n1" {
		t.Fatalf("unexpected payload: %+v", views)
	}
	if _, leaked := views[0]["ownerId"]; leaked {
		t.Fatalf("owner id leaked into list payload")
	}
}

func TestNoteHandler_List_EmptyArray(t *testing.T) {
	e := echo.New()
	stub := &stubNoteService{
		listFn: func(ctx context.Context, ownerID string) ([]domain.NoteView, error) {
			return []domain.NoteView{}, nil
		},
	}
	handler := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/notes/owner1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("owner1")

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}

func multipartNote(t *testing.T, fields map[string]string, imageName string, image []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if imageName != "" {
		fw, err := w.CreateFormFile("image", imageName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(image); err != nil {
			t.Fatalf("write image: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func TestNoteHandler_Create(t *testing.T) {
	e := echo.New()
	stub := &stubNoteService{
		createFn: func(ctx context.Context, in ports.CreateNoteInput) (*domain.NoteView, error) {
			if in.Text != "buy milk" || in.Tag != "Shopping" || in.OwnerID != "owner1" {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.Image != nil {
				t.Fatalf("no image part was sent")
			}
			return &domain.NoteView{ID: "n1", Text: in.Text, Tag: domain.TagShopping}, nil
		},
	}
	handler := NewNoteHandler(stub)

	body, contentType := multipartNote(t, map[string]string{
		"text":   "buy milk",
		"tag":    "Shopping",
		"userId": "owner1",
	}, "", nil)
	req := httptest.NewRequest(http.MethodPost, "/notes", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	note, ok := resp["note"].(map[string]any)
	if resp["success"] != true || !ok || note["id"] != "n1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestNoteHandler_Create_WithImage(t *testing.T) {
	e := echo.New()
	stub := &stubNoteService{
		createFn: func(ctx context.Context, in ports.CreateNoteInput) (*domain.NoteView, error) {
			if in.Image == nil || in.ImageName != "pic.png" {
				t.Fatalf("image part not forwarded: %+v", in)
			}
			raw, err := io.ReadAll(in.Image)
			if err != nil || string(raw) != "png-bytes" {
				t.Fatalf("image bytes mangled: %q %v", raw, err)
			}
			return &domain.NoteView{ID: "n1", Text: in.Text, Tag: domain.TagGeneral, HasImage: true}, nil
		},
	}
	handler := NewNoteHandler(stub)

	body, contentType := multipartNote(t, map[string]string{
		"text":   "with image",
		"userId": "owner1",
	}, "pic.png", []byte("png-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/notes", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	note := resp["note"].(map[string]any)
	if note["hasImage"] != true {
		t.Fatalf("expected hasImage true: %+v", note)
	}
}

func TestNoteHandler_Update(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubNoteService{
		updateFn: func(ctx context.Context, id, text, tag string) (*domain.NoteView, error) {
			if id != "n1" || text != "edited" || tag != "Gym" {
				t.Fatalf("unexpected args: %s %s %s", id, text, tag)
			}
			return &domain.NoteView{ID: id, Text: text, Tag: domain.TagGym}, nil
		},
	}
	handler := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/notes/n1", strings.NewReader(`{"text":"edited","tag":"Gym"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("n1")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	note := resp["note"].(map[string]any)
	if note["text"] != "edited" || note["tag"] != "Gym" {
		t.Fatalf("unexpected note: %+v", note)
	}
}

func TestNoteHandler_Update_MissingText(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubNoteService{
		updateFn: func(ctx context.Context, id, text, tag string) (*domain.NoteView, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/notes/n1", strings.NewReader(`{"tag":"Gym"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("n1")

	err := handler.Update(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestNoteHandler_Update_NotFound(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubNoteService{
		updateFn: func(ctx context.Context, id, text, tag string) (*domain.NoteView, error) {
			return nil, domain.ErrNoteNotFound
		},
	}
	handler := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodPut, "/notes/ghost", strings.NewReader(`{"text":"edited"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := handler.Update(c); !errors.Is(err, domain.ErrNoteNotFound) {
		t.Fatalf("expected ErrNoteNotFound, got %v", err)
	}
}

func TestNoteHandler_Delete(t *testing.T) {
	e := echo.New()
	stub := &stubNoteService{
		deleteFn: func(ctx context.Context, id string) error {
			if id != "n1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	handler := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/notes/n1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("n1")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestNoteHandler_GetImage(t *testing.T) {
	e := echo.New()
	stub := &stubNoteService{
		fetchImageFn: func(ctx context.Context, noteID string) (io.ReadCloser, string, error) {
			return io.NopCloser(strings.NewReader("png-bytes")), "abc123.png", nil
		},
	}
	handler := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/notes/n1/image", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("n1")

	if err := handler.GetImage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "image/png") {
		t.Fatalf("unexpected content type: %s", ct)
	}
	if rec.Body.String() != "png-bytes" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestNoteHandler_GetImage_NotFound(t *testing.T) {
	e := echo.New()
	stub := &stubNoteService{
		fetchImageFn: func(ctx context.Context, noteID string) (io.ReadCloser, string, error) {
			return nil, "", domain.ErrImageNotFound
		},
	}
	handler := NewNoteHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/notes/ghost/image", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	if err := handler.GetImage(c); !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}
