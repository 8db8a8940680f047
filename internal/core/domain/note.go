package domain

import (
	"errors"
	"strings"
	"time"
)

var ErrNoteNotFound = errors.New("note not found")
var ErrImageNotFound = errors.New("image not found")

// Tag is a closed-set category label on a note.
type Tag string

const (
	TagGeneral  Tag = "General"
	TagGym      Tag = "Gym"
	TagFood     Tag = "Food"
	TagBills    Tag = "Bills"
	TagWork     Tag = "Work"
	TagShopping Tag = "Shopping"
	TagPersonal Tag = "Personal"
	TagPrivate  Tag = "Private"
)

// Tags lists every valid tag in display order.
var Tags = []Tag{TagGeneral, TagGym, TagFood, TagBills, TagWork, TagShopping, TagPersonal, TagPrivate}

const maxTextLen = 10000

// ParseTag resolves a tag value from client input. An absent value defaults
// to General; anything outside the closed set is rejected with a message
// naming the offending value.
func ParseTag(value string) (Tag, error) {
	if value == "" {
		return TagGeneral, nil
	}
	for _, t := range Tags {
		if Tag(value) == t {
			return t, nil
		}
	}
	return "", NewValidationError("tag", value+" is not a valid tag")
}

// Note is a single personal note, always owned by exactly one user. The
// owner reference is not cascade-enforced: deleting a user leaves its notes
// in place.
type Note struct {
	ID        string
	Text      string
	Tag       Tag
	Image     string // stored filename of the attached binary, empty when none
	OwnerID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewNote validates text, tag and owner, returning a note ready to persist.
// The image reference can only be set here; updates never touch it.
func NewNote(text, tag, ownerID, image string, now time.Time) (*Note, error) {
	ve := &ValidationError{}

	text = strings.TrimSpace(text)
	switch {
	case text == "":
		ve.add("text", "Note text is required")
	case len(text) > maxTextLen:
		ve.add("text", "Note text cannot exceed 10000 characters")
	}

	parsed, err := ParseTag(tag)
	if err != nil {
		var tagErr *ValidationError
		if errors.As(err, &tagErr) {
			ve.Fields = append(ve.Fields, tagErr.Fields...)
		}
	}

	if ownerID == "" {
		ve.add("userId", "User ID is required")
	}

	if ve.HasErrors() {
		return nil, ve
	}

	now = now.UTC()
	return &Note{
		Text:      text,
		Tag:       parsed,
		Image:     image,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ApplyUpdate mutates text and tag in place. Unlike creation, text is
// required here; the tag re-defaults to General when omitted. Image and
// owner are immutable.
func (n *Note) ApplyUpdate(text, tag string, now time.Time) error {
	ve := &ValidationError{}

	text = strings.TrimSpace(text)
	switch {
	case text == "":
		ve.add("text", "Text is required")
	case len(text) > maxTextLen:
		ve.add("text", "Note text cannot exceed 10000 characters")
	}

	parsed, err := ParseTag(tag)
	if err != nil {
		var tagErr *ValidationError
		if errors.As(err, &tagErr) {
			ve.Fields = append(ve.Fields, tagErr.Fields...)
		}
	}

	if ve.HasErrors() {
		return ve
	}

	n.Text = text
	n.Tag = parsed
	n.UpdatedAt = now.UTC()
	return nil
}

// HasImage reports whether an image binary is attached.
func (n *Note) HasImage() bool {
	return n.Image != ""
}

// NoteView is the externally visible projection of a Note. The internal
// identifier field name and the stored image filename are never exposed.
type NoteView struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Tag       Tag       `json:"tag"`
	HasImage  bool      `json:"hasImage"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicView projects the note for API responses.
func (n *Note) PublicView() NoteView {
	return NoteView{
		ID:        n.ID,
		Text:      n.Text,
		Tag:       n.Tag,
		HasImage:  n.HasImage(),
		CreatedAt: n.CreatedAt,
	}
}
