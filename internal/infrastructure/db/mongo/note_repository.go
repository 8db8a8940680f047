package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/quicknotes/notes-api/internal/core/domain"
)

const collectionNotes = "notes"

type NoteRepository struct {
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{coll: db.Collection(collectionNotes)}
}

type noteDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Text      string             `bson:"text"`
	Tag       string             `bson:"tag"`
	Image     string             `bson:"image,omitempty"`
	OwnerID   string             `bson:"owner_id"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d noteDoc) toDomain() *domain.Note {
	return &domain.Note{
		ID:        d.ID.Hex(),
		Text:      d.Text,
		Tag:       domain.Tag(d.Tag),
		Image:     d.Image,
		OwnerID:   d.OwnerID,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := noteDoc{
		Text:      note.Text,
		Tag:       string(note.Tag),
		Image:     note.Image,
		OwnerID:   note.OwnerID,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	created := *note
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc noteDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return doc.toDomain(), nil
}

// ListByOwner returns the owner's notes newest-first. The secondary _id sort
// keeps ties stable in insertion order, since ObjectIDs grow monotonically.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: 1},
	})
	cur, err := r.coll.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cur.Close(ctx)

	notes := make([]domain.Note, 0)
	for cur.Next(ctx) {
		var doc noteDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		notes = append(notes, *doc.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) error {
	oid, err := primitive.ObjectIDFromHex(note.ID)
	if err != nil {
		return domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{
		"text":       note.Text,
		"tag":        string(note.Tag),
		"updated_at": note.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNoteNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates the owner/created_at compound index used by ListByOwner.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "owner_id", Value: 1},
			{Key: "created_at", Value: -1},
		},
	})
	return err
}
