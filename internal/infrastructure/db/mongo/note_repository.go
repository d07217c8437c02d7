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

	"github.com/notesapp/notes-manager/internal/core/domain"
)

const collectionNotes = "notes"

type NoteRepository struct {
	col *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{col: db.Collection(collectionNotes)}
}

type mongoNote struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     primitive.ObjectID `bson:"owner_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Tags        []string           `bson:"tags"`
	Date        *time.Time         `bson:"date,omitempty"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (n mongoNote) toDomain() domain.Note {
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	var date *time.Time
	if n.Date != nil {
		d := n.Date.UTC()
		date = &d
	}
	return domain.Note{
		ID:          n.ID.Hex(),
		OwnerID:     n.OwnerID.Hex(),
		Title:       n.Title,
		Description: n.Description,
		Tags:        tags,
		Date:        date,
		CreatedAt:   n.CreatedAt.UTC(),
		UpdatedAt:   n.UpdatedAt.UTC(),
	}
}

// Create inserts a new note document and returns it with its generated ID.
func (r *NoteRepository) Create(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(n.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("insert note: invalid owner id %q: %w", n.OwnerID, err)
	}

	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	doc := mongoNote{
		OwnerID:     owner,
		Title:       n.Title,
		Description: n.Description,
		Tags:        tags,
		Date:        n.Date,
		CreatedAt:   n.CreatedAt,
		UpdatedAt:   n.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = oid
	}

	created := doc.toDomain()
	return &created, nil
}

// FindByID returns domain.ErrNoteNotFound for unknown or malformed IDs.
func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}

	var doc mongoNote
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}

	n := doc.toDomain()
	return &n, nil
}

// ListByOwner returns the owner's notes sorted by _id, i.e. insertion order.
func (r *NoteRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return []domain.Note{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"owner_id": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoNote
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}

	notes := make([]domain.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.toDomain())
	}
	return notes, nil
}

// Update overwrites the mutable fields. The filter includes owner_id so the
// owner reference can never change.
func (r *NoteRepository) Update(ctx context.Context, n *domain.Note) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(n.ID, n.OwnerID)
	if err != nil {
		return err
	}

	set := bson.M{
		"title":       n.Title,
		"description": n.Description,
		"tags":        n.Tags,
		"updated_at":  n.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if n.Date != nil {
		set["date"] = *n.Date
	} else {
		update["$unset"] = bson.M{"date": ""}
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates necessary indexes on the notes collection.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}

func ownedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	return bson.M{"_id": oid, "owner_id": owner}, nil
}
