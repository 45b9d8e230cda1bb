package chapterstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chapters")}
}

// ErrDuplicateName is returned when a chapter with the same folded name
// already exists.
var ErrDuplicateName = errors.New("a chapter with this name already exists")

// GetByID loads a chapter by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Chapter, error) {
	var ch models.Chapter
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// Create inserts a new chapter after normalizing its name.
func (s *Store) Create(ctx context.Context, ch models.Chapter) (models.Chapter, error) {
	ch.ID = primitive.NewObjectID()
	ch.Name = strings.TrimSpace(ch.Name)
	ch.NameCI = text.Fold(ch.Name)
	if ch.Status == "" {
		ch.Status = "active"
	}

	now := time.Now()
	ch.CreatedAt = now
	ch.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, ch); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Chapter{}, ErrDuplicateName
		}
		return models.Chapter{}, err
	}
	return ch, nil
}

// ListActive returns active chapters sorted by folded name.
func (s *Store) ListActive(ctx context.Context) ([]models.Chapter, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": "active"}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Chapter
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
