package templatestore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
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
	return &Store{c: db.Collection("class_templates")}
}

var errBadLevel = errors.New(`level must be "101"|"201"|"301"|"401"`)

// TemplateByID loads a template, or nil when it does not exist.
func (s *Store) TemplateByID(ctx context.Context, id primitive.ObjectID) (*models.ClassTemplate, error) {
	var tmpl models.ClassTemplate
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&tmpl)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// Create inserts a new template after validating its level.
func (s *Store) Create(ctx context.Context, tmpl models.ClassTemplate) (models.ClassTemplate, error) {
	if _, ok := models.ParseTeachLevel(string(tmpl.Level)); !ok {
		return models.ClassTemplate{}, errBadLevel
	}

	tmpl.ID = primitive.NewObjectID()
	tmpl.Title = strings.TrimSpace(tmpl.Title)
	tmpl.TitleCI = text.Fold(tmpl.Title)
	if tmpl.Status == "" {
		tmpl.Status = "active"
	}

	now := time.Now()
	tmpl.CreatedAt = now
	tmpl.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, tmpl); err != nil {
		return models.ClassTemplate{}, err
	}
	return tmpl, nil
}

// ListActive returns active templates sorted by folded title.
func (s *Store) ListActive(ctx context.Context) ([]models.ClassTemplate, error) {
	opts := options.Find().SetSort(bson.D{{Key: "title_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"status": "active"}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ClassTemplate
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
