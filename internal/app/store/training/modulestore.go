// Package trainingstore persists the instructor training catalog and
// per-user progress through it.
package trainingstore

import (
	"context"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ModuleStore manages the global training module catalog.
type ModuleStore struct {
	c *mongo.Collection
}

func NewModules(db *mongo.Database) *ModuleStore {
	return &ModuleStore{c: db.Collection("training_modules")}
}

// Create inserts a new module.
func (s *ModuleStore) Create(ctx context.Context, m models.TrainingModule) (models.TrainingModule, error) {
	m.ID = primitive.NewObjectID()
	m.Title = strings.TrimSpace(m.Title)

	now := time.Now()
	m.CreatedAt = now
	m.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.TrainingModule{}, err
	}
	return m, nil
}

// SetRequired flips whether a module counts toward publish readiness.
func (s *ModuleStore) SetRequired(ctx context.Context, id primitive.ObjectID, required bool) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"required":   required,
		"updated_at": time.Now(),
	}})
	return err
}

// List returns the whole catalog in sort-key order.
func (s *ModuleStore) List(ctx context.Context) ([]models.TrainingModule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sort_key", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TrainingModule
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RequiredModules returns only the modules that count toward readiness,
// in sort-key order.
func (s *ModuleStore) RequiredModules(ctx context.Context) ([]models.TrainingModule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "sort_key", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"required": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TrainingModule
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
