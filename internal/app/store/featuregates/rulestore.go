// Package rulestore persists feature gate rules.
//
// Reads never distinguish a missing collection from an empty one: Mongo
// returns no documents either way, which the resolution engine treats as
// "no rules" and fails open. Writes are stricter; EnsureProvisioned checks
// the collection actually exists so a mutation against a half-deployed
// environment surfaces as a setup error instead of silently creating an
// unindexed collection.
package rulestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is shared with schema setup.
const CollectionName = "feature_gate_rules"

type Store struct {
	db *mongo.Database
	c  *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{db: db, c: db.Collection(CollectionName)}
}

// RulesForScope returns every rule for one feature key at one scope.
func (s *Store) RulesForScope(ctx context.Context, key string, scope models.GateScope) ([]models.FeatureGateRule, error) {
	cur, err := s.c.Find(ctx, bson.M{"feature_key": key, "scope": scope})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FeatureGateRule
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureProvisioned reports featuregate.ErrNotProvisioned when the rules
// collection has not been created by schema setup.
func (s *Store) EnsureProvisioned(ctx context.Context) error {
	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": CollectionName})
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return featuregate.ErrNotProvisioned
	}
	return nil
}

// MostRecentForTarget returns the most recently updated rule for the exact
// scope+target, or nil when none exists.
func (s *Store) MostRecentForTarget(ctx context.Context, key string, scope models.GateScope, userID, chapterID *primitive.ObjectID, role string) (*models.FeatureGateRule, error) {
	filter := bson.M{"feature_key": key, "scope": scope}
	switch scope {
	case models.GateScopeUser:
		filter["user_id"] = userID
	case models.GateScopeChapter:
		filter["chapter_id"] = chapterID
	case models.GateScopeRole:
		filter["role"] = role
	}

	opts := options.FindOne().SetSort(bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "created_at", Value: -1},
	})

	var rule models.FeatureGateRule
	err := s.c.FindOne(ctx, filter, opts).Decode(&rule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// InsertRule stores a new rule.
func (s *Store) InsertRule(ctx context.Context, rule models.FeatureGateRule) error {
	if rule.ID.IsZero() {
		rule.ID = primitive.NewObjectID()
	}
	_, err := s.c.InsertOne(ctx, rule)
	return err
}

// UpdateRule rewrites a rule's enabled flag and window, stamping the actor.
func (s *Store) UpdateRule(ctx context.Context, id primitive.ObjectID, enabled bool, startsAt, endsAt *time.Time, updatedBy featuregate.Identity) error {
	set := bson.M{
		"enabled":         enabled,
		"updated_by_id":   updatedBy.ID,
		"updated_by_name": updatedBy.Name,
		"updated_at":      time.Now(),
	}
	unset := bson.M{}
	if startsAt != nil {
		set["starts_at"] = startsAt
	} else {
		unset["starts_at"] = ""
	}
	if endsAt != nil {
		set["ends_at"] = endsAt
	} else {
		unset["ends_at"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// DeleteRule removes one rule.
func (s *Store) DeleteRule(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ListAll returns every rule, newest update first, for the admin console.
func (s *Store) ListAll(ctx context.Context) ([]models.FeatureGateRule, error) {
	opts := options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FeatureGateRule
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
