// Package grantstore persists teaching level grants: the current explicit
// per-level permissions and the legacy per-instructor approval documents
// that predate them. Both feed the readiness engine's grant chain.
package grantstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PermissionStore manages explicit per-level teaching permissions.
type PermissionStore struct {
	c *mongo.Collection
}

func NewPermissions(db *mongo.Database) *PermissionStore {
	return &PermissionStore{c: db.Collection("teaching_permissions")}
}

// Grant upserts a (instructor, level) permission.
func (s *PermissionStore) Grant(ctx context.Context, instructorID primitive.ObjectID, level models.TeachLevel, byID primitive.ObjectID, byName string) error {
	now := time.Now()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"instructor_id": instructorID, "level": level},
		bson.M{
			"$set": bson.M{
				"granted_by_id":   byID,
				"granted_by_name": byName,
				"updated_at":      now,
			},
			"$setOnInsert": bson.M{
				"instructor_id": instructorID,
				"level":         level,
				"created_at":    now,
			},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// Revoke removes a (instructor, level) permission.
func (s *PermissionStore) Revoke(ctx context.Context, instructorID primitive.ObjectID, level models.TeachLevel) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"instructor_id": instructorID, "level": level})
	return err
}

// Levels returns the instructor's explicitly granted levels.
func (s *PermissionStore) Levels(ctx context.Context, instructorID primitive.ObjectID) ([]models.TeachLevel, error) {
	cur, err := s.c.Find(ctx, bson.M{"instructor_id": instructorID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var perms []models.TeachingPermission
	if err := cur.All(ctx, &perms); err != nil {
		return nil, err
	}

	levels := make([]models.TeachLevel, 0, len(perms))
	for _, p := range perms {
		levels = append(levels, p.Level)
	}
	return levels, nil
}

// LegacyStore reads the deprecated per-instructor approval documents.
// Writes are intentionally absent: new grants always go through
// PermissionStore.
type LegacyStore struct {
	c *mongo.Collection
}

func NewLegacy(db *mongo.Database) *LegacyStore {
	return &LegacyStore{c: db.Collection("legacy_approvals")}
}

// Levels returns the instructor's legacy-approved levels, or nil when no
// legacy document exists.
func (s *LegacyStore) Levels(ctx context.Context, instructorID primitive.ObjectID) ([]models.TeachLevel, error) {
	var doc models.LegacyApproval
	err := s.c.FindOne(ctx, bson.M{"instructor_id": instructorID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc.Levels, nil
}
