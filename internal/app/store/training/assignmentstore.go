package trainingstore

import (
	"context"
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AssignmentStore tracks per-user progress through training modules.
type AssignmentStore struct {
	c *mongo.Collection
}

func NewAssignments(db *mongo.Database) *AssignmentStore {
	return &AssignmentStore{c: db.Collection("training_assignments")}
}

// Assign upserts the (user, module) assignment, leaving an existing
// status untouched so re-assignment never resets progress.
func (s *AssignmentStore) Assign(ctx context.Context, userID, moduleID primitive.ObjectID) error {
	now := time.Now()
	_, err := s.c.UpdateOne(ctx,
		bson.M{"user_id": userID, "module_id": moduleID},
		bson.M{
			"$setOnInsert": bson.M{
				"user_id":    userID,
				"module_id":  moduleID,
				"status":     models.TrainingStatusAssigned,
				"created_at": now,
			},
			"$set": bson.M{"updated_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}

// SetStatus updates an assignment's status. Completing stamps
// completed_at; moving away from complete clears it.
func (s *AssignmentStore) SetStatus(ctx context.Context, userID, moduleID primitive.ObjectID, status string) error {
	now := time.Now()
	set := bson.M{"status": status, "updated_at": now}
	update := bson.M{"$set": set}
	if status == models.TrainingStatusComplete {
		set["completed_at"] = now
	} else {
		update["$unset"] = bson.M{"completed_at": ""}
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID, "module_id": moduleID}, update)
	return err
}

// AssignmentsForUser returns every assignment for one user.
func (s *AssignmentStore) AssignmentsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.TrainingAssignment, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TrainingAssignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
