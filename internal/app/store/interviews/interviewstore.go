// Package interviewstore persists instructor readiness interview outcomes.
package interviewstore

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

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("interview_gates")}
}

// GateForInstructor returns the instructor's interview record, or nil when
// none exists. Instructors with no record have simply never been scheduled.
func (s *Store) GateForInstructor(ctx context.Context, instructorID primitive.ObjectID) (*models.InterviewGate, error) {
	var gate models.InterviewGate
	err := s.c.FindOne(ctx, bson.M{"instructor_id": instructorID}).Decode(&gate)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &gate, nil
}

// RecordOutcome upserts the instructor's single interview record with a
// new status. Passing or failing stamps interviewed_at.
func (s *Store) RecordOutcome(ctx context.Context, instructorID primitive.ObjectID, status, outcome string) error {
	now := time.Now()
	set := bson.M{
		"status":     status,
		"outcome":    outcome,
		"updated_at": now,
	}
	if status == models.InterviewStatusPassed || status == models.InterviewStatusFailed {
		set["interviewed_at"] = now
	}

	_, err := s.c.UpdateOne(ctx,
		bson.M{"instructor_id": instructorID},
		bson.M{
			"$set":         set,
			"$setOnInsert": bson.M{"instructor_id": instructorID, "created_at": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
