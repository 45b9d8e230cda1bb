package offeringstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("class_offerings")}
}

// ErrNotDraft is returned when a status transition expects a draft.
var ErrNotDraft = errors.New("offering is not a draft")

// OfferingByID loads one offering, or nil when it does not exist.
func (s *Store) OfferingByID(ctx context.Context, id primitive.ObjectID) (*models.ClassOffering, error) {
	var off models.ClassOffering
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&off)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &off, nil
}

// CreateDraft inserts a new draft offering. The description is sanitized
// on the way in; the external ID is generated here and never changes.
func (s *Store) CreateDraft(ctx context.Context, off models.ClassOffering) (models.ClassOffering, error) {
	off.ID = primitive.NewObjectID()
	off.ExternalID = uuid.NewString()
	off.Title = strings.TrimSpace(off.Title)
	off.Description = htmlsanitize.Sanitize(off.Description)
	off.Status = models.OfferingStatusDraft

	now := time.Now()
	off.CreatedAt = now
	off.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, off); err != nil {
		return models.ClassOffering{}, err
	}
	return off, nil
}

// MarkPublished moves a draft to published. The filter includes the draft
// status so concurrent publishes cannot double-fire.
func (s *Store) MarkPublished(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.OfferingStatusDraft},
		bson.M{"$set": bson.M{
			"status":     models.OfferingStatusPublished,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotDraft
	}
	return nil
}

// SetStatus applies any status transition without the draft guard.
// Used for cancel/complete flows where the current status varies.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	return err
}

// ListForInstructor returns every offering of one instructor, newest first.
func (s *Store) ListForInstructor(ctx context.Context, instructorID primitive.ObjectID) ([]models.ClassOffering, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"instructor_id": instructorID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ClassOffering
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// NonDraftForInstructor returns the instructor's offerings that have left
// draft. The readiness engine uses this to decide whether a publish is the
// instructor's first.
func (s *Store) NonDraftForInstructor(ctx context.Context, instructorID primitive.ObjectID) ([]models.ClassOffering, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"instructor_id": instructorID,
		"status":        bson.M{"$ne": models.OfferingStatusDraft},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ClassOffering
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
