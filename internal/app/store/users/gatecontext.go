package userstore

import (
	"context"
	"errors"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserGateContext returns the chapter and roles feature gate resolution
// needs for a user. A missing user yields an empty role set rather than
// an error; gate resolution fails open on users it cannot place.
func (s *Store) UserGateContext(ctx context.Context, userID primitive.ObjectID) (*primitive.ObjectID, []authz.Role, error) {
	var doc struct {
		Role      string              `bson:"role"`
		Roles     []string            `bson:"roles"`
		ChapterID *primitive.ObjectID `bson:"chapter_id"`
	}

	proj := options.FindOne().SetProjection(bson.M{"role": 1, "roles": 1, "chapter_id": 1})
	err := s.c.FindOne(ctx, bson.M{"_id": userID}, proj).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, []authz.Role{}, nil
	}
	if err != nil {
		return nil, nil, err
	}

	raw := doc.Roles
	if len(raw) == 0 && doc.Role != "" {
		raw = []string{doc.Role}
	}
	return doc.ChapterID, authz.NormalizeRoles(raw), nil
}
