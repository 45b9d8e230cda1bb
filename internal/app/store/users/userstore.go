package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with
	// an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New("role is not a recognized ChapterHub role")
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
	errChapterNeeded  = errors.New("students, parents, mentors, instructors, and chapter leads must have chapter_id")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
// Returns (nil, nil) if no user has that email.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = strings.TrimSpace(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalizeEmail(u.Email)
	if u.Status == "" {
		u.Status = models.UserStatusActive
	}

	primary, ok := authz.ParseRole(u.Role)
	if !ok {
		return models.User{}, errBadRole
	}
	u.Role = string(primary)

	roles := authz.NormalizeRoles(u.Roles)
	if !authz.HasRole(roles, primary) {
		roles = append([]authz.Role{primary}, roles...)
	}
	u.Roles = make([]string, len(roles))
	for i, r := range roles {
		u.Roles[i] = string(r)
	}

	if u.Status != models.UserStatusActive && u.Status != models.UserStatusDisabled {
		return models.User{}, errBadStatus
	}

	// Admins and staff operate platform-wide; everyone else belongs to
	// a chapter.
	if u.ChapterID == nil && primary != authz.RoleAdmin && primary != authz.RoleStaff {
		return models.User{}, errChapterNeeded
	}

	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// SetRoles replaces a user's role set and primary role.
func (s *Store) SetRoles(ctx context.Context, id primitive.ObjectID, primary authz.Role, roles []authz.Role) error {
	if !authz.HasRole(roles, primary) {
		roles = append([]authz.Role{primary}, roles...)
	}
	raw := make([]string, len(roles))
	for i, r := range roles {
		raw[i] = string(r)
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":       string(primary),
		"roles":      raw,
		"updated_at": time.Now(),
	}})
	return err
}

// SetStatus flips a user between active and disabled.
func (s *Store) SetStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if status != models.UserStatusActive && status != models.UserStatusDisabled {
		return errBadStatus
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now(),
	}})
	return err
}

// SetAwardTier sets or clears (empty string) a user's award tier.
func (s *Store) SetAwardTier(ctx context.Context, id primitive.ObjectID, tier string) error {
	update := bson.M{"$set": bson.M{"updated_at": time.Now()}}
	if tier == "" {
		update["$unset"] = bson.M{"award_tier": ""}
	} else {
		update["$set"].(bson.M)["award_tier"] = tier
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	return err
}

// ListByChapter returns active users of one chapter, name-sorted.
func (s *Store) ListByChapter(ctx context.Context, chapterID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"chapter_id": chapterID,
		"status":     models.UserStatusActive,
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
