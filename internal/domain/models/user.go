// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents every account on the platform: students, parents,
// mentors, instructors, staff, chapter leads, and admins.
//
// NOTE:
//   - Role is the user's primary role, used for dashboard dispatch and
//     navigation emphasis. Roles carries every role the user holds;
//     it always includes Role.
//   - Chapter membership is a single optional reference. Admins and staff
//     have no chapter.
type User struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName   string              `bson:"full_name" json:"full_name"`
	FullNameCI string              `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string              `bson:"email" json:"email"`
	Role       string              `bson:"role" json:"role"`                         // primary role
	Roles      []string            `bson:"roles,omitempty" json:"roles,omitempty"`   // all roles, includes primary
	AwardTier  string              `bson:"award_tier,omitempty" json:"award_tier,omitempty"` // bronze | silver | gold
	Status     string              `bson:"status,omitempty" json:"status,omitempty"`
	ChapterID  *primitive.ObjectID `bson:"chapter_id,omitempty" json:"chapter_id,omitempty"`

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// User status values.
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// Award tiers a user can hold. Empty means no award.
const (
	AwardTierBronze = "bronze"
	AwardTierSilver = "silver"
	AwardTierGold   = "gold"
)
