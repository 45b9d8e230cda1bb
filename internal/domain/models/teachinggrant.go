// internal/domain/models/teachinggrant.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeachLevel is a class difficulty level an instructor can be approved for.
type TeachLevel string

// Difficulty levels, in rank order. Level101 is the entry level and never
// requires an explicit grant.
const (
	Level101 TeachLevel = "101"
	Level201 TeachLevel = "201"
	Level301 TeachLevel = "301"
	Level401 TeachLevel = "401"
)

// Rank returns the ordering position of the level (101 < 201 < 301 < 401).
// Unknown levels rank below 101.
func (l TeachLevel) Rank() int {
	switch l {
	case Level101:
		return 1
	case Level201:
		return 2
	case Level301:
		return 3
	case Level401:
		return 4
	default:
		return 0
	}
}

// ParseTeachLevel maps a stored string to a TeachLevel.
// The second return is false for unknown values.
func ParseTeachLevel(s string) (TeachLevel, bool) {
	switch TeachLevel(s) {
	case Level101, Level201, Level301, Level401:
		return TeachLevel(s), true
	default:
		return "", false
	}
}

// TeachingPermission is an explicit per-level grant for one instructor.
// One document per (instructor, level).
type TeachingPermission struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstructorID primitive.ObjectID `bson:"instructor_id" json:"instructor_id"`
	Level        TeachLevel         `bson:"level" json:"level"`

	GrantedByID   *primitive.ObjectID `bson:"granted_by_id,omitempty" json:"granted_by_id,omitempty"`
	GrantedByName string              `bson:"granted_by_name,omitempty" json:"granted_by_name,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// LegacyApproval is the deprecated level-grant mechanism, kept for
// instructors approved before per-level permissions existed. One document
// per instructor holding every approved level.
type LegacyApproval struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstructorID primitive.ObjectID `bson:"instructor_id" json:"instructor_id"`
	Levels       []TeachLevel       `bson:"levels" json:"levels"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
