// internal/domain/models/chapter.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Chapter is a local community of students, mentors, and instructors,
// run by one or more chapter leads.
type Chapter struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name     string             `bson:"name" json:"name"`
	NameCI   string             `bson:"name_ci" json:"name_ci"` // lowercase, diacritics-stripped
	City     string             `bson:"city,omitempty" json:"city,omitempty"`
	Region   string             `bson:"region,omitempty" json:"region,omitempty"`
	TimeZone string             `bson:"time_zone,omitempty" json:"time_zone,omitempty"`
	Status   string             `bson:"status" json:"status"` // active | inactive

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
