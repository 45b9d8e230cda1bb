// internal/domain/models/offering.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClassTemplate is the admin-curated definition a class offering is built
// from: title, description, and difficulty level.
type ClassTemplate struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	TitleCI     string             `bson:"title_ci" json:"title_ci"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Level       TeachLevel         `bson:"level" json:"level"`
	Status      string             `bson:"status" json:"status"` // active | retired

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// ClassOffering is one instructor's scheduled run of a class template.
type ClassOffering struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ExternalID   string             `bson:"external_id" json:"external_id"` // uuid exposed to calendar/links
	TemplateID   primitive.ObjectID `bson:"template_id" json:"template_id"`
	InstructorID primitive.ObjectID `bson:"instructor_id" json:"instructor_id"`
	ChapterID    *primitive.ObjectID `bson:"chapter_id,omitempty" json:"chapter_id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"` // sanitized HTML
	Status       string             `bson:"status" json:"status"`

	// GrandfatheredExemption marks offerings imported from before the
	// readiness gate existed; they bypass the first-publish check.
	GrandfatheredExemption bool `bson:"grandfathered_exemption,omitempty" json:"grandfathered_exemption,omitempty"`

	StartsAt  *time.Time `bson:"starts_at,omitempty" json:"starts_at,omitempty"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// Class offering statuses.
const (
	OfferingStatusDraft      = "draft"
	OfferingStatusPublished  = "published"
	OfferingStatusInProgress = "in_progress"
	OfferingStatusCompleted  = "completed"
	OfferingStatusCancelled  = "cancelled"
)

// OfferingCountsAsPublished reports whether a status means the offering
// has been (or was) live for students. Drafts and cancellations do not count.
func OfferingCountsAsPublished(status string) bool {
	switch status {
	case OfferingStatusPublished, OfferingStatusInProgress, OfferingStatusCompleted:
		return true
	default:
		return false
	}
}
