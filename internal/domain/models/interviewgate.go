// internal/domain/models/interviewgate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InterviewGate records the outcome of an instructor's readiness interview.
// At most one gate record exists per instructor.
type InterviewGate struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	InstructorID primitive.ObjectID `bson:"instructor_id" json:"instructor_id"`
	Status       string             `bson:"status" json:"status"`
	Outcome      string             `bson:"outcome,omitempty" json:"outcome,omitempty"` // free-form interviewer notes

	InterviewedAt *time.Time `bson:"interviewed_at,omitempty" json:"interviewed_at,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time  `bson:"updated_at" json:"updated_at"`
}

// Interview gate statuses.
const (
	InterviewStatusRequired = "required"
	InterviewStatusPassed   = "passed"
	InterviewStatusFailed   = "failed"
	InterviewStatusHold     = "hold"
	InterviewStatusWaived   = "waived"
)
