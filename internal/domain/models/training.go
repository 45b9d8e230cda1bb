// internal/domain/models/training.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TrainingModule is one unit of the instructor training catalog.
// The catalog is global and admin-managed; Required modules count toward
// publish readiness, optional ones do not.
type TrainingModule struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title    string             `bson:"title" json:"title"`
	Summary  string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Required bool               `bson:"required" json:"required"`
	SortKey  int                `bson:"sort_key" json:"sort_key"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// TrainingAssignment tracks one user's progress through one module.
// There is at most one assignment per (user, module) pair.
type TrainingAssignment struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID   primitive.ObjectID `bson:"user_id" json:"user_id"`
	ModuleID primitive.ObjectID `bson:"module_id" json:"module_id"`
	Status   string             `bson:"status" json:"status"`

	CompletedAt *time.Time `bson:"completed_at,omitempty" json:"completed_at,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}

// Training assignment statuses.
const (
	TrainingStatusAssigned   = "assigned"
	TrainingStatusInProgress = "in_progress"
	TrainingStatusComplete   = "complete"
)
