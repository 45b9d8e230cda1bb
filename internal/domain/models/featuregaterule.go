// internal/domain/models/featuregaterule.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GateScope is the audience a feature gate rule targets.
type GateScope string

// Gate scopes, from most to least specific. Resolution consults them in
// this order and stops at the first scope with an active matching rule.
const (
	GateScopeUser    GateScope = "user"
	GateScopeChapter GateScope = "chapter"
	GateScopeRole    GateScope = "role"
	GateScopeGlobal  GateScope = "global"
)

// FeatureGateRule enables or disables one feature for one audience during
// an optional time window. Several rules may exist for the same scope and
// target; the most recently updated active one wins.
type FeatureGateRule struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FeatureKey string              `bson:"feature_key" json:"feature_key"`
	Scope      GateScope           `bson:"scope" json:"scope"`
	UserID     *primitive.ObjectID `bson:"user_id,omitempty" json:"user_id,omitempty"`       // scope=user
	ChapterID  *primitive.ObjectID `bson:"chapter_id,omitempty" json:"chapter_id,omitempty"` // scope=chapter
	Role       string              `bson:"role,omitempty" json:"role,omitempty"`             // scope=role
	Enabled    bool                `bson:"enabled" json:"enabled"`

	// Nil bounds are open: a rule with no StartsAt has always started,
	// one with no EndsAt never expires.
	StartsAt *time.Time `bson:"starts_at,omitempty" json:"starts_at,omitempty"`
	EndsAt   *time.Time `bson:"ends_at,omitempty" json:"ends_at,omitempty"`

	Note          string              `bson:"note,omitempty" json:"note,omitempty"`
	UpdatedByID   *primitive.ObjectID `bson:"updated_by_id,omitempty" json:"updated_by_id,omitempty"`
	UpdatedByName string              `bson:"updated_by_name,omitempty" json:"updated_by_name,omitempty"`
	CreatedAt     time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `bson:"updated_at" json:"updated_at"`
}

// ActiveAt reports whether the rule's time window contains now.
func (r FeatureGateRule) ActiveAt(now time.Time) bool {
	if r.StartsAt != nil && now.Before(*r.StartsAt) {
		return false
	}
	if r.EndsAt != nil && now.After(*r.EndsAt) {
		return false
	}
	return true
}
