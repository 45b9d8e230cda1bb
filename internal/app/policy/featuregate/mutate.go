// internal/app/policy/featuregate/mutate.go
package featuregate

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Identity is the resolved caller of a mutation.
type Identity struct {
	ID   primitive.ObjectID
	Name string
}

// Authorizer checks that the caller holds one of the required roles,
// returning their identity or a ForbiddenError.
type Authorizer interface {
	Require(ctx context.Context, roles ...authz.Role) (Identity, error)
}

// Invalidator drops cached pages after a rule change. Fire-and-forget:
// mutation outcomes never depend on it.
type Invalidator interface {
	Invalidate(paths ...string)
}

// RuleWriter is the write side of the rule store.
type RuleWriter interface {
	// EnsureProvisioned returns ErrNotProvisioned when the backing
	// collection does not exist yet.
	EnsureProvisioned(ctx context.Context) error

	// MostRecentForTarget returns the most recently updated rule for the
	// exact scope+target, or nil when none exists.
	MostRecentForTarget(ctx context.Context, key string, scope models.GateScope, userID, chapterID *primitive.ObjectID, role string) (*models.FeatureGateRule, error)

	InsertRule(ctx context.Context, rule models.FeatureGateRule) error
	UpdateRule(ctx context.Context, id primitive.ObjectID, enabled bool, startsAt, endsAt *time.Time, updatedBy Identity) error
	DeleteRule(ctx context.Context, id primitive.ObjectID) error
}

// InvalidatedPaths are the cached pages dropped after any rule mutation.
// Feature gates influence what these pages render, so stale copies would
// show gated features to the wrong audience until natural expiry.
var InvalidatedPaths = []string{
	"/",
	"/dashboard",
	"/offerings",
	"/quests",
	"/reflections",
	"/mentorship",
}

// Admin carries the feature-gate mutation operations. Every entry point
// requires the admin role and upserts by scope rather than inserting
// duplicates.
type Admin struct {
	Rules RuleWriter
	Authz Authorizer
	Pages Invalidator
	Log   *zap.Logger
}

// RuleChange is the payload shared by the Set operations.
type RuleChange struct {
	Enabled  bool
	StartsAt *time.Time
	EndsAt   *time.Time
}

// SetChapterRule upserts the chapter-scope rule for one feature.
func (a *Admin) SetChapterRule(ctx context.Context, key string, chapterID primitive.ObjectID, change RuleChange) error {
	return a.setRule(ctx, key, models.GateScopeChapter, nil, &chapterID, change)
}

// SetGlobalRule upserts the global-scope rule for one feature.
func (a *Admin) SetGlobalRule(ctx context.Context, key string, change RuleChange) error {
	return a.setRule(ctx, key, models.GateScopeGlobal, nil, nil, change)
}

func (a *Admin) setRule(ctx context.Context, key string, scope models.GateScope, userID, chapterID *primitive.ObjectID, change RuleChange) error {
	if !KnownKey(key) {
		return &UnknownKeyError{Key: key}
	}

	actor, err := a.Authz.Require(ctx, authz.RoleAdmin)
	if err != nil {
		return err
	}

	if err := a.Rules.EnsureProvisioned(ctx); err != nil {
		if errors.Is(err, ErrNotProvisioned) {
			return &SetupRequiredError{Step: "run schema setup (EnsureSchema) to create the feature_gate_rules collection"}
		}
		return err
	}

	existing, err := a.Rules.MostRecentForTarget(ctx, key, scope, userID, chapterID, "")
	if err != nil {
		return err
	}

	if existing != nil {
		if err := a.Rules.UpdateRule(ctx, existing.ID, change.Enabled, change.StartsAt, change.EndsAt, actor); err != nil {
			return err
		}
	} else {
		now := time.Now().UTC()
		rule := models.FeatureGateRule{
			FeatureKey:    key,
			Scope:         scope,
			UserID:        userID,
			ChapterID:     chapterID,
			Enabled:       change.Enabled,
			StartsAt:      change.StartsAt,
			EndsAt:        change.EndsAt,
			UpdatedByID:   &actor.ID,
			UpdatedByName: actor.Name,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := a.Rules.InsertRule(ctx, rule); err != nil {
			return err
		}
	}

	a.invalidate(key, scope)
	return nil
}

// DeleteRule removes one rule by ID.
func (a *Admin) DeleteRule(ctx context.Context, id primitive.ObjectID) error {
	if _, err := a.Authz.Require(ctx, authz.RoleAdmin); err != nil {
		return err
	}

	if err := a.Rules.EnsureProvisioned(ctx); err != nil {
		if errors.Is(err, ErrNotProvisioned) {
			return &SetupRequiredError{Step: "run schema setup (EnsureSchema) to create the feature_gate_rules collection"}
		}
		return err
	}

	if err := a.Rules.DeleteRule(ctx, id); err != nil {
		return err
	}

	a.invalidate("", "")
	return nil
}

func (a *Admin) invalidate(key string, scope models.GateScope) {
	if a.Pages != nil {
		a.Pages.Invalidate(InvalidatedPaths...)
	}
	if a.Log != nil {
		a.Log.Info("feature gate rules changed",
			zap.String("feature_key", key),
			zap.String("scope", string(scope)),
			zap.Strings("invalidated", InvalidatedPaths))
	}
}
