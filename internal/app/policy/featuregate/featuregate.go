// Package featuregate resolves whether a named feature is enabled for a
// user, and carries the admin operations that maintain the rules.
//
// Resolution walks scopes from most to least specific (user > chapter >
// role > global); the first scope holding an active matching rule decides,
// and later scopes are never consulted. Within a scope the most recently
// updated active rule wins. Absence of configuration never blocks a
// feature: no match at any scope, an unknown feature key, or an
// unprovisioned rule store all resolve to enabled.
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

// The fixed feature-key catalog. Keys outside this set fail open so new
// features can ship dark before this list catches up.
const (
	KeyPassionWorld   = "PASSION_WORLD"
	KeyMentorMatching = "MENTOR_MATCHING"
	KeyQuestBoard     = "QUEST_BOARD"
	KeyReflections    = "REFLECTIONS"
)

// Keys lists every known feature key, for admin forms.
var Keys = []string{KeyPassionWorld, KeyMentorMatching, KeyQuestBoard, KeyReflections}

// KnownKey reports whether key is in the fixed catalog.
func KnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// ErrNotProvisioned is returned by rule stores whose backing collection has
// not been created yet. Read paths treat it as "no rules"; mutation paths
// convert it into a SetupRequiredError.
var ErrNotProvisioned = errors.New("feature gate rule store not provisioned")

// RuleSource fetches the rules for one feature key at one scope.
type RuleSource interface {
	RulesForScope(ctx context.Context, key string, scope models.GateScope) ([]models.FeatureGateRule, error)
}

// ContextSource resolves a user's chapter and roles when the caller did not
// supply them.
type ContextSource interface {
	UserGateContext(ctx context.Context, userID primitive.ObjectID) (chapterID *primitive.ObjectID, roles []authz.Role, err error)
}

// UserContext identifies the user a feature check is for. When Roles is
// non-nil the caller has already resolved the user (ChapterID may still be
// nil for chapterless users) and no lookup happens; a nil Roles triggers a
// fetch of both chapter and roles.
type UserContext struct {
	UserID    primitive.ObjectID
	ChapterID *primitive.ObjectID
	Roles     []authz.Role
}

// Engine resolves feature enablement. Now is injectable for tests and
// defaults to time.Now.
type Engine struct {
	Rules RuleSource
	Users ContextSource
	Log   *zap.Logger
	Now   func() time.Time
}

// IsEnabledForUser resolves one feature for one user.
func (e *Engine) IsEnabledForUser(ctx context.Context, key string, uc UserContext) (bool, error) {
	if !KnownKey(key) {
		return true, nil
	}

	now := time.Now()
	if e.Now != nil {
		now = e.Now()
	}

	if uc.Roles == nil && e.Users != nil {
		chapterID, roles, err := e.Users.UserGateContext(ctx, uc.UserID)
		if err != nil {
			return false, err
		}
		uc.ChapterID = chapterID
		uc.Roles = roles
	}

	// Scopes are fetched sequentially on purpose: an earlier scope's match
	// makes the remaining lookups unnecessary.
	for _, scope := range []models.GateScope{
		models.GateScopeUser,
		models.GateScopeChapter,
		models.GateScopeRole,
		models.GateScopeGlobal,
	} {
		rules, err := e.Rules.RulesForScope(ctx, key, scope)
		if errors.Is(err, ErrNotProvisioned) {
			// The gating feature itself may not be rolled out yet.
			return true, nil
		}
		if err != nil {
			return false, err
		}

		if winner := pickWinner(rules, scope, uc, now); winner != nil {
			if e.Log != nil {
				e.Log.Debug("feature gate resolved",
					zap.String("feature_key", key),
					zap.String("scope", string(scope)),
					zap.Bool("enabled", winner.Enabled))
			}
			return winner.Enabled, nil
		}
	}

	return true, nil
}

// pickWinner filters rules to those active now and targeting this user,
// then picks the most recently updated (CreatedAt tiebreak).
func pickWinner(rules []models.FeatureGateRule, scope models.GateScope, uc UserContext, now time.Time) *models.FeatureGateRule {
	var winner *models.FeatureGateRule
	for i := range rules {
		r := &rules[i]
		if !r.ActiveAt(now) {
			continue
		}
		if !ruleTargets(r, scope, uc) {
			continue
		}
		if winner == nil || moreRecent(r, winner) {
			winner = r
		}
	}
	return winner
}

func ruleTargets(r *models.FeatureGateRule, scope models.GateScope, uc UserContext) bool {
	switch scope {
	case models.GateScopeUser:
		return r.UserID != nil && *r.UserID == uc.UserID
	case models.GateScopeChapter:
		return r.ChapterID != nil && uc.ChapterID != nil && *r.ChapterID == *uc.ChapterID
	case models.GateScopeRole:
		role, ok := authz.ParseRole(r.Role)
		return ok && authz.HasRole(uc.Roles, role)
	case models.GateScopeGlobal:
		return true
	default:
		return false
	}
}

func moreRecent(a, b *models.FeatureGateRule) bool {
	if !a.UpdatedAt.Equal(b.UpdatedAt) {
		return a.UpdatedAt.After(b.UpdatedAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
