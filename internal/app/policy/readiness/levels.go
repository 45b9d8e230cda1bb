// internal/app/policy/readiness/levels.go
package readiness

import (
	"context"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GrantSource yields the teaching levels one backing mechanism has approved
// for an instructor. Two implementations exist today: explicit per-level
// permissions and the deprecated legacy approvals. When the legacy
// collection is finally retired, its source drops out of grantSources and
// nothing else changes.
type GrantSource interface {
	Levels(ctx context.Context, instructorID primitive.ObjectID) ([]models.TeachLevel, error)
}

// grantSources returns the fallback chain in evaluation order: explicit
// permissions first, legacy approvals second.
func (e *Engine) grantSources() []GrantSource {
	return []GrantSource{e.Explicit, e.Legacy}
}

// CanTeachLevel reports whether the instructor holds a grant for the exact
// level from any source. Either source is sufficient (union, not
// intersection); false only when neither grants the level.
func (e *Engine) CanTeachLevel(ctx context.Context, instructorID primitive.ObjectID, level models.TeachLevel) (bool, error) {
	for _, src := range e.grantSources() {
		levels, err := src.Levels(ctx, instructorID)
		if err != nil {
			return false, err
		}
		for _, l := range levels {
			if l == level {
				return true, nil
			}
		}
	}
	return false, nil
}
