package featuregate_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	"github.com/dalemusser/chapterhub/internal/app/system/authz"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeWriter records mutations against an in-memory rule list.
type fakeWriter struct {
	provisioned bool
	rules       []models.FeatureGateRule
	inserted    int
	updated     int
	deleted     int
}

func (f *fakeWriter) EnsureProvisioned(ctx context.Context) error {
	if !f.provisioned {
		return featuregate.ErrNotProvisioned
	}
	return nil
}

func (f *fakeWriter) MostRecentForTarget(ctx context.Context, key string, scope models.GateScope, userID, chapterID *primitive.ObjectID, role string) (*models.FeatureGateRule, error) {
	var best *models.FeatureGateRule
	for i := range f.rules {
		r := &f.rules[i]
		if r.FeatureKey != key || r.Scope != scope {
			continue
		}
		if (userID == nil) != (r.UserID == nil) || (userID != nil && *userID != *r.UserID) {
			continue
		}
		if (chapterID == nil) != (r.ChapterID == nil) || (chapterID != nil && *chapterID != *r.ChapterID) {
			continue
		}
		if role != r.Role {
			continue
		}
		if best == nil || r.UpdatedAt.After(best.UpdatedAt) {
			best = r
		}
	}
	return best, nil
}

func (f *fakeWriter) InsertRule(ctx context.Context, rule models.FeatureGateRule) error {
	rule.ID = primitive.NewObjectID()
	f.rules = append(f.rules, rule)
	f.inserted++
	return nil
}

func (f *fakeWriter) UpdateRule(ctx context.Context, id primitive.ObjectID, enabled bool, startsAt, endsAt *time.Time, updatedBy featuregate.Identity) error {
	for i := range f.rules {
		if f.rules[i].ID == id {
			f.rules[i].Enabled = enabled
			f.rules[i].StartsAt = startsAt
			f.rules[i].EndsAt = endsAt
			f.rules[i].UpdatedByID = &updatedBy.ID
			f.rules[i].UpdatedByName = updatedBy.Name
			f.rules[i].UpdatedAt = time.Now().UTC()
			f.updated++
			return nil
		}
	}
	return errors.New("rule not found")
}

func (f *fakeWriter) DeleteRule(ctx context.Context, id primitive.ObjectID) error {
	for i := range f.rules {
		if f.rules[i].ID == id {
			f.rules = append(f.rules[:i], f.rules[i+1:]...)
			f.deleted++
			return nil
		}
	}
	return errors.New("rule not found")
}

// fakeAuthz grants or denies every Require call.
type fakeAuthz struct {
	actor featuregate.Identity
	deny  bool
}

func (f *fakeAuthz) Require(ctx context.Context, roles ...authz.Role) (featuregate.Identity, error) {
	if f.deny {
		return featuregate.Identity{}, &featuregate.ForbiddenError{Need: string(roles[0])}
	}
	return f.actor, nil
}

// fakeInvalidator records invalidated paths.
type fakeInvalidator struct {
	paths []string
}

func (f *fakeInvalidator) Invalidate(paths ...string) {
	f.paths = append(f.paths, paths...)
}

func newAdmin(w *fakeWriter) (*featuregate.Admin, *fakeInvalidator) {
	inv := &fakeInvalidator{}
	admin := &featuregate.Admin{
		Rules: w,
		Authz: &fakeAuthz{actor: featuregate.Identity{ID: primitive.NewObjectID(), Name: "Ada Admin"}},
		Pages: inv,
	}
	return admin, inv
}

func TestSetGlobalRule_InsertsWhenNoneExists(t *testing.T) {
	w := &fakeWriter{provisioned: true}
	admin, inv := newAdmin(w)

	err := admin.SetGlobalRule(context.Background(), featuregate.KeyQuestBoard, featuregate.RuleChange{Enabled: false})
	if err != nil {
		t.Fatalf("SetGlobalRule failed: %v", err)
	}
	if w.inserted != 1 || w.updated != 0 {
		t.Errorf("inserted=%d updated=%d, want 1/0", w.inserted, w.updated)
	}
	r := w.rules[0]
	if r.Scope != models.GateScopeGlobal || r.Enabled || r.FeatureKey != featuregate.KeyQuestBoard {
		t.Errorf("stored rule = %+v", r)
	}
	if r.UpdatedByName != "Ada Admin" {
		t.Errorf("UpdatedByName = %q, want attribution from the authorizer", r.UpdatedByName)
	}
	if len(inv.paths) != len(featuregate.InvalidatedPaths) {
		t.Errorf("invalidated %d paths, want %d", len(inv.paths), len(featuregate.InvalidatedPaths))
	}
}

func TestSetGlobalRule_UpdatesExistingInsteadOfDuplicating(t *testing.T) {
	w := &fakeWriter{provisioned: true}
	admin, _ := newAdmin(w)

	if err := admin.SetGlobalRule(context.Background(), featuregate.KeyQuestBoard, featuregate.RuleChange{Enabled: false}); err != nil {
		t.Fatalf("first SetGlobalRule failed: %v", err)
	}
	if err := admin.SetGlobalRule(context.Background(), featuregate.KeyQuestBoard, featuregate.RuleChange{Enabled: true}); err != nil {
		t.Fatalf("second SetGlobalRule failed: %v", err)
	}

	if len(w.rules) != 1 {
		t.Fatalf("rule count = %d, want upsert to keep one rule per scope target", len(w.rules))
	}
	if w.updated != 1 {
		t.Errorf("updated = %d, want 1", w.updated)
	}
	if !w.rules[0].Enabled {
		t.Error("second change should have flipped Enabled to true")
	}
}

func TestSetChapterRule_ScopedToChapter(t *testing.T) {
	w := &fakeWriter{provisioned: true}
	admin, _ := newAdmin(w)

	chapterA := primitive.NewObjectID()
	chapterB := primitive.NewObjectID()

	if err := admin.SetChapterRule(context.Background(), featuregate.KeyReflections, chapterA, featuregate.RuleChange{Enabled: false}); err != nil {
		t.Fatalf("SetChapterRule(A) failed: %v", err)
	}
	if err := admin.SetChapterRule(context.Background(), featuregate.KeyReflections, chapterB, featuregate.RuleChange{Enabled: false}); err != nil {
		t.Fatalf("SetChapterRule(B) failed: %v", err)
	}

	if len(w.rules) != 2 {
		t.Fatalf("rule count = %d, want one rule per chapter", len(w.rules))
	}
	for _, r := range w.rules {
		if r.Scope != models.GateScopeChapter || r.ChapterID == nil {
			t.Errorf("stored rule = %+v, want chapter-scoped with a chapter ID", r)
		}
	}
}

func TestSetRule_UnknownKeyRejected(t *testing.T) {
	w := &fakeWriter{provisioned: true}
	admin, inv := newAdmin(w)

	err := admin.SetGlobalRule(context.Background(), "NOT_A_FEATURE", featuregate.RuleChange{Enabled: false})
	var unknown *featuregate.UnknownKeyError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownKeyError", err)
	}
	if len(w.rules) != 0 || len(inv.paths) != 0 {
		t.Error("a rejected mutation must not write or invalidate")
	}
}

func TestSetRule_RequiresAdmin(t *testing.T) {
	w := &fakeWriter{provisioned: true}
	admin := &featuregate.Admin{Rules: w, Authz: &fakeAuthz{deny: true}}

	err := admin.SetGlobalRule(context.Background(), featuregate.KeyQuestBoard, featuregate.RuleChange{Enabled: false})
	var forbidden *featuregate.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("got %v, want ForbiddenError", err)
	}
	if len(w.rules) != 0 {
		t.Error("a forbidden mutation must not write")
	}
}

func TestSetRule_UnprovisionedStoreNeedsSetup(t *testing.T) {
	w := &fakeWriter{provisioned: false}
	admin, inv := newAdmin(w)

	err := admin.SetGlobalRule(context.Background(), featuregate.KeyQuestBoard, featuregate.RuleChange{Enabled: false})
	var setup *featuregate.SetupRequiredError
	if !errors.As(err, &setup) {
		t.Fatalf("got %v, want SetupRequiredError", err)
	}
	if setup.Step == "" {
		t.Error("SetupRequiredError must name the pending step")
	}
	if len(inv.paths) != 0 {
		t.Error("a failed mutation must not invalidate")
	}
}

func TestDeleteRule_RemovesAndInvalidates(t *testing.T) {
	w := &fakeWriter{provisioned: true}
	admin, inv := newAdmin(w)

	if err := admin.SetGlobalRule(context.Background(), featuregate.KeyQuestBoard, featuregate.RuleChange{Enabled: false}); err != nil {
		t.Fatalf("SetGlobalRule failed: %v", err)
	}
	inv.paths = nil

	if err := admin.DeleteRule(context.Background(), w.rules[0].ID); err != nil {
		t.Fatalf("DeleteRule failed: %v", err)
	}
	if len(w.rules) != 0 {
		t.Errorf("rule count = %d after delete, want 0", len(w.rules))
	}
	if len(inv.paths) != len(featuregate.InvalidatedPaths) {
		t.Errorf("invalidated %d paths, want %d", len(inv.paths), len(featuregate.InvalidatedPaths))
	}
}

func TestDeleteRule_RequiresAdmin(t *testing.T) {
	w := &fakeWriter{provisioned: true}
	admin := &featuregate.Admin{Rules: w, Authz: &fakeAuthz{deny: true}}

	err := admin.DeleteRule(context.Background(), primitive.NewObjectID())
	var forbidden *featuregate.ForbiddenError
	if !errors.As(err, &forbidden) {
		t.Fatalf("got %v, want ForbiddenError", err)
	}
}
