package bootstrap

import (
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/policy/readiness"
	rulestore "github.com/dalemusser/chapterhub/internal/app/store/featuregates"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestEnsureSchema_ProvisionsRuleStore(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{ChapterHubMongoDatabase: db}

	rules := rulestore.New(db)
	if err := rules.EnsureProvisioned(ctx); err == nil {
		t.Fatal("expected the rule store to start unprovisioned")
	}

	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	if err := rules.EnsureProvisioned(ctx); err != nil {
		t.Errorf("expected the rule store to be provisioned, got %v", err)
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{ChapterHubMongoDatabase: db}

	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("first EnsureSchema failed: %v", err)
	}
	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}
}

func TestEnsureSchema_UniqueEmailEnforced(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{ChapterHubMongoDatabase: db}
	if err := EnsureSchema(ctx, nil, AppConfig{}, deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	users := db.Collection("users")
	if _, err := users.InsertOne(ctx, map[string]any{"email": "dup@example.com"}); err != nil {
		t.Fatalf("first insert failed: %v", err)
	}
	if _, err := users.InsertOne(ctx, map[string]any{"email": "dup@example.com"}); err == nil {
		t.Error("expected a duplicate key error on the second insert")
	}
}

func TestBuildReadinessEngine_WiresEveryStore(t *testing.T) {
	db := testutil.SetupTestDB(t)

	engine := buildReadinessEngine(db, testLogger())

	if engine.Modules == nil || engine.Assignments == nil || engine.Interviews == nil ||
		engine.Offerings == nil || engine.Templates == nil ||
		engine.Explicit == nil || engine.Legacy == nil {
		t.Error("expected every readiness source to be wired")
	}
	if _, ok := engine.Toggles.(readiness.EnvToggles); !ok {
		t.Errorf("Toggles: got %T, want readiness.EnvToggles", engine.Toggles)
	}
}
