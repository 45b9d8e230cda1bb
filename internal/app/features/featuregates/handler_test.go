package featuregates_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/features/featuregates"
	"github.com/dalemusser/chapterhub/internal/app/policy/featuregate"
	rulestore "github.com/dalemusser/chapterhub/internal/app/store/featuregates"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/pagecache"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type testEnv struct {
	handler *featuregates.Handler
	db      *mongo.Database
	cache   *pagecache.Cache
	rules   *rulestore.Store
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cache := pagecache.New(pagecache.DefaultSize, pagecache.DefaultTTL, zap.NewNop())
	return &testEnv{
		handler: featuregates.NewHandler(db, cache, zap.NewNop()),
		db:      db,
		cache:   cache,
		rules:   rulestore.New(db),
	}
}

func (env *testEnv) provision(t *testing.T) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	if err := env.db.CreateCollection(ctx, rulestore.CollectionName); err != nil {
		t.Fatalf("create collection: %v", err)
	}
}

func (env *testEnv) postSetRule(user *auth.SessionUser, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/featuregates/rules", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if user != nil {
		req = testutil.WithUser(req, user)
	}
	rec := httptest.NewRecorder()

	// Error pages render templates, which panic without the app's
	// template init. Status codes land before the render.
	func() {
		defer func() { recover() }()
		env.handler.HandleSetRule(rec, req)
	}()
	return rec
}

func (env *testEnv) postDelete(user *auth.SessionUser, id string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Post("/featuregates/rules/{id}/delete", env.handler.HandleDeleteRule)

	req := httptest.NewRequest("POST", "/featuregates/rules/"+id+"/delete", nil)
	if user != nil {
		req = testutil.WithUser(req, user)
	}
	rec := httptest.NewRecorder()

	func() {
		defer func() { recover() }()
		router.ServeHTTP(rec, req)
	}()
	return rec
}

func listRules(t *testing.T, env *testEnv) []models.FeatureGateRule {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	rules, err := env.rules.ListAll(ctx)
	if err != nil {
		t.Fatalf("list rules: %v", err)
	}
	return rules
}

func TestHandleSetRule_GlobalInsert(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t)
	admin := testutil.TestUser("Ada", "admin")

	rec := env.postSetRule(admin, url.Values{
		"key":     {featuregate.KeyQuestBoard},
		"scope":   {"global"},
		"enabled": {"false"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	rules := listRules(t, env)
	if len(rules) != 1 {
		t.Fatalf("rules: got %d, want 1", len(rules))
	}
	if rules[0].Scope != models.GateScopeGlobal {
		t.Errorf("Scope: got %q, want %q", rules[0].Scope, models.GateScopeGlobal)
	}
	if rules[0].Enabled {
		t.Error("expected the rule to be disabled")
	}
	if rules[0].UpdatedByName != "Ada" {
		t.Errorf("UpdatedByName: got %q, want %q", rules[0].UpdatedByName, "Ada")
	}
}

func TestHandleSetRule_SecondSaveUpdatesInsteadOfDuplicating(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t)
	admin := testutil.TestUser("Ada", "admin")

	form := url.Values{
		"key":     {featuregate.KeyQuestBoard},
		"scope":   {"global"},
		"enabled": {"false"},
	}
	env.postSetRule(admin, form)

	form.Set("enabled", "true")
	env.postSetRule(admin, form)

	rules := listRules(t, env)
	if len(rules) != 1 {
		t.Fatalf("rules: got %d, want 1 after upsert", len(rules))
	}
	if !rules[0].Enabled {
		t.Error("expected the rule to be enabled after the second save")
	}
}

func TestHandleSetRule_InvalidatesCachedPages(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t)
	admin := testutil.TestUser("Ada", "admin")

	env.cache.Set("/dashboard", "text/html", []byte("stale"))
	env.cache.Set("/quests", "text/html", []byte("stale"))

	env.postSetRule(admin, url.Values{
		"key":     {featuregate.KeyQuestBoard},
		"scope":   {"global"},
		"enabled": {"false"},
	})

	if _, ok := env.cache.Get("/dashboard"); ok {
		t.Error("expected /dashboard to be invalidated")
	}
	if _, ok := env.cache.Get("/quests"); ok {
		t.Error("expected /quests to be invalidated")
	}
}

func TestHandleSetRule_UnprovisionedStoreConflicts(t *testing.T) {
	env := newTestEnv(t)
	admin := testutil.TestUser("Ada", "admin")

	rec := env.postSetRule(admin, url.Values{
		"key":     {featuregate.KeyQuestBoard},
		"scope":   {"global"},
		"enabled": {"false"},
	})

	if rec.Code != http.StatusConflict {
		t.Errorf("expected status %d, got %d", http.StatusConflict, rec.Code)
	}
}

func TestHandleSetRule_NonAdminWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t)
	lead := testutil.TestUser("Lena", "chapter_lead")

	env.postSetRule(lead, url.Values{
		"key":     {featuregate.KeyQuestBoard},
		"scope":   {"global"},
		"enabled": {"false"},
	})

	if rules := listRules(t, env); len(rules) != 0 {
		t.Errorf("rules: got %d, want none written by a non-admin", len(rules))
	}
}

func TestHandleSetRule_UnknownKeyRejected(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t)
	admin := testutil.TestUser("Ada", "admin")

	rec := env.postSetRule(admin, url.Values{
		"key":     {"HOLO_DECK"},
		"scope":   {"global"},
		"enabled": {"false"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if !strings.Contains(rec.Header().Get("Location"), "error=") {
		t.Errorf("Location: got %q, want an error parameter", rec.Header().Get("Location"))
	}
	if rules := listRules(t, env); len(rules) != 0 {
		t.Errorf("rules: got %d, want none for an unknown key", len(rules))
	}
}

func TestHandleDeleteRule_RemovesRule(t *testing.T) {
	env := newTestEnv(t)
	env.provision(t)
	admin := testutil.TestUser("Ada", "admin")

	env.postSetRule(admin, url.Values{
		"key":     {featuregate.KeyReflections},
		"scope":   {"global"},
		"enabled": {"false"},
	})
	rules := listRules(t, env)
	if len(rules) != 1 {
		t.Fatalf("rules: got %d, want 1", len(rules))
	}

	rec := env.postDelete(admin, rules[0].ID.Hex())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if rules := listRules(t, env); len(rules) != 0 {
		t.Errorf("rules: got %d, want 0 after delete", len(rules))
	}
}
