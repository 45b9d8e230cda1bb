package offerings_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/chapterhub/internal/app/features/offerings"
	"github.com/dalemusser/chapterhub/internal/app/policy/readiness"
	templatestore "github.com/dalemusser/chapterhub/internal/app/store/classtemplates"
	grantstore "github.com/dalemusser/chapterhub/internal/app/store/grants"
	interviewstore "github.com/dalemusser/chapterhub/internal/app/store/interviews"
	offeringstore "github.com/dalemusser/chapterhub/internal/app/store/offerings"
	trainingstore "github.com/dalemusser/chapterhub/internal/app/store/training"
	"github.com/dalemusser/chapterhub/internal/app/system/auth"
	"github.com/dalemusser/chapterhub/internal/app/system/pagecache"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type testEnv struct {
	handler   *offerings.Handler
	db        *mongo.Database
	cache     *pagecache.Cache
	store     *offeringstore.Store
	templates *templatestore.Store
}

func newTestEnv(t *testing.T, toggles readiness.Toggles) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	rdy := &readiness.Engine{
		Modules:     trainingstore.NewModules(db),
		Assignments: trainingstore.NewAssignments(db),
		Interviews:  interviewstore.New(db),
		Offerings:   offeringstore.New(db),
		Templates:   templatestore.New(db),
		Explicit:    grantstore.NewPermissions(db),
		Legacy:      grantstore.NewLegacy(db),
		Toggles:     toggles,
		Log:         logger,
	}

	cache := pagecache.New(pagecache.DefaultSize, pagecache.DefaultTTL, logger)
	return &testEnv{
		handler:   offerings.NewHandler(db, rdy, cache, logger),
		db:        db,
		cache:     cache,
		store:     offeringstore.New(db),
		templates: templatestore.New(db),
	}
}

func (env *testEnv) createTemplate(t *testing.T, title string, level models.TeachLevel) models.ClassTemplate {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	tmpl, err := env.templates.Create(ctx, models.ClassTemplate{Title: title, Level: level})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	return tmpl
}

func (env *testEnv) createDraft(t *testing.T, instructor *auth.SessionUser, tmpl models.ClassTemplate) models.ClassOffering {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	iid, err := primitive.ObjectIDFromHex(instructor.ID)
	if err != nil {
		t.Fatalf("instructor id: %v", err)
	}
	off, err := env.store.CreateDraft(ctx, models.ClassOffering{
		TemplateID:   tmpl.ID,
		InstructorID: iid,
		Title:        "Intro to Soldering",
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	return off
}

// postPublish drives HandlePublish through a chi route so URL params
// resolve. Error-page renders panic without the app's template init; the
// decision and status code land before any render.
func postPublish(env *testEnv, user *auth.SessionUser, offeringID string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Post("/offerings/{id}/publish", env.handler.HandlePublish)

	req := httptest.NewRequest("POST", "/offerings/"+offeringID+"/publish", nil)
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

func gateOff() readiness.StaticToggles {
	return readiness.StaticToggles{PublishGate: false, InterviewGate: false}
}

func gateOn() readiness.StaticToggles {
	return readiness.StaticToggles{PublishGate: true, InterviewGate: true}
}

func TestHandlePublish_GateDisabledPublishesDraft(t *testing.T) {
	env := newTestEnv(t, gateOff())
	instructor := testutil.TestUser("Ivy", "instructor")
	tmpl := env.createTemplate(t, "Robotics 101", models.Level101)
	draft := env.createDraft(t, instructor, tmpl)

	rec := postPublish(env, instructor, draft.ID.Hex())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	got, err := env.store.OfferingByID(ctx, draft.ID)
	if err != nil {
		t.Fatalf("reload offering: %v", err)
	}
	if got.Status != models.OfferingStatusPublished {
		t.Errorf("Status: got %q, want %q", got.Status, models.OfferingStatusPublished)
	}
}

func TestHandlePublish_InvalidatesCachedPages(t *testing.T) {
	env := newTestEnv(t, gateOff())
	instructor := testutil.TestUser("Ivy", "instructor")
	tmpl := env.createTemplate(t, "Robotics 101", models.Level101)
	draft := env.createDraft(t, instructor, tmpl)

	env.cache.Set("/", "text/html", []byte("stale home"))
	env.cache.Set("/classes", "text/html", []byte("stale classes"))
	env.cache.Set("/library", "text/html", []byte("untouched"))

	postPublish(env, instructor, draft.ID.Hex())

	if _, ok := env.cache.Get("/"); ok {
		t.Error("expected / to be invalidated after publish")
	}
	if _, ok := env.cache.Get("/classes"); ok {
		t.Error("expected /classes to be invalidated after publish")
	}
	if _, ok := env.cache.Get("/library"); !ok {
		t.Error("expected /library to survive publish invalidation")
	}
}

func TestHandlePublish_UnreadyInstructorBlocked(t *testing.T) {
	env := newTestEnv(t, gateOn())
	instructor := testutil.TestUser("Ivy", "instructor")
	tmpl := env.createTemplate(t, "Robotics 101", models.Level101)
	draft := env.createDraft(t, instructor, tmpl)

	// A required module with no completed assignment blocks the gate.
	ctx, cancel := testutil.TestContext()
	defer cancel()
	mods := trainingstore.NewModules(env.db)
	if _, err := mods.Create(ctx, models.TrainingModule{Title: "Safety Basics", Required: true}); err != nil {
		t.Fatalf("create module: %v", err)
	}

	rec := postPublish(env, instructor, draft.ID.Hex())

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rec.Code)
	}

	got, err := env.store.OfferingByID(ctx, draft.ID)
	if err != nil {
		t.Fatalf("reload offering: %v", err)
	}
	if got.Status != models.OfferingStatusDraft {
		t.Errorf("Status: got %q, want draft to stay unpublished", got.Status)
	}
}

func TestHandlePublish_OtherInstructorsOfferingForbidden(t *testing.T) {
	env := newTestEnv(t, gateOff())
	owner := testutil.TestUser("Ivy", "instructor")
	intruder := testutil.TestUser("Mal", "instructor")
	tmpl := env.createTemplate(t, "Robotics 101", models.Level101)
	draft := env.createDraft(t, owner, tmpl)

	postPublish(env, intruder, draft.ID.Hex())

	ctx, cancel := testutil.TestContext()
	defer cancel()
	got, err := env.store.OfferingByID(ctx, draft.ID)
	if err != nil {
		t.Fatalf("reload offering: %v", err)
	}
	if got.Status != models.OfferingStatusDraft {
		t.Errorf("Status: got %q, want draft to stay unpublished", got.Status)
	}
}

func TestHandlePublish_SecondPublishRedirectsWithError(t *testing.T) {
	env := newTestEnv(t, gateOff())
	instructor := testutil.TestUser("Ivy", "instructor")
	tmpl := env.createTemplate(t, "Robotics 101", models.Level101)
	draft := env.createDraft(t, instructor, tmpl)

	postPublish(env, instructor, draft.ID.Hex())
	rec := postPublish(env, instructor, draft.ID.Hex())

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.Contains(location, "error=") {
		t.Errorf("Location: got %q, want an error parameter", location)
	}
}

func TestHandlePublish_UnknownOfferingNotFound(t *testing.T) {
	env := newTestEnv(t, gateOff())
	instructor := testutil.TestUser("Ivy", "instructor")

	rec := postPublish(env, instructor, primitive.NewObjectID().Hex())

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}
}

func TestHandleCreate_SavesDraft(t *testing.T) {
	env := newTestEnv(t, gateOff())
	instructor := testutil.TestUser("Ivy", "instructor")
	tmpl := env.createTemplate(t, "Robotics 101", models.Level101)

	form := url.Values{
		"title":       {"Weekend Robotics"},
		"description": {"<p>Build a line follower.</p>"},
		"template_id": {tmpl.ID.Hex()},
		"starts_at":   {time.Now().Add(48 * time.Hour).Format("2006-01-02T15:04")},
	}

	req := httptest.NewRequest("POST", "/offerings/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, instructor)
	rec := httptest.NewRecorder()

	env.handler.HandleCreate(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}

	ctx, cancel := testutil.TestContext()
	defer cancel()
	iid, _ := primitive.ObjectIDFromHex(instructor.ID)
	list, err := env.store.ListForInstructor(ctx, iid)
	if err != nil {
		t.Fatalf("list offerings: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("offerings: got %d, want 1", len(list))
	}
	if list[0].Status != models.OfferingStatusDraft {
		t.Errorf("Status: got %q, want %q", list[0].Status, models.OfferingStatusDraft)
	}
	if list[0].ExternalID == "" {
		t.Error("expected an external id on the saved draft")
	}
}

func TestHandleCreate_StudentForbidden(t *testing.T) {
	env := newTestEnv(t, gateOff())
	student := testutil.TestUser("Sam", "student")

	form := url.Values{"title": {"Sneaky Class"}}
	req := httptest.NewRequest("POST", "/offerings/new", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = testutil.WithUser(req, student)
	rec := httptest.NewRecorder()

	func() {
		defer func() { recover() }()
		env.handler.HandleCreate(rec, req)
	}()

	ctx, cancel := testutil.TestContext()
	defer cancel()
	sid, _ := primitive.ObjectIDFromHex(student.ID)
	list, err := env.store.ListForInstructor(ctx, sid)
	if err != nil {
		t.Fatalf("list offerings: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("offerings: got %d, want none for a student", len(list))
	}
}
