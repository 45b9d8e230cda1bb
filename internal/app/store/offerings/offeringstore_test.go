package offeringstore_test

import (
	"errors"
	"testing"

	offeringstore "github.com/dalemusser/chapterhub/internal/app/store/offerings"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateDraft(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := offeringstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateDraft(ctx, models.ClassOffering{
		TemplateID:   primitive.NewObjectID(),
		InstructorID: primitive.NewObjectID(),
		Title:        "  Intro to Soldering ",
		Description:  `<p>Safe irons</p><script>alert('x')</script>`,
	})
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if created.Status != models.OfferingStatusDraft {
		t.Errorf("status = %q, want draft", created.Status)
	}
	if created.ExternalID == "" {
		t.Error("expected an external ID to be generated")
	}
	if created.Title != "Intro to Soldering" {
		t.Errorf("title not trimmed: %q", created.Title)
	}
	if created.Description != "<p>Safe irons</p>" {
		t.Errorf("description not sanitized: %q", created.Description)
	}
}

func TestMarkPublished(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := offeringstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.CreateDraft(ctx, models.ClassOffering{
		TemplateID:   primitive.NewObjectID(),
		InstructorID: primitive.NewObjectID(),
		Title:        "Robotics 101",
	})
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	if err := store.MarkPublished(ctx, created.ID); err != nil {
		t.Fatalf("MarkPublished failed: %v", err)
	}

	got, err := store.OfferingByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("OfferingByID failed: %v", err)
	}
	if got.Status != models.OfferingStatusPublished {
		t.Errorf("status = %q, want published", got.Status)
	}

	// A second publish finds no draft to transition.
	if err := store.MarkPublished(ctx, created.ID); !errors.Is(err, offeringstore.ErrNotDraft) {
		t.Errorf("second publish: got %v, want ErrNotDraft", err)
	}
}

func TestOfferingByID_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := offeringstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.OfferingByID(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("OfferingByID failed: %v", err)
	}
	if got != nil {
		t.Errorf("got %+v, want nil for a missing offering", got)
	}
}

func TestNonDraftForInstructor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := offeringstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := primitive.NewObjectID()

	draft, err := store.CreateDraft(ctx, models.ClassOffering{
		TemplateID:   primitive.NewObjectID(),
		InstructorID: instructor,
		Title:        "Draft Class",
	})
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}

	published, err := store.CreateDraft(ctx, models.ClassOffering{
		TemplateID:   primitive.NewObjectID(),
		InstructorID: instructor,
		Title:        "Live Class",
	})
	if err != nil {
		t.Fatalf("CreateDraft failed: %v", err)
	}
	if err := store.MarkPublished(ctx, published.ID); err != nil {
		t.Fatalf("MarkPublished failed: %v", err)
	}

	got, err := store.NonDraftForInstructor(ctx, instructor)
	if err != nil {
		t.Fatalf("NonDraftForInstructor failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != published.ID {
		t.Errorf("got %v, want only the published offering", got)
	}
	_ = draft
}
