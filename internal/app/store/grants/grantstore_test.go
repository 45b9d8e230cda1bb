package grantstore_test

import (
	"testing"
	"time"

	grantstore "github.com/dalemusser/chapterhub/internal/app/store/grants"
	"github.com/dalemusser/chapterhub/internal/domain/models"
	"github.com/dalemusser/chapterhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPermissions_GrantIsIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	perms := grantstore.NewPermissions(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := primitive.NewObjectID()
	admin := primitive.NewObjectID()

	if err := perms.Grant(ctx, instructor, models.Level201, admin, "Ada Admin"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if err := perms.Grant(ctx, instructor, models.Level201, admin, "Ada Admin"); err != nil {
		t.Fatalf("second Grant failed: %v", err)
	}

	levels, err := perms.Levels(ctx, instructor)
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	if len(levels) != 1 || levels[0] != models.Level201 {
		t.Errorf("levels = %v, want [201]", levels)
	}
}

func TestPermissions_Revoke(t *testing.T) {
	db := testutil.SetupTestDB(t)
	perms := grantstore.NewPermissions(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := primitive.NewObjectID()
	admin := primitive.NewObjectID()

	if err := perms.Grant(ctx, instructor, models.Level301, admin, "Ada Admin"); err != nil {
		t.Fatalf("Grant failed: %v", err)
	}
	if err := perms.Revoke(ctx, instructor, models.Level301); err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}

	levels, err := perms.Levels(ctx, instructor)
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	if len(levels) != 0 {
		t.Errorf("levels = %v, want none after revoke", levels)
	}
}

func TestLegacy_LevelsForInstructor(t *testing.T) {
	db := testutil.SetupTestDB(t)
	legacy := grantstore.NewLegacy(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	instructor := primitive.NewObjectID()
	now := time.Now()
	_, err := db.Collection("legacy_approvals").InsertOne(ctx, models.LegacyApproval{
		ID:           primitive.NewObjectID(),
		InstructorID: instructor,
		Levels:       []models.TeachLevel{models.Level201, models.Level301},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("insert fixture: %v", err)
	}

	levels, err := legacy.Levels(ctx, instructor)
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	if len(levels) != 2 {
		t.Errorf("levels = %v, want two legacy levels", levels)
	}

	none, err := legacy.Levels(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Levels failed: %v", err)
	}
	if none != nil {
		t.Errorf("levels = %v, want nil for an instructor with no legacy doc", none)
	}
}
