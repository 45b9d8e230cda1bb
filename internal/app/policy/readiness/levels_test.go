package readiness_test

import (
	"context"
	"testing"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanTeachLevel_ExplicitGrant(t *testing.T) {
	instructorID := primitive.NewObjectID()
	f := &fakeStore{explicit: []models.TeachLevel{models.Level201}}

	ok, err := newEngine(f, gatesOn()).CanTeachLevel(context.Background(), instructorID, models.Level201)
	if err != nil {
		t.Fatalf("CanTeachLevel failed: %v", err)
	}
	if !ok {
		t.Error("explicit permission should grant the level")
	}
}

func TestCanTeachLevel_LegacyFallback(t *testing.T) {
	instructorID := primitive.NewObjectID()
	f := &fakeStore{legacy: []models.TeachLevel{models.Level301}}

	ok, err := newEngine(f, gatesOn()).CanTeachLevel(context.Background(), instructorID, models.Level301)
	if err != nil {
		t.Fatalf("CanTeachLevel failed: %v", err)
	}
	if !ok {
		t.Error("legacy approval alone should grant the level")
	}
}

func TestCanTeachLevel_NeitherSource(t *testing.T) {
	instructorID := primitive.NewObjectID()
	f := &fakeStore{
		explicit: []models.TeachLevel{models.Level201},
		legacy:   []models.TeachLevel{models.Level101},
	}

	ok, err := newEngine(f, gatesOn()).CanTeachLevel(context.Background(), instructorID, models.Level401)
	if err != nil {
		t.Fatalf("CanTeachLevel failed: %v", err)
	}
	if ok {
		t.Error("level granted by neither source should be denied")
	}
}

func TestCanTeachLevel_ExactLevelOnly(t *testing.T) {
	// A 301 grant does not imply 201; grants are per exact level.
	instructorID := primitive.NewObjectID()
	f := &fakeStore{explicit: []models.TeachLevel{models.Level301}}

	ok, err := newEngine(f, gatesOn()).CanTeachLevel(context.Background(), instructorID, models.Level201)
	if err != nil {
		t.Fatalf("CanTeachLevel failed: %v", err)
	}
	if ok {
		t.Error("grants must match the exact level")
	}
}

func TestTeachLevel_Rank(t *testing.T) {
	ordered := []models.TeachLevel{models.Level101, models.Level201, models.Level301, models.Level401}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("expected %s to rank below %s", ordered[i-1], ordered[i])
		}
	}
	if models.TeachLevel("999").Rank() >= models.Level101.Rank() {
		t.Error("unknown levels must rank below 101")
	}
}
