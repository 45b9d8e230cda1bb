package metricsstore

import (
	"context"

	rulestore "github.com/dalemusser/chapterhub/internal/app/store/featuregates"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Counts is the set of totals used by dashboards (admin, chapter lead).
type Counts struct {
	Chapters    int64
	Instructors int64
	Students    int64
	Offerings   int64
	Published   int64
	GateRules   int64
}

// FetchDashboardCounts returns the high-level counts used by dashboards.
// Intentionally tolerant: on error it returns 0 for that counter.
func FetchDashboardCounts(ctx context.Context, db *mongo.Database) Counts {
	var out Counts

	if n, err := db.Collection("chapters").CountDocuments(ctx, bson.M{"status": "active"}); err == nil {
		out.Chapters = n
	}

	if n, err := db.Collection("users").CountDocuments(ctx, bson.M{"roles": "instructor"}); err == nil {
		out.Instructors = n
	}

	if n, err := db.Collection("users").CountDocuments(ctx, bson.M{"roles": "student"}); err == nil {
		out.Students = n
	}

	if n, err := db.Collection("class_offerings").CountDocuments(ctx, bson.M{}); err == nil {
		out.Offerings = n
	}

	if n, err := db.Collection("class_offerings").CountDocuments(ctx, bson.M{"status": "published"}); err == nil {
		out.Published = n
	}

	if n, err := db.Collection(rulestore.CollectionName).CountDocuments(ctx, bson.M{}); err == nil {
		out.GateRules = n
	}

	return out
}

// FetchChapterCounts returns per-chapter totals for the chapter lead dashboard.
func FetchChapterCounts(ctx context.Context, db *mongo.Database, chapterID primitive.ObjectID) Counts {
	var out Counts

	if n, err := db.Collection("users").CountDocuments(ctx, bson.M{"chapter_id": chapterID, "roles": "instructor"}); err == nil {
		out.Instructors = n
	}

	if n, err := db.Collection("users").CountDocuments(ctx, bson.M{"chapter_id": chapterID, "roles": "student"}); err == nil {
		out.Students = n
	}

	if n, err := db.Collection("class_offerings").CountDocuments(ctx, bson.M{"chapter_id": chapterID}); err == nil {
		out.Offerings = n
	}

	if n, err := db.Collection("class_offerings").CountDocuments(ctx, bson.M{"chapter_id": chapterID, "status": "published"}); err == nil {
		out.Published = n
	}

	return out
}
