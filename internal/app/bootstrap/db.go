// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	rulestore "github.com/dalemusser/chapterhub/internal/app/store/featuregates"
	"github.com/dalemusser/chapterhub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB establishes the MongoDB connection used by the whole app.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	connectCtx, cancel := context.WithTimeout(ctx, timeouts.Long())
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return DBDeps{}, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return DBDeps{}, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase))

	return DBDeps{
		ChapterHubMongoClient:   client,
		ChapterHubMongoDatabase: client.Database(appCfg.MongoDatabase),
	}, nil
}

// EnsureSchema creates the collections and indexes the app relies on.
// It is idempotent; existing collections and indexes are left alone.
//
// Creating the feature_gate_rules collection here is what "provisions"
// the rule store: gate mutations refuse to run until this has happened.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	db := deps.ChapterHubMongoDatabase

	if err := ensureCollection(ctx, db, rulestore.CollectionName); err != nil {
		return err
	}

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "chapter_id", Value: 1}}},
			{Keys: bson.D{{Key: "roles", Value: 1}}},
		},
		"chapters": {
			{Keys: bson.D{{Key: "name_ci", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"training_modules": {
			{Keys: bson.D{{Key: "sort_key", Value: 1}}},
		},
		"training_assignments": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "module_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"interview_gates": {
			{Keys: bson.D{{Key: "instructor_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"teaching_permissions": {
			{Keys: bson.D{{Key: "instructor_id", Value: 1}, {Key: "level", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"class_templates": {
			{Keys: bson.D{{Key: "title_ci", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		"class_offerings": {
			{Keys: bson.D{{Key: "external_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "instructor_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		rulestore.CollectionName: {
			{Keys: bson.D{{Key: "feature_key", Value: 1}, {Key: "scope", Value: 1}}},
			{Keys: bson.D{{Key: "updated_at", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}

	logger.Info("schema ensured", zap.Int("collections", len(indexes)))
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(names) > 0 {
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		return fmt.Errorf("create collection %s: %w", name, err)
	}
	return nil
}
