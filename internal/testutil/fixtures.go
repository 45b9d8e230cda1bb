package testutil

import (
	"time"

	"github.com/dalemusser/chapterhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InstructorFixture returns an active instructor user ready for insert.
func InstructorFixture(name, email string) models.User {
	now := time.Now().UTC()
	return models.User{
		ID:        primitive.NewObjectID(),
		FullName:  name,
		Email:     email,
		Role:      "instructor",
		Roles:     []string{"instructor"},
		Status:    models.UserStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ChapterFixture returns an active chapter ready for insert.
func ChapterFixture(name string) models.Chapter {
	now := time.Now().UTC()
	return models.Chapter{
		ID:        primitive.NewObjectID(),
		Name:      name,
		City:      "Columbia",
		Region:    "MO",
		TimeZone:  "America/Chicago",
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// RequiredModuleFixture returns a required training module.
func RequiredModuleFixture(title string, sortKey int) models.TrainingModule {
	now := time.Now().UTC()
	return models.TrainingModule{
		ID:        primitive.NewObjectID(),
		Title:     title,
		Required:  true,
		SortKey:   sortKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
