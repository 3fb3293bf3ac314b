package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/IDobkov90/ufc/internal/model"
	"github.com/IDobkov90/ufc/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServices wires the full service stack against an in-memory sqlite
// store. Redis is absent; the services degrade to uncached reads.
func newTestServices(t *testing.T) (*Services, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every session on the same in-memory database
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Topic{},
		&model.Post{},
		&model.Comment{},
		&model.PostVote{},
	))
	repos := repository.NewRepositories(db)
	return NewServices(db, nil, repos, "test-secret", 1), db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role model.Role) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "not-a-real-hash",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func getUser(t *testing.T, db *gorm.DB, id uint) *model.User {
	t.Helper()
	var user model.User
	require.NoError(t, db.First(&user, id).Error)
	return &user
}

func getTopic(t *testing.T, db *gorm.DB, id uint) *model.Topic {
	t.Helper()
	var topic model.Topic
	require.NoError(t, db.First(&topic, id).Error)
	return &topic
}

func getPost(t *testing.T, db *gorm.DB, id uint) *model.Post {
	t.Helper()
	var post model.Post
	require.NoError(t, db.First(&post, id).Error)
	return &post
}

func seedTopic(t *testing.T, svcs *Services, authorID uint, title string) *model.Topic {
	t.Helper()
	topic, err := svcs.Topic.CreateTopic(context.Background(), authorID, title,
		"seeded topic content", model.CategoryGeneralUFC)
	require.NoError(t, err)
	return topic
}

func seedPost(t *testing.T, svcs *Services, topicID, authorID uint, content string) *model.Post {
	t.Helper()
	post, err := svcs.Post.CreatePost(context.Background(), topicID, authorID, content, nil)
	require.NoError(t, err)
	return post
}
