package service

import (
	"fmt"
	"testing"

	"vidtube/internal/model"
	"vidtube/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 每个测试独立的内存 SQLite 数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Subscription{},
		&model.Tweet{},
	))

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Email:    username + "@test.dev",
		FullName: "Test " + username,
		Password: hash,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestVideo(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *model.Video {
	t.Helper()

	video := &model.Video{
		OwnerID:      ownerID,
		VideoFileURL: "http://assets.test/vidtube-media/" + title + ".mp4",
		ThumbnailURL: "http://assets.test/vidtube-media/" + title + ".jpg",
		Title:        title,
		Description:  "description of " + title,
		Duration:     42.5,
		IsPublished:  true,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}
