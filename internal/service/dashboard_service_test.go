package service

import (
	"context"
	"testing"

	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDashboardService(db *gorm.DB) *DashboardService {
	return NewDashboardService(
		repository.NewVideoRepository(db),
		repository.NewSubscriptionRepository(db),
		repository.NewLikeRepository(db),
		nil,
	)
}

func TestDashboardStats(t *testing.T) {
	db := setupTestDB(t)
	svc := newDashboardService(db)

	channel := createTestUser(t, db, "channel")
	fan := createTestUser(t, db, "fan")

	first := createTestVideo(t, db, channel.ID, "first")
	second := createTestVideo(t, db, channel.ID, "second")
	require.NoError(t, db.Model(&model.Video{}).Where("id = ?", first.ID).
		Update("views", 100).Error)
	require.NoError(t, db.Model(&model.Video{}).Where("id = ?", second.ID).
		Update("views", 23).Error)

	require.NoError(t, db.Create(&model.Subscription{SubscriberID: fan.ID, ChannelID: channel.ID}).Error)

	// 视频、评论、推文三类点赞都归属到频道
	require.NoError(t, db.Create(&model.Like{LikedBy: fan.ID, VideoID: &first.ID}).Error)
	comment := &model.Comment{VideoID: first.ID, OwnerID: channel.ID, Content: "thanks"}
	require.NoError(t, db.Create(comment).Error)
	require.NoError(t, db.Create(&model.Like{LikedBy: fan.ID, CommentID: &comment.ID}).Error)
	tweet := &model.Tweet{OwnerID: channel.ID, Content: "news"}
	require.NoError(t, db.Create(tweet).Error)
	require.NoError(t, db.Create(&model.Like{LikedBy: fan.ID, TweetID: &tweet.ID}).Error)

	stats, err := svc.GetStats(context.Background(), channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalVideos)
	assert.Equal(t, int64(123), stats.TotalViews)
	assert.Equal(t, int64(1), stats.TotalSubscribers)
	assert.Equal(t, int64(3), stats.TotalLikes)
}

func TestDashboardChannelVideosIncludeUnpublished(t *testing.T) {
	db := setupTestDB(t)
	svc := newDashboardService(db)

	channel := createTestUser(t, db, "channel")
	createTestVideo(t, db, channel.ID, "public")
	draft := createTestVideo(t, db, channel.ID, "draft")
	require.NoError(t, db.Model(&model.Video{}).Where("id = ?", draft.ID).
		Update("is_published", false).Error)

	data, err := svc.GetChannelVideos(channel.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Total)
}
