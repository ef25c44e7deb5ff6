package service

import (
	"testing"

	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLikeService(db *gorm.DB) *LikeService {
	return NewLikeService(
		repository.NewLikeRepository(db),
		repository.NewVideoRepository(db),
		repository.NewCommentRepository(db),
		repository.NewTweetRepository(db),
	)
}

func TestToggleVideoLike(t *testing.T) {
	db := setupTestDB(t)
	svc := newLikeService(db)

	owner := createTestUser(t, db, "owner")
	viewer := createTestUser(t, db, "viewer")
	video := createTestVideo(t, db, owner.ID, "toggle-target")

	// 第一次切换：点赞
	state, err := svc.ToggleVideo(viewer.ID, video.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeStateLiked, state)

	var count int64
	require.NoError(t, db.Model(&model.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 第二次切换：取消，回到初始状态
	state, err = svc.ToggleVideo(viewer.ID, video.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeStateUnliked, state)

	require.NoError(t, db.Model(&model.Like{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// 奇数次切换后只存在一行
	for i := 0; i < 3; i++ {
		_, err = svc.ToggleVideo(viewer.ID, video.ID)
		require.NoError(t, err)
	}
	require.NoError(t, db.Model(&model.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestToggleVideoLikeUnknownVideo(t *testing.T) {
	db := setupTestDB(t)
	svc := newLikeService(db)

	viewer := createTestUser(t, db, "viewer")
	ghost := createTestVideo(t, db, viewer.ID, "ghost")
	require.NoError(t, db.Unscoped().Delete(ghost).Error)

	_, err := svc.ToggleVideo(viewer.ID, ghost.ID)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestToggleCommentAndTweetLike(t *testing.T) {
	db := setupTestDB(t)
	svc := newLikeService(db)

	owner := createTestUser(t, db, "owner")
	viewer := createTestUser(t, db, "viewer")
	video := createTestVideo(t, db, owner.ID, "commented")

	comment := &model.Comment{VideoID: video.ID, OwnerID: owner.ID, Content: "nice"}
	require.NoError(t, db.Create(comment).Error)
	tweet := &model.Tweet{OwnerID: owner.ID, Content: "hello"}
	require.NoError(t, db.Create(tweet).Error)

	state, err := svc.ToggleComment(viewer.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeStateLiked, state)

	state, err = svc.ToggleTweet(viewer.ID, tweet.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeStateLiked, state)

	// 对不同实体的点赞互不影响
	var count int64
	require.NoError(t, db.Model(&model.Like{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	state, err = svc.ToggleComment(viewer.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, LikeStateUnliked, state)

	require.NoError(t, db.Model(&model.Like{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetLikedVideos(t *testing.T) {
	db := setupTestDB(t)
	svc := newLikeService(db)

	owner := createTestUser(t, db, "owner")
	viewer := createTestUser(t, db, "viewer")

	first := createTestVideo(t, db, owner.ID, "first")
	second := createTestVideo(t, db, owner.ID, "second")

	_, err := svc.ToggleVideo(viewer.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.ToggleVideo(viewer.ID, second.ID)
	require.NoError(t, err)

	data, err := svc.GetLikedVideos(viewer.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Total)
	assert.Len(t, data.Videos, 2)

	// 取消后列表收缩
	_, err = svc.ToggleVideo(viewer.ID, first.ID)
	require.NoError(t, err)

	data, err = svc.GetLikedVideos(viewer.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Total)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, second.ID, data.Videos[0].ID)
}

func TestGetLikedVideosExcludesDeletedVideos(t *testing.T) {
	db := setupTestDB(t)
	svc := newLikeService(db)

	owner := createTestUser(t, db, "owner")
	viewer := createTestUser(t, db, "viewer")

	kept := createTestVideo(t, db, owner.ID, "kept")
	doomed := createTestVideo(t, db, owner.ID, "doomed")

	_, err := svc.ToggleVideo(viewer.ID, kept.ID)
	require.NoError(t, err)
	_, err = svc.ToggleVideo(viewer.ID, doomed.ID)
	require.NoError(t, err)

	require.NoError(t, db.Delete(&model.Video{}, "id = ?", doomed.ID).Error)

	// 被删视频的点赞行不计入总数
	data, err := svc.GetLikedVideos(viewer.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Total)
	assert.Equal(t, int64(1), data.TotalPages)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, kept.ID, data.Videos[0].ID)
}
