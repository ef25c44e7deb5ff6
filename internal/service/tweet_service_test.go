package service

import (
	"encoding/json"
	"testing"

	"vidtube/internal/api/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTweetService(db *gorm.DB) *TweetService {
	return NewTweetService(
		repository.NewTweetRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestTweetLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := newTweetService(db)

	owner := createTestUser(t, db, "owner")

	info, err := svc.Create(owner.ID, &dto.TweetCreateRequest{Content: "hello world"})
	require.NoError(t, err)
	assert.Equal(t, "hello world", info.Content)
	assert.Equal(t, owner.ID, info.OwnerID)

	// 创建响应序列化后必须带作者字段
	payload, err := json.Marshal(info)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"owner_id":"`+owner.ID.String()+`"`)

	updated, err := svc.Update(info.ID, owner.ID, &dto.TweetUpdateRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	require.NoError(t, svc.Delete(info.ID, owner.ID))

	var count int64
	require.NoError(t, db.Model(&model.Tweet{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestTweetOwnershipEnforced(t *testing.T) {
	db := setupTestDB(t)
	svc := newTweetService(db)

	author := createTestUser(t, db, "author")
	intruder := createTestUser(t, db, "intruder")

	info, err := svc.Create(author.ID, &dto.TweetCreateRequest{Content: "original"})
	require.NoError(t, err)

	// 非作者修改被拒绝，内容不变
	_, err = svc.Update(info.ID, intruder.ID, &dto.TweetUpdateRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrTweetNoPermission)

	err = svc.Delete(info.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrTweetNoPermission)

	var tweet model.Tweet
	require.NoError(t, db.First(&tweet, "id = ?", info.ID).Error)
	assert.Equal(t, "original", tweet.Content)
}

func TestTweetListByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newTweetService(db)

	author := createTestUser(t, db, "author")
	for i := 0; i < 3; i++ {
		_, err := svc.Create(author.ID, &dto.TweetCreateRequest{Content: "post"})
		require.NoError(t, err)
	}

	data, err := svc.ListByUser(author.ID, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), data.Total)
	assert.Len(t, data.Tweets, 2)
	assert.Equal(t, int64(2), data.TotalPages)
	require.NotNil(t, data.Tweets[0].Owner)
	assert.Equal(t, "author", data.Tweets[0].Owner.Username)
}
