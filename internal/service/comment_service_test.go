package service

import (
	"testing"

	"vidtube/internal/api/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(db *gorm.DB) *CommentService {
	return NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewVideoRepository(db),
	)
}

func TestCommentLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)

	owner := createTestUser(t, db, "owner")
	viewer := createTestUser(t, db, "viewer")
	video := createTestVideo(t, db, owner.ID, "commented")

	info, err := svc.Create(viewer.ID, video.ID, &dto.CommentCreateRequest{Content: "first!"})
	require.NoError(t, err)
	assert.Equal(t, video.ID, info.VideoID)
	assert.Equal(t, viewer.ID, info.OwnerID)

	updated, err := svc.Update(info.ID, viewer.ID, &dto.CommentUpdateRequest{Content: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)

	// 非评论者不能改不能删
	_, err = svc.Update(info.ID, owner.ID, &dto.CommentUpdateRequest{Content: "hijacked"})
	assert.ErrorIs(t, err, ErrCommentNoPermission)
	assert.ErrorIs(t, svc.Delete(info.ID, owner.ID), ErrCommentNoPermission)

	require.NoError(t, svc.Delete(info.ID, viewer.ID))

	var count int64
	require.NoError(t, db.Model(&model.Comment{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestCommentCreateUnknownVideo(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)

	viewer := createTestUser(t, db, "viewer")

	_, err := svc.Create(viewer.ID, uuid.New(), &dto.CommentCreateRequest{Content: "into the void"})
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestCommentListByVideo(t *testing.T) {
	db := setupTestDB(t)
	svc := newCommentService(db)

	owner := createTestUser(t, db, "owner")
	viewer := createTestUser(t, db, "viewer")
	video := createTestVideo(t, db, owner.ID, "popular")

	for i := 0; i < 5; i++ {
		_, err := svc.Create(viewer.ID, video.ID, &dto.CommentCreateRequest{Content: "comment"})
		require.NoError(t, err)
	}

	data, err := svc.ListByVideo(video.ID, 1, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(5), data.Total)
	assert.Len(t, data.Comments, 3)
	assert.Equal(t, int64(2), data.TotalPages)
	require.NotNil(t, data.Comments[0].Owner)
	assert.Equal(t, "viewer", data.Comments[0].Owner.Username)
}
