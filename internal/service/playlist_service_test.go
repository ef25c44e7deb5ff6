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

func newPlaylistService(db *gorm.DB) *PlaylistService {
	return NewPlaylistService(
		repository.NewPlaylistRepository(db),
		repository.NewVideoRepository(db),
	)
}

func TestPlaylistCreateDuplicateName(t *testing.T) {
	db := setupTestDB(t)
	svc := newPlaylistService(db)

	owner := createTestUser(t, db, "owner")
	other := createTestUser(t, db, "other")

	_, err := svc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "Watch Later", Description: "queue"})
	require.NoError(t, err)

	// 同一用户下重名被拒绝
	_, err = svc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "Watch Later", Description: "again"})
	assert.ErrorIs(t, err, ErrPlaylistNameTaken)

	// 不同用户可以使用相同名称
	_, err = svc.Create(other.ID, &dto.PlaylistCreateRequest{Name: "Watch Later", Description: "mine"})
	assert.NoError(t, err)
}

func TestPlaylistAddVideoKeepsOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := newPlaylistService(db)

	owner := createTestUser(t, db, "owner")
	info, err := svc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "mix", Description: "d"})
	require.NoError(t, err)

	a := createTestVideo(t, db, owner.ID, "alpha")
	b := createTestVideo(t, db, owner.ID, "beta")
	c := createTestVideo(t, db, owner.ID, "gamma")

	for _, v := range []uuid.UUID{a.ID, b.ID, c.ID} {
		_, err = svc.AddVideo(info.ID, v, owner.ID)
		require.NoError(t, err)
	}

	got, err := svc.GetByID(info.ID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 3)
	assert.Equal(t, a.ID, got.Videos[0].ID)
	assert.Equal(t, b.ID, got.Videos[1].ID)
	assert.Equal(t, c.ID, got.Videos[2].ID)
}

func TestPlaylistAddDuplicateVideoNoMutation(t *testing.T) {
	db := setupTestDB(t)
	svc := newPlaylistService(db)

	owner := createTestUser(t, db, "owner")
	info, err := svc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "mix", Description: "d"})
	require.NoError(t, err)

	video := createTestVideo(t, db, owner.ID, "alpha")
	_, err = svc.AddVideo(info.ID, video.ID, owner.ID)
	require.NoError(t, err)

	_, err = svc.AddVideo(info.ID, video.ID, owner.ID)
	assert.ErrorIs(t, err, ErrVideoAlreadyInPlaylist)

	var count int64
	require.NoError(t, db.Model(&model.PlaylistVideo{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPlaylistRemoveVideo(t *testing.T) {
	db := setupTestDB(t)
	svc := newPlaylistService(db)

	owner := createTestUser(t, db, "owner")
	info, err := svc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "mix", Description: "d"})
	require.NoError(t, err)

	a := createTestVideo(t, db, owner.ID, "alpha")
	b := createTestVideo(t, db, owner.ID, "beta")
	c := createTestVideo(t, db, owner.ID, "gamma")
	for _, v := range []uuid.UUID{a.ID, b.ID, c.ID} {
		_, err = svc.AddVideo(info.ID, v, owner.ID)
		require.NoError(t, err)
	}

	// 移除中间一个，剩余保持相对顺序
	got, err := svc.RemoveVideo(info.ID, b.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, got.Videos, 2)
	assert.Equal(t, a.ID, got.Videos[0].ID)
	assert.Equal(t, c.ID, got.Videos[1].ID)

	// 移除不在列表中的视频直接失败，序列不变
	_, err = svc.RemoveVideo(info.ID, b.ID, owner.ID)
	assert.ErrorIs(t, err, ErrVideoNotInPlaylist)

	got, err = svc.GetByID(info.ID)
	require.NoError(t, err)
	assert.Len(t, got.Videos, 2)
}

func TestPlaylistOwnershipChecks(t *testing.T) {
	db := setupTestDB(t)
	svc := newPlaylistService(db)

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")

	info, err := svc.Create(owner.ID, &dto.PlaylistCreateRequest{Name: "mine", Description: "d"})
	require.NoError(t, err)
	video := createTestVideo(t, db, owner.ID, "alpha")

	newName := "stolen"
	_, err = svc.Update(info.ID, intruder.ID, &dto.PlaylistUpdateRequest{Name: &newName})
	assert.ErrorIs(t, err, ErrPlaylistNoPermission)

	_, err = svc.AddVideo(info.ID, video.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrPlaylistNoPermission)

	err = svc.Delete(info.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrPlaylistNoPermission)

	// 原记录未被改动
	got, err := svc.GetByID(info.ID)
	require.NoError(t, err)
	assert.Equal(t, "mine", got.Name)
	assert.Empty(t, got.Videos)
}
