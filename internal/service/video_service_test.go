package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"testing"

	"vidtube/internal/api/dto"
	"vidtube/internal/asset"
	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeAssetStore 记录上传/删除调用的素材存储替身
type fakeAssetStore struct {
	uploads   []string
	deletes   []string
	uploadErr error
	deleteErr error
}

func (f *fakeAssetStore) Upload(_ context.Context, localPath string) (*asset.UploadResult, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploads = append(f.uploads, localPath)
	return &asset.UploadResult{
		URL:      "http://assets.test/vidtube-media/" + path.Base(localPath),
		Duration: 12.3,
		Size:     1024,
	}, nil
}

func (f *fakeAssetStore) Delete(_ context.Context, fileURL string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, fileURL)
	return nil
}

// fakeViewPublisher 记录播放事件的发布替身
type fakeViewPublisher struct {
	published []uuid.UUID
}

func (f *fakeViewPublisher) PublishView(_ context.Context, videoID uuid.UUID) error {
	f.published = append(f.published, videoID)
	return nil
}

func newVideoService(db *gorm.DB, store *fakeAssetStore, views *fakeViewPublisher) *VideoService {
	var publisher ViewEventPublisher
	if views != nil {
		publisher = views
	}
	return NewVideoService(repository.NewVideoRepository(db), store, publisher, nil, nil)
}

func TestPublishVideo(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")

	info, err := svc.Publish(context.Background(), owner.ID,
		&dto.VideoPublishRequest{Title: "My clip", Description: "demo"},
		"/tmp/staged/clip.mp4", "/tmp/staged/cover.jpg")
	require.NoError(t, err)

	assert.Equal(t, "My clip", info.Title)
	assert.True(t, info.IsPublished)
	assert.Equal(t, 12.3, info.Duration)
	assert.Len(t, store.uploads, 2)

	var video model.Video
	require.NoError(t, db.First(&video, "id = ?", info.ID).Error)
	assert.Equal(t, owner.ID, video.OwnerID)
}

func TestPublishVideoMissingThumbnail(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")

	// 校验在任何上传发生之前失败
	_, err := svc.Publish(context.Background(), owner.ID,
		&dto.VideoPublishRequest{Title: "broken"}, "/tmp/staged/clip.mp4", "")
	assert.ErrorIs(t, err, ErrMissingAssetFile)
	assert.Empty(t, store.uploads)

	var count int64
	require.NoError(t, db.Model(&model.Video{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestPublishVideoUploadFailureCleansStagedThumbnail(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{uploadErr: errors.New("storage unreachable")}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")

	thumbPath := filepath.Join(t.TempDir(), "cover.jpg")
	require.NoError(t, os.WriteFile(thumbPath, []byte("jpeg"), 0o600))

	_, err := svc.Publish(context.Background(), owner.ID,
		&dto.VideoPublishRequest{Title: "broken"}, "/tmp/staged/clip.mp4", thumbPath)
	require.Error(t, err)

	// 视频上传失败时封面暂存文件不能遗留
	_, statErr := os.Stat(thumbPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGetDetailEmitsViewEvent(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	views := &fakeViewPublisher{}
	svc := newVideoService(db, store, views)

	owner := createTestUser(t, db, "owner")
	published := createTestVideo(t, db, owner.ID, "public")

	unpublished := createTestVideo(t, db, owner.ID, "draft")
	require.NoError(t, db.Model(&model.Video{}).Where("id = ?", unpublished.ID).
		Update("is_published", false).Error)

	info, err := svc.GetDetail(context.Background(), published.ID)
	require.NoError(t, err)
	require.NotNil(t, info.Owner)
	assert.Equal(t, "owner", info.Owner.Username)
	assert.Equal(t, []uuid.UUID{published.ID}, views.published)

	// 未发布视频不发播放事件
	_, err = svc.GetDetail(context.Background(), unpublished.ID)
	require.NoError(t, err)
	assert.Len(t, views.published, 1)
}

func TestUpdateVideoOwnershipAndFields(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")
	intruder := createTestUser(t, db, "intruder")
	video := createTestVideo(t, db, owner.ID, "original")

	newTitle := "renamed"
	_, err := svc.Update(context.Background(), video.ID, intruder.ID,
		&dto.VideoUpdateRequest{Title: &newTitle}, "")
	assert.ErrorIs(t, err, ErrVideoNoPermission)

	_, err = svc.Update(context.Background(), video.ID, owner.ID,
		&dto.VideoUpdateRequest{}, "")
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)

	info, err := svc.Update(context.Background(), video.ID, owner.ID,
		&dto.VideoUpdateRequest{Title: &newTitle}, "")
	require.NoError(t, err)
	assert.Equal(t, "renamed", info.Title)
}

func TestUpdateVideoReplacesThumbnail(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, owner.ID, "original")

	info, err := svc.Update(context.Background(), video.ID, owner.ID,
		&dto.VideoUpdateRequest{}, "/tmp/staged/new-cover.jpg")
	require.NoError(t, err)

	// 旧封面先删，再传新封面
	require.Len(t, store.deletes, 1)
	assert.Equal(t, video.ThumbnailURL, store.deletes[0])
	require.Len(t, store.uploads, 1)
	assert.Contains(t, info.Thumbnail, "new-cover.jpg")
}

func TestDeleteVideoCleansAssets(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, owner.ID, "doomed")

	require.NoError(t, svc.Delete(context.Background(), video.ID, owner.ID))

	assert.ElementsMatch(t, []string{video.VideoFileURL, video.ThumbnailURL}, store.deletes)

	// 物理删除，Unscoped 也找不到
	var count int64
	require.NoError(t, db.Unscoped().Model(&model.Video{}).Where("id = ?", video.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestDeleteVideoAssetFailureLeavesSoftDeleted(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{deleteErr: errors.New("storage unreachable")}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")
	video := createTestVideo(t, db, owner.ID, "stuck")

	err := svc.Delete(context.Background(), video.ID, owner.ID)
	require.Error(t, err)

	// 对外不可见，但记录仍在（软删除状态）
	var visible int64
	require.NoError(t, db.Model(&model.Video{}).Where("id = ?", video.ID).Count(&visible).Error)
	assert.Equal(t, int64(0), visible)

	var total int64
	require.NoError(t, db.Unscoped().Model(&model.Video{}).Where("id = ?", video.ID).Count(&total).Error)
	assert.Equal(t, int64(1), total)
}

func TestListVideosPaginationAndSort(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")
	for i := 1; i <= 12; i++ {
		createTestVideo(t, db, owner.ID, fmt.Sprintf("video-%02d", i))
	}

	// 第二页恰好跳过前 5 条
	data, err := svc.List(2, 5, "", "title", "asc", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(12), data.Total)
	assert.Equal(t, int64(3), data.TotalPages)
	require.Len(t, data.Videos, 5)
	assert.Equal(t, "video-06", data.Videos[0].Title)
	assert.Equal(t, "video-10", data.Videos[4].Title)
}

func TestListVideosSubstringFilter(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")
	createTestVideo(t, db, owner.ID, "Golang tutorial")
	createTestVideo(t, db, owner.ID, "cooking show")

	// 大小写不敏感的子串匹配
	data, err := svc.List(1, 10, "GOLANG", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Total)
	require.Len(t, data.Videos, 1)
	assert.Equal(t, "Golang tutorial", data.Videos[0].Title)
}

func TestListVideosExcludesUnpublished(t *testing.T) {
	db := setupTestDB(t)
	store := &fakeAssetStore{}
	svc := newVideoService(db, store, nil)

	owner := createTestUser(t, db, "owner")
	createTestVideo(t, db, owner.ID, "visible")
	draft := createTestVideo(t, db, owner.ID, "draft")
	require.NoError(t, db.Model(&model.Video{}).Where("id = ?", draft.ID).
		Update("is_published", false).Error)

	data, err := svc.List(1, 10, "", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), data.Total)

	// 切换发布状态后重新可见
	_, err = svc.TogglePublish(context.Background(), draft.ID, owner.ID)
	require.NoError(t, err)

	data, err = svc.List(1, 10, "", "", "", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), data.Total)
}
