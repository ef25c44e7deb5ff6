package service

import (
	"errors"

	"vidtube/internal/api/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrPlaylistNotFound       = errors.New("playlist not found")
	ErrPlaylistNoPermission   = errors.New("you do not have permission to modify this playlist")
	ErrPlaylistNameTaken      = errors.New("a playlist with this name already exists")
	ErrVideoAlreadyInPlaylist = errors.New("video is already in the playlist")
	ErrVideoNotInPlaylist     = errors.New("video is not in the playlist")
)

type PlaylistService struct {
	playlistRepo *repository.PlaylistRepository
	videoRepo    *repository.VideoRepository
}

func NewPlaylistService(playlistRepo *repository.PlaylistRepository, videoRepo *repository.VideoRepository) *PlaylistService {
	return &PlaylistService{playlistRepo: playlistRepo, videoRepo: videoRepo}
}

// Create 创建播放列表，同一用户下名称不可重复
func (s *PlaylistService) Create(ownerID uuid.UUID, req *dto.PlaylistCreateRequest) (*dto.PlaylistInfo, error) {
	taken, err := s.playlistRepo.ExistsByOwnerAndName(ownerID, req.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrPlaylistNameTaken
	}

	playlist := &model.Playlist{
		OwnerID:     ownerID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlistRepo.Create(playlist); err != nil {
		return nil, err
	}
	return toPlaylistInfo(playlist, false), nil
}

// GetByID 获取播放列表详情，视频按列表内顺序返回
func (s *PlaylistService) GetByID(playlistID uuid.UUID) (*dto.PlaylistInfo, error) {
	playlist, err := s.playlistRepo.GetByIDWithItems(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return toPlaylistInfo(playlist, true), nil
}

// ListByUser 获取某用户的全部播放列表
func (s *PlaylistService) ListByUser(userID uuid.UUID) (*dto.PlaylistListData, error) {
	playlists, err := s.playlistRepo.ListByOwner(userID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.PlaylistInfo, 0, len(playlists))
	for i := range playlists {
		items = append(items, *toPlaylistInfo(&playlists[i], true))
	}
	return &dto.PlaylistListData{
		Playlists: items,
		Total:     int64(len(items)),
	}, nil
}

// Update 更新名称与描述（仅创建者本人）
func (s *PlaylistService) Update(playlistID, currentUserID uuid.UUID, req *dto.PlaylistUpdateRequest) (*dto.PlaylistInfo, error) {
	playlist, err := s.ownedPlaylist(playlistID, currentUserID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != nil && *req.Name != playlist.Name {
		taken, err := s.playlistRepo.ExistsByOwnerAndName(currentUserID, *req.Name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrPlaylistNameTaken
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if _, err := s.playlistRepo.Update(playlistID, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	return s.GetByID(playlistID)
}

// Delete 删除播放列表及其条目（仅创建者本人）
func (s *PlaylistService) Delete(playlistID, currentUserID uuid.UUID) error {
	if _, err := s.ownedPlaylist(playlistID, currentUserID); err != nil {
		return err
	}
	if err := s.playlistRepo.Delete(playlistID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlaylistNotFound
		}
		return err
	}
	return nil
}

// AddVideo 把视频追加到播放列表末尾（仅创建者本人）
// 重复加入直接失败，不改动现有序列；写入时整个有序序列一次落库
func (s *PlaylistService) AddVideo(playlistID, videoID, currentUserID uuid.UUID) (*dto.PlaylistInfo, error) {
	playlist, err := s.ownedPlaylistWithItems(playlistID, currentUserID)
	if err != nil {
		return nil, err
	}

	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	videoIDs := make([]uuid.UUID, 0, len(playlist.Items)+1)
	for i := range playlist.Items {
		if playlist.Items[i].VideoID == videoID {
			return nil, ErrVideoAlreadyInPlaylist
		}
		videoIDs = append(videoIDs, playlist.Items[i].VideoID)
	}
	videoIDs = append(videoIDs, videoID)

	if err := s.playlistRepo.ReplaceVideos(playlistID, videoIDs); err != nil {
		return nil, err
	}
	return s.GetByID(playlistID)
}

// RemoveVideo 把视频从播放列表移除（仅创建者本人）
// 不在列表中直接失败，不改动现有序列；其余视频保持原有相对顺序
func (s *PlaylistService) RemoveVideo(playlistID, videoID, currentUserID uuid.UUID) (*dto.PlaylistInfo, error) {
	playlist, err := s.ownedPlaylistWithItems(playlistID, currentUserID)
	if err != nil {
		return nil, err
	}

	found := false
	videoIDs := make([]uuid.UUID, 0, len(playlist.Items))
	for i := range playlist.Items {
		if playlist.Items[i].VideoID == videoID {
			found = true
			continue
		}
		videoIDs = append(videoIDs, playlist.Items[i].VideoID)
	}
	if !found {
		return nil, ErrVideoNotInPlaylist
	}

	if err := s.playlistRepo.ReplaceVideos(playlistID, videoIDs); err != nil {
		return nil, err
	}
	return s.GetByID(playlistID)
}

func (s *PlaylistService) ownedPlaylist(playlistID, currentUserID uuid.UUID) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByID(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if playlist.OwnerID != currentUserID {
		return nil, ErrPlaylistNoPermission
	}
	return playlist, nil
}

func (s *PlaylistService) ownedPlaylistWithItems(playlistID, currentUserID uuid.UUID) (*model.Playlist, error) {
	playlist, err := s.playlistRepo.GetByIDWithItems(playlistID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlaylistNotFound
		}
		return nil, err
	}
	if playlist.OwnerID != currentUserID {
		return nil, ErrPlaylistNoPermission
	}
	return playlist, nil
}

// toPlaylistInfo 将 model.Playlist 转换为 dto.PlaylistInfo
func toPlaylistInfo(playlist *model.Playlist, includeVideos bool) *dto.PlaylistInfo {
	info := &dto.PlaylistInfo{
		ID:          playlist.ID,
		Name:        playlist.Name,
		Description: playlist.Description,
		Owner:       toOwnerBrief(&playlist.Owner),
		Videos:      []dto.VideoInfo{},
		CreatedAt:   playlist.CreatedAt,
		UpdatedAt:   playlist.UpdatedAt,
	}
	if includeVideos {
		for i := range playlist.Items {
			info.Videos = append(info.Videos, *toVideoInfo(&playlist.Items[i].Video, true))
		}
	}
	info.VideoCount = len(info.Videos)
	return info
}
