package service

import (
	"errors"

	"vidtube/internal/api/dto"
	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 切换结果状态，接口消息按此返回
const (
	LikeStateLiked   = "liked"
	LikeStateUnliked = "unliked"
)

type LikeService struct {
	likeRepo    *repository.LikeRepository
	videoRepo   *repository.VideoRepository
	commentRepo *repository.CommentRepository
	tweetRepo   *repository.TweetRepository
}

func NewLikeService(likeRepo *repository.LikeRepository, videoRepo *repository.VideoRepository, commentRepo *repository.CommentRepository, tweetRepo *repository.TweetRepository) *LikeService {
	return &LikeService{
		likeRepo:    likeRepo,
		videoRepo:   videoRepo,
		commentRepo: commentRepo,
		tweetRepo:   tweetRepo,
	}
}

// ToggleVideo 切换对视频的点赞状态
// 写入依赖唯一索引原子判定：插入成功即"点赞"，未插入则删除现有行即"取消"
func (s *LikeService) ToggleVideo(userID, videoID uuid.UUID) (string, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrVideoNotFound
		}
		return "", err
	}

	like := &model.Like{LikedBy: userID, VideoID: &videoID}
	inserted, err := s.likeRepo.CreateIfAbsent(like)
	if err != nil {
		return "", err
	}
	if inserted {
		return LikeStateLiked, nil
	}

	if _, err := s.likeRepo.DeleteByVideo(userID, videoID); err != nil {
		return "", err
	}
	return LikeStateUnliked, nil
}

// ToggleComment 切换对评论的点赞状态
func (s *LikeService) ToggleComment(userID, commentID uuid.UUID) (string, error) {
	if _, err := s.commentRepo.GetByID(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrCommentNotFound
		}
		return "", err
	}

	like := &model.Like{LikedBy: userID, CommentID: &commentID}
	inserted, err := s.likeRepo.CreateIfAbsent(like)
	if err != nil {
		return "", err
	}
	if inserted {
		return LikeStateLiked, nil
	}

	if _, err := s.likeRepo.DeleteByComment(userID, commentID); err != nil {
		return "", err
	}
	return LikeStateUnliked, nil
}

// ToggleTweet 切换对推文的点赞状态
func (s *LikeService) ToggleTweet(userID, tweetID uuid.UUID) (string, error) {
	if _, err := s.tweetRepo.GetByID(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrTweetNotFound
		}
		return "", err
	}

	like := &model.Like{LikedBy: userID, TweetID: &tweetID}
	inserted, err := s.likeRepo.CreateIfAbsent(like)
	if err != nil {
		return "", err
	}
	if inserted {
		return LikeStateLiked, nil
	}

	if _, err := s.likeRepo.DeleteByTweet(userID, tweetID); err != nil {
		return "", err
	}
	return LikeStateUnliked, nil
}

// GetLikedVideos 获取用户点赞过的视频（按点赞时间倒序，分页）
// 计数与列表都只覆盖仍然存在的视频
func (s *LikeService) GetLikedVideos(userID uuid.UUID, page, limit int) (*dto.VideoListData, error) {
	skip := (page - 1) * limit
	likes, total, err := s.likeRepo.ListLikedVideos(userID, skip, limit)
	if err != nil {
		return nil, err
	}

	videoIDs := make([]uuid.UUID, 0, len(likes))
	for i := range likes {
		if likes[i].VideoID != nil {
			videoIDs = append(videoIDs, *likes[i].VideoID)
		}
	}

	videos, err := s.videoRepo.GetByIDs(videoIDs)
	if err != nil {
		return nil, err
	}

	videoMap := make(map[uuid.UUID]*model.Video, len(videos))
	for i := range videos {
		videoMap[videos[i].ID] = &videos[i]
	}

	ordered := make([]model.Video, 0, len(videoIDs))
	for _, id := range videoIDs {
		if v, ok := videoMap[id]; ok {
			ordered = append(ordered, *v)
		}
	}

	return buildVideoListData(ordered, total, page, limit, true), nil
}
