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
	ErrTweetNotFound     = errors.New("tweet not found")
	ErrTweetNoPermission = errors.New("you do not have permission to modify this tweet")
)

type TweetService struct {
	tweetRepo *repository.TweetRepository
	userRepo  *repository.UserRepository
}

func NewTweetService(tweetRepo *repository.TweetRepository, userRepo *repository.UserRepository) *TweetService {
	return &TweetService{tweetRepo: tweetRepo, userRepo: userRepo}
}

// Create 发布推文
func (s *TweetService) Create(ownerID uuid.UUID, req *dto.TweetCreateRequest) (*dto.TweetInfo, error) {
	tweet := &model.Tweet{
		OwnerID: ownerID,
		Content: req.Content,
	}
	if err := s.tweetRepo.Create(tweet); err != nil {
		return nil, err
	}
	return toTweetInfo(tweet, false), nil
}

// Update 修改推文内容（仅作者本人）
func (s *TweetService) Update(tweetID, currentUserID uuid.UUID, req *dto.TweetUpdateRequest) (*dto.TweetInfo, error) {
	if err := s.checkOwnership(tweetID, currentUserID); err != nil {
		return nil, err
	}

	tweet, err := s.tweetRepo.Update(tweetID, req.Content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTweetNotFound
		}
		return nil, err
	}
	return toTweetInfo(tweet, false), nil
}

// Delete 删除推文（仅作者本人）
func (s *TweetService) Delete(tweetID, currentUserID uuid.UUID) error {
	if err := s.checkOwnership(tweetID, currentUserID); err != nil {
		return err
	}

	if err := s.tweetRepo.Delete(tweetID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return err
	}
	return nil
}

// ListByUser 获取某用户的推文列表（分页）
func (s *TweetService) ListByUser(userID uuid.UUID, page, limit int) (*dto.TweetListData, error) {
	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	skip := (page - 1) * limit
	tweets, total, err := s.tweetRepo.ListByOwner(userID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.TweetInfo, 0, len(tweets))
	for i := range tweets {
		items = append(items, *toTweetInfo(&tweets[i], true))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &dto.TweetListData{
		Tweets:     items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *TweetService) checkOwnership(tweetID, currentUserID uuid.UUID) error {
	tweet, err := s.tweetRepo.GetByID(tweetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTweetNotFound
		}
		return err
	}
	if tweet.OwnerID != currentUserID {
		return ErrTweetNoPermission
	}
	return nil
}

// toTweetInfo 将 model.Tweet 转换为 dto.TweetInfo
func toTweetInfo(tweet *model.Tweet, includeOwner bool) *dto.TweetInfo {
	info := &dto.TweetInfo{
		ID:        tweet.ID,
		OwnerID:   tweet.OwnerID,
		Content:   tweet.Content,
		CreatedAt: tweet.CreatedAt,
		UpdatedAt: tweet.UpdatedAt,
	}
	if includeOwner {
		info.Owner = toOwnerBrief(&tweet.Owner)
	}
	return info
}
