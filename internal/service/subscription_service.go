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
	ErrChannelNotFound  = errors.New("channel not found")
	ErrSelfSubscription = errors.New("you cannot subscribe to your own channel")
)

// 切换结果状态
const (
	SubStateSubscribed   = "subscribed"
	SubStateUnsubscribed = "unsubscribed"
)

type SubscriptionService struct {
	subRepo  *repository.SubscriptionRepository
	userRepo *repository.UserRepository
}

func NewSubscriptionService(subRepo *repository.SubscriptionRepository, userRepo *repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subRepo: subRepo, userRepo: userRepo}
}

// Toggle 切换对频道的订阅状态，不能订阅自己
func (s *SubscriptionService) Toggle(subscriberID, channelID uuid.UUID) (string, error) {
	if subscriberID == channelID {
		return "", ErrSelfSubscription
	}

	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrChannelNotFound
		}
		return "", err
	}

	sub := &model.Subscription{SubscriberID: subscriberID, ChannelID: channelID}
	inserted, err := s.subRepo.CreateIfAbsent(sub)
	if err != nil {
		return "", err
	}
	if inserted {
		return SubStateSubscribed, nil
	}

	if _, err := s.subRepo.Delete(subscriberID, channelID); err != nil {
		return "", err
	}
	return SubStateUnsubscribed, nil
}

// GetSubscribers 获取频道的订阅者列表（分页）
func (s *SubscriptionService) GetSubscribers(channelID uuid.UUID, page, limit int) (*dto.SubscriptionListData, error) {
	if _, err := s.userRepo.GetByID(channelID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChannelNotFound
		}
		return nil, err
	}

	skip := (page - 1) * limit
	subs, total, err := s.subRepo.ListSubscribers(channelID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubscriptionInfo, 0, len(subs))
	for i := range subs {
		items = append(items, dto.SubscriptionInfo{
			Subscriber:   toOwnerBrief(&subs[i].Subscriber),
			SubscribedAt: subs[i].CreatedAt,
		})
	}
	return buildSubscriptionListData(items, total, page, limit), nil
}

// GetSubscribedChannels 获取用户订阅的频道列表（分页）
func (s *SubscriptionService) GetSubscribedChannels(subscriberID uuid.UUID, page, limit int) (*dto.SubscriptionListData, error) {
	if _, err := s.userRepo.GetByID(subscriberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	skip := (page - 1) * limit
	subs, total, err := s.subRepo.ListChannels(subscriberID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.SubscriptionInfo, 0, len(subs))
	for i := range subs {
		items = append(items, dto.SubscriptionInfo{
			Channel:      toOwnerBrief(&subs[i].Channel),
			SubscribedAt: subs[i].CreatedAt,
		})
	}
	return buildSubscriptionListData(items, total, page, limit), nil
}

func buildSubscriptionListData(items []dto.SubscriptionInfo, total int64, page, limit int) *dto.SubscriptionListData {
	totalPages := (total + int64(limit) - 1) / int64(limit)
	return &dto.SubscriptionListData{
		Subscriptions: items,
		Total:         total,
		Page:          page,
		Limit:         limit,
		TotalPages:    totalPages,
	}
}
