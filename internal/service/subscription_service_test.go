package service

import (
	"testing"

	"vidtube/internal/model"
	"vidtube/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSubscriptionService(db *gorm.DB) *SubscriptionService {
	return NewSubscriptionService(
		repository.NewSubscriptionRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestToggleSubscription(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubscriptionService(db)

	channel := createTestUser(t, db, "channel")
	fan := createTestUser(t, db, "fan")

	state, err := svc.Toggle(fan.ID, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, SubStateSubscribed, state)

	var count int64
	require.NoError(t, db.Model(&model.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 再次切换回到未订阅
	state, err = svc.Toggle(fan.ID, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, SubStateUnsubscribed, state)

	require.NoError(t, db.Model(&model.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestToggleSubscriptionSelf(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubscriptionService(db)

	user := createTestUser(t, db, "narcissist")

	_, err := svc.Toggle(user.ID, user.ID)
	assert.ErrorIs(t, err, ErrSelfSubscription)

	var count int64
	require.NoError(t, db.Model(&model.Subscription{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSubscriptionLists(t *testing.T) {
	db := setupTestDB(t)
	svc := newSubscriptionService(db)

	channel := createTestUser(t, db, "channel")
	fan1 := createTestUser(t, db, "fan1")
	fan2 := createTestUser(t, db, "fan2")

	_, err := svc.Toggle(fan1.ID, channel.ID)
	require.NoError(t, err)
	_, err = svc.Toggle(fan2.ID, channel.ID)
	require.NoError(t, err)

	subs, err := svc.GetSubscribers(channel.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), subs.Total)
	require.Len(t, subs.Subscriptions, 2)
	assert.NotNil(t, subs.Subscriptions[0].Subscriber)
	assert.Nil(t, subs.Subscriptions[0].Channel)

	channels, err := svc.GetSubscribedChannels(fan1.ID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), channels.Total)
	require.Len(t, channels.Subscriptions, 1)
	require.NotNil(t, channels.Subscriptions[0].Channel)
	assert.Equal(t, channel.Username, channels.Subscriptions[0].Channel.Username)
}
