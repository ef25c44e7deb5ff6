package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vidtube/internal/config"
	"vidtube/pkg/logger"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var producer *kafka.Writer

// ViewEvent 播放事件消息体
// API 进程在视频被访问时发出，worker 进程消费后累加播放量
type ViewEvent struct {
	VideoID  string `json:"video_id"`
	ViewedAt int64  `json:"viewed_at"`
}

// InitProducer 初始化 Kafka 生产者
func InitProducer(cfg *config.KafkaConfig) error {
	producer = &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("Kafka producer initialized",
		zap.Strings("brokers", cfg.Brokers),
	)

	return nil
}

// SendViewEvent 发送播放事件到 Kafka
func SendViewEvent(ctx context.Context, topic string, videoID uuid.UUID) error {
	event := ViewEvent{
		VideoID:  videoID.String(),
		ViewedAt: time.Now().Unix(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal view event: %w", err)
	}

	msg := kafka.Message{
		Topic: topic,
		Key:   []byte("video-" + event.VideoID),
		Value: payload,
	}

	if err := producer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to send view event: %w", err)
	}

	return nil
}

// CloseProducer 关闭生产者
func CloseProducer() error {
	if producer == nil {
		return nil
	}
	logger.Info("Kafka producer closed")
	return producer.Close()
}

// ViewPublisher 把生产者包装成服务层可注入的接口实现
type ViewPublisher struct {
	Topic string
}

// PublishView 发布一条播放事件
func (p *ViewPublisher) PublishView(ctx context.Context, videoID uuid.UUID) error {
	return SendViewEvent(ctx, p.Topic, videoID)
}
