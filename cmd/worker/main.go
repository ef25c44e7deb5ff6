package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"vidtube/internal/config"
	"vidtube/internal/infra/database"
	infraES "vidtube/internal/infra/elasticsearch"
	infraKafka "vidtube/internal/infra/kafka"
	"vidtube/internal/repository"
	"vidtube/internal/service"
	"vidtube/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 播放事件消费进程：消费 video_viewed 累加播放量，并尽力刷新搜索索引
func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	if err := database.Init(&cfg.Database, false); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := infraES.Init(&cfg.Elasticsearch); err != nil {
		logger.Warn("Elasticsearch init failed, view counts will not be synced to the index", zap.Error(err))
	} else {
		defer infraES.Close()
	}

	videoRepo := repository.NewVideoRepository(database.Get())
	searchService := service.NewSearchService(videoRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听系统信号，优雅退出
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	topic := cfg.Kafka.Topics["video_viewed"]
	groupID := "vidtube-view-worker"

	handler := func(event *infraKafka.ViewEvent) error {
		videoID, err := uuid.Parse(event.VideoID)
		if err != nil {
			logger.Warn("Skipping view event with malformed video id",
				zap.String("video_id", event.VideoID))
			return nil
		}

		if err := videoRepo.IncrementViews(videoID, 1); err != nil {
			return fmt.Errorf("increment views for %s: %w", videoID, err)
		}

		if err := searchService.SyncVideo(videoID); err != nil {
			logger.Warn("Failed to refresh video in search index",
				zap.String("video_id", videoID.String()), zap.Error(err))
		}
		return nil
	}

	infraKafka.StartViewEventConsumer(ctx, cfg.Kafka.Brokers, topic, groupID, handler)
}
