package asset

import (
	"context"
	"fmt"
	"mime"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"vidtube/internal/config"
	"vidtube/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// UploadResult 上传成功后返回的素材信息
type UploadResult struct {
	URL      string
	Duration float64 // 秒，仅视频有值
	Size     int64
}

// Gateway 素材存储网关
// 负责把本地暂存文件送入对象存储并换回公开 URL，以及按 URL 删除远端素材。
// 配置在启动时显式注入，不读取全局状态
type Gateway struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// NewGateway 创建素材网关
func NewGateway(client *minio.Client, cfg *config.MinIOConfig) *Gateway {
	return &Gateway{
		client:   client,
		endpoint: cfg.Endpoint,
		bucket:   cfg.Bucket,
		useSSL:   cfg.UseSSL,
	}
}

// Upload 上传本地暂存文件，返回公开 URL 与元信息
// 无论上传成败，本地暂存文件都会被清理
func (g *Gateway) Upload(ctx context.Context, localPath string) (*UploadResult, error) {
	if localPath == "" {
		return nil, fmt.Errorf("local file path is empty")
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to remove staged upload file",
				zap.String("path", localPath), zap.Error(err))
		}
	}()

	ext := filepath.Ext(localPath)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	// 视频在上传前本地探测时长，对象存储不提供该元数据
	var duration float64
	if strings.HasPrefix(contentType, "video/") {
		d, err := ProbeDuration(localPath)
		if err != nil {
			logger.Warn("Failed to probe media duration",
				zap.String("path", localPath), zap.Error(err))
		} else {
			duration = d
		}
	}

	objectName := uuid.NewString() + ext
	info, err := g.client.FPutObject(ctx, g.bucket, objectName, localPath, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", localPath, err)
	}

	return &UploadResult{
		URL:      g.publicURL(objectName),
		Duration: duration,
		Size:     info.Size,
	}, nil
}

// Delete 按存储 URL 删除远端素材
func (g *Gateway) Delete(ctx context.Context, fileURL string) error {
	objectName, err := g.objectFromURL(fileURL)
	if err != nil {
		return err
	}
	if err := g.client.RemoveObject(ctx, g.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", objectName, err)
	}
	return nil
}

// publicURL 生成公开访问 URL（bucket 为公开读）
func (g *Gateway) publicURL(objectName string) string {
	scheme := "http"
	if g.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, g.endpoint, g.bucket, objectName)
}

// objectFromURL 从存储 URL 还原对象名
// 仅接受指向本网关 bucket 的 URL，防止误删别处的对象
func (g *Gateway) objectFromURL(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("invalid asset url %q: %w", fileURL, err)
	}

	path := strings.TrimPrefix(u.Path, "/")
	prefix := g.bucket + "/"
	if !strings.HasPrefix(path, prefix) {
		return "", fmt.Errorf("asset url %q does not belong to bucket %s", fileURL, g.bucket)
	}

	objectName := strings.TrimPrefix(path, prefix)
	if objectName == "" {
		return "", fmt.Errorf("asset url %q has no object name", fileURL)
	}
	return objectName, nil
}

// ProbeDuration 用 ffprobe 读取媒体文件时长（秒）
func ProbeDuration(path string) (float64, error) {
	out, err := exec.Command(
		"ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	).Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	return duration, nil
}
