package handler

import (
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"

	"vidtube/internal/api/response"
	"vidtube/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parsePagination 解析分页参数，page 默认 1，limit 默认 10 且上限 100
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// parseUUIDParam 解析路径中的 UUID 参数，格式非法时直接写出 400 响应
func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// stageUploadedFile 把 multipart 文件暂存到本地上传目录，返回暂存路径
// 上传目录按需创建，文件名用随机 UUID 避免冲突
func stageUploadedFile(c *gin.Context, file *multipart.FileHeader) (string, error) {
	dir := config.GetUpload().TempDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	dst := filepath.Join(dir, uuid.NewString()+filepath.Ext(file.Filename))
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return dst, nil
}
