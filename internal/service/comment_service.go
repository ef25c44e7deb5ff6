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
	ErrCommentNotFound     = errors.New("comment not found")
	ErrCommentNoPermission = errors.New("you do not have permission to modify this comment")
)

type CommentService struct {
	commentRepo *repository.CommentRepository
	videoRepo   *repository.VideoRepository
}

func NewCommentService(commentRepo *repository.CommentRepository, videoRepo *repository.VideoRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, videoRepo: videoRepo}
}

// Create 在视频下发表评论
func (s *CommentService) Create(ownerID, videoID uuid.UUID, req *dto.CommentCreateRequest) (*dto.CommentInfo, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	comment := &model.Comment{
		VideoID: videoID,
		OwnerID: ownerID,
		Content: req.Content,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}
	return toCommentInfo(comment, false), nil
}

// Update 修改评论内容（仅评论者本人）
func (s *CommentService) Update(commentID, currentUserID uuid.UUID, req *dto.CommentUpdateRequest) (*dto.CommentInfo, error) {
	if err := s.checkOwnership(commentID, currentUserID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.Update(commentID, req.Content)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return toCommentInfo(comment, false), nil
}

// Delete 删除评论（仅评论者本人）
func (s *CommentService) Delete(commentID, currentUserID uuid.UUID) error {
	if err := s.checkOwnership(commentID, currentUserID); err != nil {
		return err
	}

	if err := s.commentRepo.Delete(commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	return nil
}

// ListByVideo 获取视频的评论列表（含评论者公开信息，分页）
func (s *CommentService) ListByVideo(videoID uuid.UUID, page, limit int) (*dto.CommentListData, error) {
	if _, err := s.videoRepo.GetByID(videoID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	skip := (page - 1) * limit
	comments, total, err := s.commentRepo.ListByVideo(videoID, skip, limit)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, *toCommentInfo(&comments[i], true))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)

	return &dto.CommentListData{
		Comments:   items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *CommentService) checkOwnership(commentID, currentUserID uuid.UUID) error {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}
	if comment.OwnerID != currentUserID {
		return ErrCommentNoPermission
	}
	return nil
}

// toCommentInfo 将 model.Comment 转换为 dto.CommentInfo
func toCommentInfo(comment *model.Comment, includeOwner bool) *dto.CommentInfo {
	info := &dto.CommentInfo{
		ID:        comment.ID,
		OwnerID:   comment.OwnerID,
		VideoID:   comment.VideoID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if includeOwner {
		info.Owner = toOwnerBrief(&comment.Owner)
	}
	return info
}
