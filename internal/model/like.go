package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like 点赞模型
// 三个目标字段互斥，一行点赞只指向视频、评论、推文中的一个；
// 行存在即"已点赞"，唯一索引交给数据库查重，toggle 依赖 ON CONFLICT
type Like struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;comment:点赞记录ID" json:"id"`
	LikedBy   uuid.UUID  `gorm:"type:uuid;not null;index:idx_likes_liked_by;uniqueIndex:uq_like_video;uniqueIndex:uq_like_comment;uniqueIndex:uq_like_tweet;comment:点赞用户ID" json:"liked_by"`
	VideoID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_like_video,where:video_id IS NOT NULL;comment:被点赞视频ID" json:"video_id"`
	CommentID *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_like_comment,where:comment_id IS NOT NULL;comment:被点赞评论ID" json:"comment_id"`
	TweetID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:uq_like_tweet,where:tweet_id IS NOT NULL;comment:被点赞推文ID" json:"tweet_id"`
	CreatedAt time.Time  `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`
}

func (Like) TableName() string {
	return "likes"
}

func (l *Like) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
