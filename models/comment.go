package models

import (
	"time"

	"gorm.io/gorm"
)

type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusSpam     CommentStatus = "spam"
)

func (s CommentStatus) Valid() bool {
	switch s {
	case CommentStatusPending, CommentStatusApproved, CommentStatusSpam:
		return true
	}
	return false
}

// Comment is a reader comment on a post. New comments wait in pending until
// a moderator approves them or marks them as spam.
type Comment struct {
	ID        uint           `json:"id" gorm:"primarykey"`
	PostID    uint           `json:"post_id" gorm:"not null;index"`
	UserID    uint           `json:"user_id" gorm:"index"`
	Author    string         `json:"author" gorm:"not null"`
	Content   string         `json:"content" gorm:"type:text;not null"`
	Status    CommentStatus  `json:"status" gorm:"default:'pending';index"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
