package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"inkwell-cms/models"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, status models.CommentStatus) ([]models.Comment, error)
	UpdateStatus(ctx context.Context, id uint, status models.CommentStatus) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).First(&comment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Resource: "comment", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost returns newest first. An empty status returns every status.
func (r *commentRepository) ListByPost(ctx context.Context, postID uint, status models.CommentStatus) ([]models.Comment, error) {
	comments := []models.Comment{}
	query := r.db.WithContext(ctx).Where("post_id = ?", postID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at desc").Order("id desc").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) UpdateStatus(ctx context.Context, id uint, status models.CommentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrorNotFound{Resource: "comment", ID: id}
	}
	return nil
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Comment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrorNotFound{Resource: "comment", ID: id}
	}
	return nil
}
