package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"inkwell-cms/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetList(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	CountPublishedByTag(ctx context.Context) (map[string]int, error)
}

var postSortColumns = map[string]string{
	"created_at":   "posts.created_at",
	"updated_at":   "posts.updated_at",
	"published_at": "posts.published_at",
	"title":        "posts.title",
	"views":        "posts.views",
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrorNotFound{Resource: "post", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetList(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error) {
	var posts []models.Post
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Post{})

	if params.Status != "" {
		query = query.Where("posts.status = ?", params.Status)
	}

	if params.AuthorID > 0 {
		query = query.Where("posts.author_id = ?", params.AuthorID)
	}

	// Tags are a JSON array column; match the quoted element.
	if params.Tag != "" {
		query = query.Where("posts.tags LIKE ?", "%"+strconv.Quote(params.Tag)+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy, ok := postSortColumns[params.SortBy]
	if !ok {
		sortBy = postSortColumns["created_at"]
	}
	sortOrder := "desc"
	if params.SortOrder == "asc" {
		sortOrder = "asc"
	}

	page, limit := params.Page, params.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	err := query.Preload("Author").
		Order(fmt.Sprintf("%s %s", sortBy, sortOrder)).
		Order("posts.id " + sortOrder).
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error

	return posts, total, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Author").Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrorNotFound{Resource: "post", ID: id}
	}
	return nil
}

func (r *postRepository) CountPublishedByTag(ctx context.Context) (map[string]int, error) {
	var posts []models.Post
	err := r.db.WithContext(ctx).
		Select("id", "tags").
		Where("status = ?", models.PostStatusPublished).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range posts {
		seen := make(map[string]bool, len(p.Tags))
		for _, name := range p.Tags {
			if seen[name] {
				continue
			}
			seen[name] = true
			counts[name]++
		}
	}
	return counts, nil
}
