package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"inkwell-cms/logger"
	"inkwell-cms/models"
	"inkwell-cms/repositories"
)

const anonymousCommenter = "Anonymous"

type CommentService interface {
	ListComments(ctx context.Context, postID uint, params models.CommentListParams) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID uint, req models.CreateCommentRequest, userID uint) (*models.Comment, error)
	ApproveComment(ctx context.Context, id uint) (*models.Comment, error)
	RejectComment(ctx context.Context, id uint) (*models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	postRepo    repositories.PostRepository
	log         zerolog.Logger
}

func NewCommentService(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		log:         logger.NewLogger("comment_service"),
	}
}

func (s *commentService) ListComments(ctx context.Context, postID uint, params models.CommentListParams) ([]models.Comment, error) {
	if params.Status != "" && !params.Status.Valid() {
		return nil, models.ErrorValidation{Message: "status must be one of pending, approved, spam"}
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, params.Status)
}

// CreateComment stores a pending comment attributed to the request's actor.
func (s *commentService) CreateComment(ctx context.Context, postID uint, req models.CreateCommentRequest, userID uint) (*models.Comment, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.ErrorValidation{Message: "comment must not be blank"}
	}
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	author := anonymousCommenter
	if actor, ok := ActorFromContext(ctx); ok && actor.Username != "" {
		author = actor.Username
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  userID,
		Author:  author,
		Content: content,
		Status:  models.CommentStatusPending,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) ApproveComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.moderate(ctx, id, models.CommentStatusApproved)
}

// RejectComment marks the comment as spam; it stays stored.
func (s *commentService) RejectComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.moderate(ctx, id, models.CommentStatusSpam)
}

func (s *commentService) DeleteComment(ctx context.Context, id uint) error {
	if err := authorizeModeration(ctx); err != nil {
		return err
	}
	if err := s.commentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Uint("comment_id", id).Msg("comment deleted")
	return nil
}

func (s *commentService) moderate(ctx context.Context, id uint, status models.CommentStatus) (*models.Comment, error) {
	if err := authorizeModeration(ctx); err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.log.Info().Uint("comment_id", id).Str("status", string(status)).Msg("comment moderated")
	return s.commentRepo.GetByID(ctx, id)
}

func authorizeModeration(ctx context.Context) error {
	if actor, ok := ActorFromContext(ctx); ok && actor.Role.CanManageOthers() {
		return nil
	}
	return models.ErrorForbidden{Message: "only an editor may moderate comments"}
}
