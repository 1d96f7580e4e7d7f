package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"inkwell-cms/logger"
	"inkwell-cms/models"
	"inkwell-cms/repositories"
)

const (
	InitialChangeDescription = "Initial version"
	wordsPerMinute           = 200
)

type PostService interface {
	CreatePost(ctx context.Context, req models.CreatePostRequest, userID uint) (*models.Post, error)
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, id uint, req models.UpdatePostRequest, userID uint) (*models.Post, error)
	DeletePost(ctx context.Context, id uint, userID uint) error
	RestorePost(ctx context.Context, postID, versionID uint, userID uint) (*models.RestorePostResponse, error)
}

type postService struct {
	postRepo repositories.PostRepository
	tagRepo  repositories.TagRepository
	recorder VersionRecorder
	restorer VersionRestorer
	now      func() time.Time
	log      zerolog.Logger
}

// NewPostService wires the editing surface to version history. A nil
// recorder or restorer disables history.
func NewPostService(postRepo repositories.PostRepository, tagRepo repositories.TagRepository, recorder VersionRecorder, restorer VersionRestorer) PostService {
	if recorder == nil {
		recorder = NoopVersionRecorder{}
	}
	if restorer == nil {
		restorer = noopVersionRestorer{}
	}
	return &postService{
		postRepo: postRepo,
		tagRepo:  tagRepo,
		recorder: recorder,
		restorer: restorer,
		now:      time.Now,
		log:      logger.NewLogger("post_service"),
	}
}

func (s *postService) CreatePost(ctx context.Context, req models.CreatePostRequest, userID uint) (*models.Post, error) {
	status := req.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	post := &models.Post{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Status:   status,
		Tags:     normalizeTags(req.Tags),
		ReadTime: CalculateReadTime(req.Content),
	}
	if status == models.PostStatusPublished {
		now := s.now()
		post.PublishedAt = &now
	}

	if err := s.ensureTags(ctx, post.Tags); err != nil {
		return nil, err
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	if _, err := s.recorder.CreateVersion(ctx, post.ID, post.Snapshot(), InitialChangeDescription); err != nil {
		return nil, fmt.Errorf("record initial version: %w", err)
	}

	s.updateTagUsageCounts(ctx)

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *postService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

func (s *postService) ListPosts(ctx context.Context, params models.PostListParams) ([]models.Post, int64, error) {
	return s.postRepo.GetList(ctx, params)
}

func (s *postService) UpdatePost(ctx context.Context, id uint, req models.UpdatePostRequest, userID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeEdit(ctx, post, userID); err != nil {
		return nil, err
	}

	before := post.Snapshot()

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Status != nil {
		post.Status = *req.Status
	}
	if req.Tags != nil {
		post.Tags = normalizeTags(req.Tags)
	}

	after := post.Snapshot()
	if !s.recorder.HasSignificantChange(before, after) {
		return post, nil
	}

	if err := s.ensureTags(ctx, post.Tags); err != nil {
		return nil, err
	}
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}

	// The post is already committed here, so a history failure is only logged.
	if _, err := s.recorder.CreateVersion(ctx, post.ID, after, s.recorder.DescribeChange(before, after)); err != nil {
		s.log.Warn().Err(err).Uint("post_id", post.ID).Msg("failed to record version")
	}

	s.updateTagUsageCounts(ctx)

	return s.postRepo.GetByID(ctx, post.ID)
}

func (s *postService) DeletePost(ctx context.Context, id uint, userID uint) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeEdit(ctx, post, userID); err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.updateTagUsageCounts(ctx)
	return nil
}

// RestorePost restores versionID through the version engine and applies the
// returned fields to the stored post.
func (s *postService) RestorePost(ctx context.Context, postID, versionID uint, userID uint) (*models.RestorePostResponse, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := authorizeEdit(ctx, post, userID); err != nil {
		return nil, err
	}

	result, err := s.restorer.RestoreVersion(ctx, postID, versionID)
	if err != nil {
		return nil, err
	}

	post.Apply(result.Fields)
	if err := s.ensureTags(ctx, post.Tags); err != nil {
		return nil, err
	}
	if err := s.save(ctx, post); err != nil {
		s.log.Error().Err(err).
			Uint("post_id", postID).
			Uint("restoration_version_id", result.RestorationVersion.ID).
			Msg("restore recorded but post not saved")
		return nil, err
	}

	s.updateTagUsageCounts(ctx)

	updated, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &models.RestorePostResponse{
		Post:               updated,
		RestorationVersion: result.RestorationVersion,
	}, nil
}

func (s *postService) save(ctx context.Context, post *models.Post) error {
	post.ReadTime = CalculateReadTime(post.Content)
	if post.Status == models.PostStatusPublished && post.PublishedAt == nil {
		now := s.now()
		post.PublishedAt = &now
	}
	return s.postRepo.Update(ctx, post)
}

func authorizeEdit(ctx context.Context, post *models.Post, userID uint) error {
	if post.AuthorID == userID {
		return nil
	}
	if actor, ok := ActorFromContext(ctx); ok && actor.Role.CanManageOthers() {
		return nil
	}
	return models.ErrorForbidden{Message: "only the author or an editor may modify this post"}
}

// CalculateReadTime returns whole minutes at 200 words per minute, at least 1.
func CalculateReadTime(content string) int {
	minutes := int(math.Ceil(float64(CountWords(content)) / wordsPerMinute))
	if minutes < 1 {
		return 1
	}
	return minutes
}

// normalizeTags trims names and drops blanks and duplicates, keeping the
// user's order.
func normalizeTags(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func (s *postService) ensureTags(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	existing, err := s.tagRepo.GetByNames(ctx, names)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, t := range existing {
		known[t.Name] = true
	}

	for _, name := range names {
		if known[name] {
			continue
		}
		if err := s.tagRepo.Create(ctx, &models.Tag{Name: name}); err != nil {
			return err
		}
	}
	return nil
}

// updateTagUsageCounts recomputes usage and trending scores. Failures are
// logged; they never fail the post write that triggered them.
func (s *postService) updateTagUsageCounts(ctx context.Context) {
	counts, err := s.postRepo.CountPublishedByTag(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to count tag usage")
		return
	}

	allTags, err := s.tagRepo.GetAll(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to load tags")
		return
	}

	now := s.now()
	for i := range allTags {
		allTags[i].UsageCount = counts[allTags[i].Name]
		allTags[i].TrendingScore = TrendingScore(allTags[i].UsageCount, allTags[i].CreatedAt, now)
	}

	if err := s.tagRepo.BulkUpdate(ctx, allTags); err != nil {
		s.log.Warn().Err(err).Msg("failed to update tag usage")
	}
}

// TrendingScore weights usage down logarithmically with tag age in days.
// Tags younger than a day score their raw usage.
func TrendingScore(usage int, createdAt, now time.Time) float64 {
	days := now.Sub(createdAt).Hours() / 24
	if days > 1 {
		return float64(usage) / math.Log(days+1)
	}
	return float64(usage)
}
