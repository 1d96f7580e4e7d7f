package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"inkwell-cms/models"
)

type PostRepositoryTestSuite struct {
	suite.Suite
	db     *gorm.DB
	repo   PostRepository
	author models.User
}

func (s *PostRepositoryTestSuite) SetupTest() {
	s.db = newTestDB(s.T())
	s.repo = NewPostRepository(s.db)

	s.author = models.User{Username: "writer", Email: "writer@example.com", Password: "x", Role: models.RoleWriter}
	s.Require().NoError(s.db.Create(&s.author).Error)
}

func (s *PostRepositoryTestSuite) createPost(title string, status models.PostStatus, tags ...string) *models.Post {
	post := &models.Post{
		AuthorID: s.author.ID,
		Title:    title,
		Content:  "body of " + title,
		Status:   status,
		Tags:     tags,
	}
	s.Require().NoError(s.repo.Create(context.Background(), post))
	return post
}

func (s *PostRepositoryTestSuite) TestGetByIDPreloadsAuthor() {
	post := s.createPost("hello", models.PostStatusDraft, "go", "web")

	got, err := s.repo.GetByID(context.Background(), post.ID)
	s.Require().NoError(err)
	s.Equal("hello", got.Title)
	s.Equal([]string{"go", "web"}, got.Tags)
	s.Require().NotNil(got.Author)
	s.Equal("writer", got.Author.Username)
}

func (s *PostRepositoryTestSuite) TestGetByIDMissing() {
	_, err := s.repo.GetByID(context.Background(), 404)
	var notFound models.ErrorNotFound
	s.ErrorAs(err, &notFound)
}

func (s *PostRepositoryTestSuite) TestGetListFilters() {
	s.createPost("one", models.PostStatusPublished, "go")
	s.createPost("two", models.PostStatusDraft, "go", "sql")
	s.createPost("three", models.PostStatusPublished, "sql")

	ctx := context.Background()

	posts, total, err := s.repo.GetList(ctx, models.PostListParams{Status: "published", Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Len(posts, 2)

	posts, total, err = s.repo.GetList(ctx, models.PostListParams{Tag: "go", Page: 1, Limit: 10, SortBy: "title", SortOrder: "asc"})
	s.Require().NoError(err)
	s.Equal(int64(2), total)
	s.Require().Len(posts, 2)
	s.Equal("one", posts[0].Title)
	s.Equal("two", posts[1].Title)

	posts, total, err = s.repo.GetList(ctx, models.PostListParams{Page: 2, Limit: 2})
	s.Require().NoError(err)
	s.Equal(int64(3), total)
	s.Len(posts, 1)
}

func (s *PostRepositoryTestSuite) TestGetListIgnoresUnknownSortColumn() {
	s.createPost("one", models.PostStatusDraft)

	posts, _, err := s.repo.GetList(context.Background(), models.PostListParams{SortBy: "title; DROP TABLE posts", Page: 1, Limit: 10})
	s.Require().NoError(err)
	s.Len(posts, 1)
}

func (s *PostRepositoryTestSuite) TestUpdateAndDelete() {
	ctx := context.Background()
	post := s.createPost("draft", models.PostStatusDraft)

	post.Title = "renamed"
	post.Tags = []string{"new"}
	s.Require().NoError(s.repo.Update(ctx, post))

	got, err := s.repo.GetByID(ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("renamed", got.Title)
	s.Equal([]string{"new"}, got.Tags)

	s.Require().NoError(s.repo.Delete(ctx, post.ID))
	_, err = s.repo.GetByID(ctx, post.ID)
	s.Error(err)

	var notFound models.ErrorNotFound
	s.ErrorAs(s.repo.Delete(ctx, post.ID), &notFound)
}

func (s *PostRepositoryTestSuite) TestCountPublishedByTag() {
	s.createPost("a", models.PostStatusPublished, "go", "go", "sql")
	s.createPost("b", models.PostStatusPublished, "go")
	s.createPost("c", models.PostStatusDraft, "go", "rust")

	counts, err := s.repo.CountPublishedByTag(context.Background())
	s.Require().NoError(err)
	s.Equal(map[string]int{"go": 2, "sql": 1}, counts)
}

func TestPostRepositorySuite(t *testing.T) {
	suite.Run(t, new(PostRepositoryTestSuite))
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user := &models.User{Username: "ed", Email: "ed@example.com", Password: "hash", Role: models.RoleEditor}
	require.NoError(t, repo.Create(ctx, user))

	byEmail, err := repo.GetByEmail(ctx, "ed@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = repo.GetByID(ctx, user.ID+1)
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)

	at := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	require.NoError(t, repo.TouchLogin(ctx, user.ID, at))
	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID.LastLoginAt)
	assert.True(t, at.Equal(*byID.LastLoginAt))
}

func TestTagRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewTagRepository(newTestDB(t))

	tag := &models.Tag{Name: "Go Generics"}
	require.NoError(t, repo.Create(ctx, tag))
	assert.Equal(t, "go-generics", tag.Slug)

	byName, err := repo.GetByName(ctx, "Go Generics")
	require.NoError(t, err)
	assert.Equal(t, "go-generics", byName.Slug)

	byName.Name = "Go Generics 2"
	byName.UsageCount = 4
	require.NoError(t, repo.BulkUpdate(ctx, []models.Tag{*byName}))

	got, err := repo.GetByID(ctx, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, "go-generics-2", got.Slug)
	assert.Equal(t, 4, got.UsageCount)

	_, err = repo.GetByName(ctx, "missing")
	var notFound models.ErrorNotFound
	assert.ErrorAs(t, err, &notFound)
}
