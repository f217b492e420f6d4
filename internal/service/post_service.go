package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"whiterabbit/internal/auth"
	"whiterabbit/internal/cache"
	apperrors "whiterabbit/internal/errors"
	"whiterabbit/internal/model"
	"whiterabbit/internal/policy"
	"whiterabbit/internal/repository"
)

const (
	reasonEditPost   = "Seul l'auteur de cet article peut le modifier."
	reasonDeletePost = "Seul l'auteur de cet article peut le supprimer."
)

// CreatePostInput is the data of a new post.
type CreatePostInput struct {
	Title   string
	Text    string
	Picture *string
	Links   *string
}

// UpdatePostInput carries a partial update; nil fields are left unchanged.
type UpdatePostInput struct {
	Title   *string
	Text    *string
	Picture *string
	Links   *string
}

// PostService exposes blog post operations.
type PostService interface {
	List(ctx context.Context) ([]model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	Create(ctx context.Context, actor *auth.Actor, input CreatePostInput) (*model.Post, error)
	Update(ctx context.Context, actor *auth.Actor, id uint, input UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, actor *auth.Actor, id uint) error
}

type postService struct {
	repo     repository.PostRepository
	cache    *cache.Client
	cacheTTL time.Duration
	guard    guard
	logger   *zerolog.Logger
	now      func() time.Time
}

// NewPostService builds a PostService with repository and read cache.
func NewPostService(repo repository.PostRepository, cache *cache.Client, cacheTTL time.Duration, policies *policy.Registry, logger *zerolog.Logger) PostService {
	return &postService{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		guard:    guard{policies: policies, logger: logger},
		logger:   logger,
		now:      time.Now,
	}
}

func postCacheKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

func postNotFound(id uint) string {
	return fmt.Sprintf("L'article numéro %d n'existe pas", id)
}

func (s *postService) List(ctx context.Context) ([]model.Post, error) {
	posts, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// Get serves from the cache when possible.
func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	var cached model.Post
	if s.cache.GetJSON(ctx, postCacheKey(id), &cached) {
		return &cached, nil
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrPostNotFound, postNotFound(id))
	}

	_ = s.cache.SetJSON(ctx, postCacheKey(id), post, s.cacheTTL)
	return post, nil
}

func (s *postService) Create(ctx context.Context, actor *auth.Actor, input CreatePostInput) (*model.Post, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	ownerID := actor.ID
	post := &model.Post{
		Title:   input.Title,
		Text:    input.Text,
		Picture: input.Picture,
		Links:   input.Links,
		UserID:  &ownerID,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.logger.Info().Uint("post_id", post.ID).Uint("user_id", ownerID).Msg("post created")
	return post, nil
}

// Update authorizes against the stored post, never a cached copy.
func (s *postService) Update(ctx context.Context, actor *auth.Actor, id uint, input UpdatePostInput) (*model.Post, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrPostNotFound, postNotFound(id))
	}
	if err := s.guard.authorize(policy.ActionEdit, post, actor, reasonEditPost); err != nil {
		return nil, err
	}

	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Text != nil {
		post.Text = *input.Text
	}
	if input.Picture != nil {
		post.Picture = input.Picture
	}
	if input.Links != nil {
		post.Links = input.Links
	}
	now := s.now()
	post.UpdatedAt = &now

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	_ = s.cache.Delete(ctx, postCacheKey(id))
	return post, nil
}

func (s *postService) Delete(ctx context.Context, actor *auth.Actor, id uint) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, apperrors.ErrPostNotFound, postNotFound(id))
	}
	if err := s.guard.authorize(policy.ActionDelete, post, actor, reasonDeletePost); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, post); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	_ = s.cache.Delete(ctx, postCacheKey(id))
	s.logger.Info().Uint("post_id", id).Uint("actor_id", actor.ID).Msg("post deleted")
	return nil
}
