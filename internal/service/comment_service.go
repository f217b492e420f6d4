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
	reasonEditComment   = "Seul l'auteur de ce commentaire peut le modifier."
	reasonDeleteComment = "Seul l'auteur de ce commentaire peut le supprimer."

	commentNotFoundMessage = "Le commentaire demandé n'existe pas"
)

// CreateCommentInput is the data of a new comment.
type CreateCommentInput struct {
	Content string
	PostID  uint
}

// UpdateCommentInput carries a partial update; nil fields are left unchanged.
type UpdateCommentInput struct {
	Content *string
}

// CommentService exposes comment operations.
type CommentService interface {
	List(ctx context.Context) ([]model.Comment, error)
	Get(ctx context.Context, id uint) (*model.Comment, error)
	Create(ctx context.Context, actor *auth.Actor, input CreateCommentInput) (*model.Comment, error)
	Update(ctx context.Context, actor *auth.Actor, id uint, input UpdateCommentInput) (*model.Comment, error)
	Delete(ctx context.Context, actor *auth.Actor, id uint) error
}

type commentService struct {
	repo   repository.CommentRepository
	posts  repository.PostRepository
	cache  *cache.Client
	guard  guard
	logger *zerolog.Logger
	now    func() time.Time
}

// NewCommentService builds a CommentService. Comment changes evict the
// cached parent post.
func NewCommentService(repo repository.CommentRepository, posts repository.PostRepository, cache *cache.Client, policies *policy.Registry, logger *zerolog.Logger) CommentService {
	return &commentService{
		repo:   repo,
		posts:  posts,
		cache:  cache,
		guard:  guard{policies: policies, logger: logger},
		logger: logger,
		now:    time.Now,
	}
}

func (s *commentService) List(ctx context.Context) ([]model.Comment, error) {
	comments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (s *commentService) Get(ctx context.Context, id uint) (*model.Comment, error) {
	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCommentNotFound, commentNotFoundMessage)
	}
	return comment, nil
}

func (s *commentService) Create(ctx context.Context, actor *auth.Actor, input CreateCommentInput) (*model.Comment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	post, err := s.posts.FindByID(ctx, input.PostID)
	if err != nil {
		return nil, notFound(err, apperrors.ErrPostNotFound, postNotFound(input.PostID))
	}

	ownerID := actor.ID
	postID := post.ID
	comment := &model.Comment{
		Content: input.Content,
		PostID:  &postID,
		UserID:  &ownerID,
	}
	if err := s.repo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	s.evictPost(ctx, comment)
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, actor *auth.Actor, id uint, input UpdateCommentInput) (*model.Comment, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, apperrors.ErrCommentNotFound, commentNotFoundMessage)
	}
	if err := s.guard.authorize(policy.ActionEdit, comment, actor, reasonEditComment); err != nil {
		return nil, err
	}

	if input.Content != nil {
		comment.Content = *input.Content
	}
	now := s.now()
	comment.UpdatedAt = &now

	if err := s.repo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	s.evictPost(ctx, comment)
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, actor *auth.Actor, id uint) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	comment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFound(err, apperrors.ErrCommentNotFound, commentNotFoundMessage)
	}
	if err := s.guard.authorize(policy.ActionDelete, comment, actor, reasonDeleteComment); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, comment); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	s.evictPost(ctx, comment)
	return nil
}

func (s *commentService) evictPost(ctx context.Context, comment *model.Comment) {
	if comment.PostID != nil {
		_ = s.cache.Delete(ctx, postCacheKey(*comment.PostID))
	}
}
