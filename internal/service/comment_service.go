package service

import (
	"context"
	"strings"

	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/storage"
)

const maxCommentTextLen = 2000

// CommentService implements comment creation and deletion on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	store       storage.ObjectStore
}

// CreateCommentInput carries a new comment. At least one of Text or Image
// must be present.
type CreateCommentInput struct {
	UserID           uint
	PostID           uint
	Text             string
	Image            []byte
	ImageContentType string
}

// NewCommentService creates a new CommentService.
func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	store storage.ObjectStore,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		store:       store,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && len(in.Image) == 0 {
		return nil, models.NewInvalidOperationError("Comment must have text or image")
	}
	if len(text) > maxCommentTextLen {
		return nil, models.NewInvalidOperationError("Comment text too long (max 2000 characters)")
	}

	// The post must exist and be visible.
	if _, err := s.postRepo.GetByID(ctx, in.PostID, 0); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   text,
		UserID: in.UserID,
		PostID: in.PostID,
	}

	if len(in.Image) > 0 {
		if s.store == nil {
			return nil, models.NewInvalidOperationError("Image uploads are not enabled")
		}
		url, err := s.store.Upload(ctx, in.UserID, in.Image, in.ImageContentType)
		if err != nil {
			return nil, models.NewInvalidOperationError(err.Error())
		}
		comment.ImageURL = url
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID, clampLimit(limit), offset)
}

// DeleteComment removes a comment. Only the author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}

	deleted, err := s.commentRepo.DeleteByIDAndAuthor(ctx, commentID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Comment", commentID)
	}
	return nil
}
