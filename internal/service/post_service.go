package service

import (
	"context"
	"log/slog"
	"strings"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/repository"
	"chirp/internal/storage"
)

const (
	maxPostTextLen    = 5000
	defaultFeedLimit  = 20
	maxFeedLimit      = 100
	defaultListOffset = 0
)

// PostService implements post creation, feeds and like toggles. Likes do not
// produce notifications; only follows do.
type PostService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	store      storage.ObjectStore
}

// CreatePostInput carries a new post. Image is the raw uploaded file; at least
// one of Text or Image must be present.
type CreatePostInput struct {
	UserID           uint
	Text             string
	Image            []byte
	ImageContentType string
}

// NewPostService creates a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	store storage.ObjectStore,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
		store:      store,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultFeedLimit
	}
	if limit > maxFeedLimit {
		return maxFeedLimit
	}
	return limit
}

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	text := strings.TrimSpace(in.Text)
	if text == "" && len(in.Image) == 0 {
		return nil, models.NewInvalidOperationError("Post must have text or image")
	}
	if len(text) > maxPostTextLen {
		return nil, models.NewInvalidOperationError("Post text too long (max 5000 characters)")
	}

	post := &models.Post{
		Text:   text,
		UserID: in.UserID,
	}

	if len(in.Image) > 0 {
		if s.store == nil {
			return nil, models.NewInvalidOperationError("Image uploads are not enabled")
		}
		url, err := s.store.Upload(ctx, in.UserID, in.Image, in.ImageContentType)
		if err != nil {
			return nil, models.NewInvalidOperationError(err.Error())
		}
		post.ImageURL = url
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		if post.ImageURL != "" {
			if derr := s.destroyImage(ctx, post.ImageURL); derr != nil {
				middleware.Logger.WarnContext(ctx, "failed to destroy orphaned image",
					slog.String("image_url", post.ImageURL), slog.String("error", derr.Error()))
			}
		}
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

func (s *PostService) GetPost(ctx context.Context, postID, currentUserID uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, postID, currentUserID)
}

// DeletePost removes a post. Only the author may delete it. The stored image
// is destroyed first; if that fails the row is left intact so no post ever
// references a missing object.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID, 0)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	if post.ImageURL != "" {
		if err := s.destroyImage(ctx, post.ImageURL); err != nil {
			return models.NewInternalError(err)
		}
	}

	return s.postRepo.Delete(ctx, postID)
}

// GlobalFeed returns the newest posts across all users.
func (s *PostService) GlobalFeed(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	return s.postRepo.ListGlobal(ctx, currentUserID)
}

// FollowingFeed returns recent posts from the users the viewer follows.
func (s *PostService) FollowingFeed(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	followeeIDs, err := s.followRepo.FolloweeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.postRepo.ListByUserIDs(ctx, followeeIDs, clampLimit(limit), offset, userID)
}

// UserPosts returns a user's posts by username, newest first.
func (s *PostService) UserPosts(ctx context.Context, username string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.postRepo.ListByUserID(ctx, user.ID, clampLimit(limit), offset, currentUserID)
}

// LikedPosts returns the posts a user has liked.
func (s *PostService) LikedPosts(ctx context.Context, username string, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return s.postRepo.ListLikedByUser(ctx, user.ID, clampLimit(limit), offset, currentUserID)
}

// ToggleLike flips the like state of postID for userID and reports the
// resulting state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (bool, error) {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return false, err
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return false, err
	}

	if liked {
		if _, err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return false, err
		}
		return false, nil
	}

	if _, err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return false, err
	}
	return true, nil
}

// Unlike removes a like without toggling.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}
	_, err := s.postRepo.Unlike(ctx, userID, postID)
	return err
}

func (s *PostService) destroyImage(ctx context.Context, imageURL string) error {
	if s.store == nil {
		return nil
	}
	id := storage.ObjectIDFromURL(imageURL)
	if id == "" {
		return nil
	}
	return s.store.Destroy(ctx, id)
}
