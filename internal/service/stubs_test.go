package service

import (
	"context"

	"chirp/internal/models"
)

// Hand-written repository stubs. Unset functions fall back to harmless
// zero-value behavior so each test only wires what it cares about.

type userRepoStub struct {
	getByIDFn              func(context.Context, uint) (*models.User, error)
	getByIDUncachedFn      func(context.Context, uint) (*models.User, error)
	getByEmailFn           func(context.Context, string) (*models.User, error)
	getByUsernameFn        func(context.Context, string) (*models.User, error)
	getProfileByUsernameFn func(context.Context, string, uint) (*models.User, error)
	createFn               func(context.Context, *models.User) error
	updateFn               func(context.Context, *models.User) error
	deleteFn               func(context.Context, uint) error
	suggestedFn            func(context.Context, uint, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDFn == nil {
		return &models.User{ID: id}, nil
	}
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByIDUncached(ctx context.Context, id uint) (*models.User, error) {
	if s.getByIDUncachedFn == nil {
		return &models.User{ID: id}, nil
	}
	return s.getByIDUncachedFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.getByEmailFn == nil {
		return nil, nil
	}
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.getByUsernameFn == nil {
		return nil, nil
	}
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetProfileByUsername(ctx context.Context, username string, currentUserID uint) (*models.User, error) {
	if s.getProfileByUsernameFn == nil {
		return &models.User{Username: username}, nil
	}
	return s.getProfileByUsernameFn(ctx, username, currentUserID)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createFn == nil {
		user.ID = 1
		return nil
	}
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	if s.updateFn == nil {
		return nil
	}
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) Suggested(ctx context.Context, userID uint, limit int) ([]models.User, error) {
	if s.suggestedFn == nil {
		return nil, nil
	}
	return s.suggestedFn(ctx, userID, limit)
}

type followRepoStub struct {
	followFn      func(context.Context, uint, uint) (bool, error)
	unfollowFn    func(context.Context, uint, uint) (bool, error)
	isFollowingFn func(context.Context, uint, uint) (bool, error)
	followeeIDsFn func(context.Context, uint) ([]uint, error)
	followersFn   func(context.Context, uint, int, int) ([]models.User, error)
	followingFn   func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *followRepoStub) Follow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if s.followFn == nil {
		return true, nil
	}
	return s.followFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if s.unfollowFn == nil {
		return true, nil
	}
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	if s.isFollowingFn == nil {
		return false, nil
	}
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	if s.followeeIDsFn == nil {
		return nil, nil
	}
	return s.followeeIDsFn(ctx, followerID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if s.followersFn == nil {
		return nil, nil
	}
	return s.followersFn(ctx, userID, limit, offset)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if s.followingFn == nil {
		return nil, nil
	}
	return s.followingFn(ctx, userID, limit, offset)
}

type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint, uint) (*models.Post, error)
	listGlobalFn      func(context.Context, uint) ([]*models.Post, error)
	listByUserIDsFn   func(context.Context, []uint, int, int, uint) ([]*models.Post, error)
	listByUserIDFn    func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	listLikedByUserFn func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	deleteFn          func(context.Context, uint) error
	isLikedFn         func(context.Context, uint, uint) (bool, error)
	likeFn            func(context.Context, uint, uint) (bool, error)
	unlikeFn          func(context.Context, uint, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	if s.createFn == nil {
		post.ID = 1
		return nil
	}
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	if s.getByIDFn == nil {
		return &models.Post{ID: id}, nil
	}
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) ListGlobal(ctx context.Context, currentUserID uint) ([]*models.Post, error) {
	if s.listGlobalFn == nil {
		return nil, nil
	}
	return s.listGlobalFn(ctx, currentUserID)
}
func (s *postRepoStub) ListByUserIDs(ctx context.Context, userIDs []uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if s.listByUserIDsFn == nil {
		return nil, nil
	}
	return s.listByUserIDsFn(ctx, userIDs, limit, offset, currentUserID)
}
func (s *postRepoStub) ListByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if s.listByUserIDFn == nil {
		return nil, nil
	}
	return s.listByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) ListLikedByUser(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	if s.listLikedByUserFn == nil {
		return nil, nil
	}
	return s.listLikedByUserFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	if s.deleteFn == nil {
		return nil
	}
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	if s.isLikedFn == nil {
		return false, nil
	}
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) (bool, error) {
	if s.likeFn == nil {
		return true, nil
	}
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	if s.unlikeFn == nil {
		return true, nil
	}
	return s.unlikeFn(ctx, userID, postID)
}

type commentRepoStub struct {
	createFn              func(context.Context, *models.Comment) error
	getByIDFn             func(context.Context, uint) (*models.Comment, error)
	listByPostFn          func(context.Context, uint, int, int) ([]models.Comment, error)
	deleteByIDAndAuthorFn func(context.Context, uint, uint) (bool, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	if s.createFn == nil {
		comment.ID = 1
		return nil
	}
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	if s.getByIDFn == nil {
		return &models.Comment{ID: id}, nil
	}
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	if s.listByPostFn == nil {
		return nil, nil
	}
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) DeleteByIDAndAuthor(ctx context.Context, id, authorID uint) (bool, error) {
	if s.deleteByIDAndAuthorFn == nil {
		return true, nil
	}
	return s.deleteByIDAndAuthorFn(ctx, id, authorID)
}

type notificationRepoStub struct {
	createFn       func(context.Context, *models.Notification) error
	listByUserFn   func(context.Context, uint, int, int) ([]models.Notification, error)
	unreadCountFn  func(context.Context, uint) (int64, error)
	markAllReadFn  func(context.Context, uint) error
	clearForUserFn func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, notification)
}
func (s *notificationRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	if s.listByUserFn == nil {
		return nil, nil
	}
	return s.listByUserFn(ctx, userID, limit, offset)
}
func (s *notificationRepoStub) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	if s.unreadCountFn == nil {
		return 0, nil
	}
	return s.unreadCountFn(ctx, userID)
}
func (s *notificationRepoStub) MarkAllRead(ctx context.Context, userID uint) error {
	if s.markAllReadFn == nil {
		return nil
	}
	return s.markAllReadFn(ctx, userID)
}
func (s *notificationRepoStub) ClearForUser(ctx context.Context, userID uint) error {
	if s.clearForUserFn == nil {
		return nil
	}
	return s.clearForUserFn(ctx, userID)
}
