package service

import (
	"context"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleRejectsSelfFollow(t *testing.T) {
	t.Parallel()
	svc := NewFollowService(&followRepoStub{}, &userRepoStub{}, nil)

	_, err := svc.Toggle(context.Background(), 1, 1)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeInvalidOperation, appErr.Code)
}

func TestToggleMissingTarget(t *testing.T) {
	t.Parallel()
	users := &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return nil, models.NewNotFoundError("User", id)
		},
	}
	svc := NewFollowService(&followRepoStub{}, users, nil)

	_, err := svc.Toggle(context.Background(), 1, 99)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestToggleFollowsWhenNotFollowing(t *testing.T) {
	t.Parallel()
	followCalled := false
	follows := &followRepoStub{
		isFollowingFn: func(context.Context, uint, uint) (bool, error) {
			return false, nil
		},
		followFn: func(_ context.Context, followerID, followeeID uint) (bool, error) {
			followCalled = true
			assert.Equal(t, uint(1), followerID)
			assert.Equal(t, uint(2), followeeID)
			return true, nil
		},
	}
	svc := NewFollowService(follows, &userRepoStub{}, nil)

	following, err := svc.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, following)
	assert.True(t, followCalled)
}

func TestToggleUnfollowsWhenFollowing(t *testing.T) {
	t.Parallel()
	unfollowCalled := false
	follows := &followRepoStub{
		isFollowingFn: func(context.Context, uint, uint) (bool, error) {
			return true, nil
		},
		unfollowFn: func(context.Context, uint, uint) (bool, error) {
			unfollowCalled = true
			return true, nil
		},
		followFn: func(context.Context, uint, uint) (bool, error) {
			t.Fatal("Follow should not be called when already following")
			return false, nil
		},
	}
	svc := NewFollowService(follows, &userRepoStub{}, nil)

	following, err := svc.Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, following)
	assert.True(t, unfollowCalled)
}
