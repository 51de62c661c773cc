package repository

import (
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowCreatesEdgeAndNotification(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	created, err := repo.Follow(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	following, err := repo.IsFollowing(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// The edge is directed: bob does not follow alice.
	reverse, err := repo.IsFollowing(testContext(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	var notifications []models.Notification
	require.NoError(t, db.Where("to_user_id = ?", bob.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, alice.ID, notifications[0].FromUserID)
	assert.Equal(t, models.NotificationTypeFollow, notifications[0].Type)
	assert.False(t, notifications[0].Read)
}

func TestFollowIsIdempotent(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	created, err := repo.Follow(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = repo.Follow(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)

	var edgeCount int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edgeCount).Error)
	assert.Equal(t, int64(1), edgeCount)

	// No duplicate notification for the repeated follow.
	var notifCount int64
	require.NoError(t, db.Model(&models.Notification{}).Where("to_user_id = ?", bob.ID).Count(&notifCount).Error)
	assert.Equal(t, int64(1), notifCount)
}

func TestUnfollowRemovesEdge(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	_, err := repo.Follow(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)

	removed, err := repo.Unfollow(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	following, err := repo.IsFollowing(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Unfollowing again is a no-op.
	removed, err = repo.Unfollow(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFollowersAndFollowingAreSymmetricViews(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewFollowRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	_, err := repo.Follow(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = repo.Follow(testContext(), carol.ID, bob.ID)
	require.NoError(t, err)

	followers, err := repo.Followers(testContext(), bob.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, followers, 2)

	following, err := repo.Following(testContext(), alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	ids, err := repo.FolloweeIDs(testContext(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{bob.ID}, ids)
}

func TestSuggestedExcludesSelfAndFollowed(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	followRepo := NewFollowRepository(db)
	userRepo := NewUserRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")
	dave := createTestUser(t, db, "dave")

	_, err := followRepo.Follow(testContext(), alice.ID, bob.ID)
	require.NoError(t, err)

	suggested, err := userRepo.Suggested(testContext(), alice.ID, 4)
	require.NoError(t, err)

	ids := make(map[uint]bool, len(suggested))
	for _, u := range suggested {
		ids[u.ID] = true
	}
	assert.False(t, ids[alice.ID], "must not suggest self")
	assert.False(t, ids[bob.ID], "must not suggest already-followed user")
	assert.True(t, ids[carol.ID])
	assert.True(t, ids[dave.ID])
}
