package repository

import (
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationLifecycle(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(testContext(), &models.Notification{
			FromUserID: alice.ID,
			ToUserID:   bob.ID,
			Type:       models.NotificationTypeFollow,
		}))
	}

	unread, err := repo.UnreadCount(testContext(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), unread)

	notifications, err := repo.ListByUser(testContext(), bob.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, notifications, 3)
	assert.Equal(t, alice.Username, notifications[0].FromUser.Username)

	require.NoError(t, repo.MarkAllRead(testContext(), bob.ID))
	unread, err = repo.UnreadCount(testContext(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)

	require.NoError(t, repo.ClearForUser(testContext(), bob.ID))
	notifications, err = repo.ListByUser(testContext(), bob.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestNotificationsAreScopedToRecipient(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewNotificationRepository(db)

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	require.NoError(t, repo.Create(testContext(), &models.Notification{
		FromUserID: alice.ID,
		ToUserID:   bob.ID,
		Type:       models.NotificationTypeFollow,
	}))

	notifications, err := repo.ListByUser(testContext(), carol.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, notifications)

	// Clearing carol's empty inbox leaves bob's untouched.
	require.NoError(t, repo.ClearForUser(testContext(), carol.ID))
	notifications, err = repo.ListByUser(testContext(), bob.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}
