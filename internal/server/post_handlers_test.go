package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"chirp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostAndGlobalFeed(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	app := newTestApp(t, s)
	user, token := createHandlerTestUser(t, s, "author")

	resp, err := app.Test(withSession(
		postJSON(t, "/api/posts", map[string]string{"text": "hello world"}), token))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "hello world", created.Text)
	assert.Equal(t, user.ID, created.UserID)

	// The global feed is public and includes the new post.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed []models.Post
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&feed))
	require.Len(t, feed, 1)
	assert.Equal(t, created.ID, feed[0].ID)
	assert.Equal(t, "author", feed[0].User.Username)
}

func TestCreatePostWithoutTextOrImage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	app := newTestApp(t, s)
	_, token := createHandlerTestUser(t, s, "author")

	resp, err := app.Test(withSession(
		postJSON(t, "/api/posts", map[string]string{"text": "   "}), token))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body models.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, models.CodeInvalidOperation, body.Code)
}

func TestLikeToggleEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	app := newTestApp(t, s)
	author, _ := createHandlerTestUser(t, s, "author")
	_, token := createHandlerTestUser(t, s, "liker")

	post := &models.Post{Text: "likeable", UserID: author.ID}
	require.NoError(t, s.db.Create(post).Error)

	like := func() bool {
		req := withSession(httptest.NewRequest(http.MethodPost, "/api/posts/1/like", nil), token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Liked bool `json:"liked"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		return body.Liked
	}

	assert.True(t, like(), "first toggle likes")
	assert.False(t, like(), "second toggle unlikes")

	var count int64
	require.NoError(t, s.db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count, "two toggles restore the original state")
}

func TestLikeCreatesNoNotification(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	app := newTestApp(t, s)
	author, _ := createHandlerTestUser(t, s, "author")
	_, token := createHandlerTestUser(t, s, "liker")

	post := &models.Post{Text: "likeable", UserID: author.ID}
	require.NoError(t, s.db.Create(post).Error)

	req := withSession(httptest.NewRequest(http.MethodPost, "/api/posts/1/like", nil), token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var likes int64
	require.NoError(t, s.db.Model(&models.Like{}).Count(&likes).Error)
	assert.EqualValues(t, 1, likes)

	// Follows notify; likes never do.
	var notifs int64
	require.NoError(t, s.db.Model(&models.Notification{}).Count(&notifs).Error)
	assert.Zero(t, notifs)
}

func TestUnlikeEndpoint(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	app := newTestApp(t, s)
	author, _ := createHandlerTestUser(t, s, "author")
	liker, token := createHandlerTestUser(t, s, "liker")

	post := &models.Post{Text: "likeable", UserID: author.ID}
	require.NoError(t, s.db.Create(post).Error)
	require.NoError(t, s.db.Create(&models.Like{UserID: liker.ID, PostID: post.ID}).Error)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/posts/1/like", nil), token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	require.NoError(t, s.db.Model(&models.Like{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeletePostNonAuthor(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	app := newTestApp(t, s)
	author, _ := createHandlerTestUser(t, s, "author")
	_, token := createHandlerTestUser(t, s, "intruder")

	post := &models.Post{Text: "mine", UserID: author.ID}
	require.NoError(t, s.db.Create(post).Error)

	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/posts/1", nil), token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Post unmodified.
	var count int64
	require.NoError(t, s.db.Model(&models.Post{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCommentFlow(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	app := newTestApp(t, s)
	author, _ := createHandlerTestUser(t, s, "author")
	commenter, token := createHandlerTestUser(t, s, "commenter")

	post := &models.Post{Text: "discuss", UserID: author.ID}
	require.NoError(t, s.db.Create(post).Error)

	resp, err := app.Test(withSession(
		postJSON(t, "/api/posts/1/comments", map[string]string{"text": "nice"}), token))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, commenter.ID, created.UserID)

	// Comments are browsable without a session.
	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/posts/1/comments", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var comments []models.Comment
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].Text)

	// Only the author may delete; mismatched pairs read as 404.
	req := withSession(httptest.NewRequest(http.MethodDelete, "/api/posts/1/comments/1", nil), token)
	resp, err = app.Test(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
