package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/url"
	"testing"

	"recurate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostAndFeed(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "Alice Adams", "alice@example.com", false)
	cookie := env.login(t, "alice@example.com", "hunter22")

	resp := env.postForm(t, "/create-post", url.Values{
		"title":   {"found this"},
		"content": {"a very good link"},
	}, cookie)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	feed := env.get(t, "/main", cookie)
	defer feed.Body.Close()
	require.Equal(t, http.StatusOK, feed.StatusCode)
	body := readBody(t, feed)
	assert.Contains(t, body, "found this")
	assert.Contains(t, body, "a very good link")
	assert.Contains(t, body, "Alice Adams")
}

func TestCreatePost_EmptyContent(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "Alice Adams", "alice@example.com", false)
	cookie := env.login(t, "alice@example.com", "hunter22")

	resp := env.postForm(t, "/create-post", url.Values{
		"title": {"no body"},
	}, cookie)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "content is required")
}

func TestCreatePost_WithImage(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "Alice Adams", "alice@example.com", false)
	cookie := env.login(t, "alice@example.com", "hunter22")

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("content", "look at this"))
	part, err := w.CreateFormFile("media", "pic.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\n0000000000"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req, err := http.NewRequest(http.MethodPost, "/create-post", &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.AddCookie(&http.Cookie{Name: "recurate_session", Value: cookie})
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusFound, resp.StatusCode)

	var post models.Post
	require.NoError(t, env.db.Order("id DESC").First(&post).Error)
	assert.Contains(t, post.ImagePath, "/uploads/")
	assert.Empty(t, post.VideoPath)
}

func TestEditUpdateDelete_OwnershipMatrix(t *testing.T) {
	env := newTestEnv(t)
	alice := env.seedAccount(t, "Alice Adams", "alice@example.com", false)
	env.seedAccount(t, "Bob Brown", "bob@example.com", false)

	post := &models.Post{Title: "mine", Content: "alice writes", UserID: alice.ID}
	require.NoError(t, env.db.Create(post).Error)
	postID := "/edit-post/" + itoa(post.ID)

	aliceCookie := env.login(t, "alice@example.com", "hunter22")
	bobCookie := env.login(t, "bob@example.com", "hunter22")

	t.Run("owner sees the edit form", func(t *testing.T) {
		resp := env.get(t, postID, aliceCookie)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "alice writes")
	})

	t.Run("non-owner is denied the edit form", func(t *testing.T) {
		resp := env.get(t, postID, bobCookie)
		defer resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("non-owner update is denied and changes nothing", func(t *testing.T) {
		resp := env.postForm(t, "/update-post/"+itoa(post.ID), url.Values{
			"title":   {"hijacked"},
			"content": {"bob edits"},
		}, bobCookie)
		resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		var unchanged models.Post
		require.NoError(t, env.db.First(&unchanged, post.ID).Error)
		assert.Equal(t, "mine", unchanged.Title)
	})

	t.Run("owner update lands", func(t *testing.T) {
		resp := env.postForm(t, "/update-post/"+itoa(post.ID), url.Values{
			"title":   {"mine, revised"},
			"content": {"alice edits"},
		}, aliceCookie)
		resp.Body.Close()
		require.Equal(t, http.StatusFound, resp.StatusCode)

		var updated models.Post
		require.NoError(t, env.db.First(&updated, post.ID).Error)
		assert.Equal(t, "mine, revised", updated.Title)
	})

	t.Run("non-owner delete is denied", func(t *testing.T) {
		resp := env.postForm(t, "/delete-post/"+itoa(post.ID), url.Values{}, bobCookie)
		resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("owner delete removes the post", func(t *testing.T) {
		resp := env.postForm(t, "/delete-post/"+itoa(post.ID), url.Values{}, aliceCookie)
		resp.Body.Close()
		require.Equal(t, http.StatusFound, resp.StatusCode)

		var count int64
		require.NoError(t, env.db.Model(&models.Post{}).Count(&count).Error)
		assert.Equal(t, int64(0), count)
	})
}

func TestEditPost_BadID(t *testing.T) {
	env := newTestEnv(t)
	env.seedAccount(t, "Alice Adams", "alice@example.com", false)
	cookie := env.login(t, "alice@example.com", "hunter22")

	resp := env.get(t, "/edit-post/not-a-number", cookie)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
