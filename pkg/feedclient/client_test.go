package feedclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anonto42/snapfeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPostID = "3f2b8c1e-9a4d-4e7b-8c2f-1a2b3c4d5e6f"

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	opts = append([]Option{WithHTTPClient(srv.Client())}, opts...)
	return New(srv.URL+"/", StaticToken("tok"), opts...)
}

func TestListPosts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/posts", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("limit"))
		assert.Equal(t, "4", r.URL.Query().Get("offset"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, _ = io.WriteString(w, `{"posts":[{"id":"p1","user":{"id":"u1"}}],"hasMore":true,"total":7}`)
	})

	page, err := c.ListPosts(context.Background(), 2, 4)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.True(t, page.HasMore)
	assert.Equal(t, int64(7), page.Total)
}

func TestGetPost(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/posts/"+validPostID, r.URL.Path)
		_, _ = io.WriteString(w, `{"post":{"id":"`+validPostID+`","is_liked":true}}`)
	})

	post, err := c.GetPost(context.Background(), validPostID)
	require.NoError(t, err)
	assert.True(t, post.IsLiked)
}

func TestLikeAndUnlikeSendBody(t *testing.T) {
	var methods []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		assert.Equal(t, "/api/likes", r.URL.Path)
		var req models.LikeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, validPostID, req.PostID)
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	require.NoError(t, c.Like(context.Background(), validPostID))
	require.NoError(t, c.Unlike(context.Background(), validPostID))
	assert.Equal(t, []string{http.MethodPost, http.MethodDelete}, methods)
}

func TestAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":"Post already liked"}`)
	})

	err := c.Like(context.Background(), validPostID)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "Post already liked", apiErr.Message)
}

func TestAPIError_PlainBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	})

	_, err := c.ListPosts(context.Background(), 10, 0)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "bad gateway", apiErr.Message)
}
