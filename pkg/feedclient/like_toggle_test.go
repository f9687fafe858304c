package feedclient

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLikeAPI struct {
	mu      sync.Mutex
	likes   int
	unlikes int
	err     error
	gate    chan struct{}
	entered chan struct{}
}

func (f *fakeLikeAPI) call(like bool) error {
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if like {
		f.likes++
	} else {
		f.unlikes++
	}
	return f.err
}

func (f *fakeLikeAPI) Like(context.Context, string) error   { return f.call(true) }
func (f *fakeLikeAPI) Unlike(context.Context, string) error { return f.call(false) }

func TestToggle_LikeAndUnlike(t *testing.T) {
	api := &fakeLikeAPI{}
	toggle := NewLikeToggle(api, validPostID, LikeState{Liked: false, Count: 3})

	require.NoError(t, toggle.Toggle(context.Background()))
	assert.Equal(t, LikeState{Liked: true, Count: 4}, toggle.State())

	require.NoError(t, toggle.Toggle(context.Background()))
	assert.Equal(t, LikeState{Liked: false, Count: 3}, toggle.State())
	assert.Equal(t, 1, api.likes)
	assert.Equal(t, 1, api.unlikes)
}

func TestToggle_RollbackOnFailure(t *testing.T) {
	api := &fakeLikeAPI{err: &APIError{Status: 409, Message: "Post already liked"}}
	toggle := NewLikeToggle(api, validPostID, LikeState{Liked: false, Count: 7})

	var seen []LikeState
	toggle.OnChange(func(s LikeState) { seen = append(seen, s) })

	err := toggle.Toggle(context.Background())
	assert.Error(t, err)
	assert.Equal(t, LikeState{Liked: false, Count: 7}, toggle.State())
	assert.False(t, toggle.Pending())
	assert.Equal(t, []LikeState{{Liked: true, Count: 8}, {Liked: false, Count: 7}}, seen)
}

func TestToggle_UnlikeFloorsAtZero(t *testing.T) {
	toggle := NewLikeToggle(&fakeLikeAPI{}, validPostID, LikeState{Liked: true, Count: 0})
	require.NoError(t, toggle.Toggle(context.Background()))
	assert.Equal(t, LikeState{Liked: false, Count: 0}, toggle.State())
}

func TestToggle_RejectsWhileInFlight(t *testing.T) {
	api := &fakeLikeAPI{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	toggle := NewLikeToggle(api, validPostID, LikeState{Count: 1})

	done := make(chan error, 1)
	go func() { done <- toggle.Toggle(context.Background()) }()
	<-api.entered

	assert.True(t, toggle.Pending())
	assert.ErrorIs(t, toggle.Toggle(context.Background()), ErrInFlight)
	assert.Equal(t, LikeState{Liked: true, Count: 2}, toggle.State())

	close(api.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.likes)
	assert.Equal(t, 0, api.unlikes)
}

func TestDoubleTap(t *testing.T) {
	api := &fakeLikeAPI{}
	toggle := NewLikeToggle(api, validPostID, LikeState{Liked: false, Count: 0})

	require.NoError(t, toggle.DoubleTap(context.Background()))
	require.NoError(t, toggle.DoubleTap(context.Background()))

	assert.Equal(t, LikeState{Liked: true, Count: 1}, toggle.State())
	assert.Equal(t, 1, api.likes)
	assert.Equal(t, 0, api.unlikes)
}

func TestToggle_InvalidPostID(t *testing.T) {
	for _, id := range []string{"", "not-a-uuid"} {
		api := &fakeLikeAPI{}
		toggle := NewLikeToggle(api, id, LikeState{Count: 5})

		assert.ErrorIs(t, toggle.Toggle(context.Background()), ErrInvalidPostID)
		assert.ErrorIs(t, toggle.DoubleTap(context.Background()), ErrInvalidPostID)
		assert.Equal(t, LikeState{Count: 5}, toggle.State())
		assert.Zero(t, api.likes+api.unlikes)
	}
}

func TestToggle_TransportError(t *testing.T) {
	api := &fakeLikeAPI{err: errors.New("connection reset")}
	toggle := NewLikeToggle(api, validPostID, LikeState{Liked: true, Count: 2})

	assert.Error(t, toggle.Toggle(context.Background()))
	assert.Equal(t, LikeState{Liked: true, Count: 2}, toggle.State())
}
