package feedclient

import (
	"context"
	"errors"
	"sync"

	"github.com/anonto42/snapfeed/backend/validators"
)

var (
	// ErrInFlight is returned when a toggle is attempted while the previous
	// one is still being reconciled.
	ErrInFlight = errors.New("like request already in flight")

	ErrInvalidPostID = errors.New("invalid post id")
)

// LikeAPI is the subset of Client the toggle needs.
type LikeAPI interface {
	Like(ctx context.Context, postID string) error
	Unlike(ctx context.Context, postID string) error
}

// LikeState is what a post's like control renders.
type LikeState struct {
	Liked bool
	Count int64
}

// LikeToggle applies like changes optimistically and rolls back to the
// snapshot taken before the change if the request fails.
type LikeToggle struct {
	api    LikeAPI
	postID string

	mu       sync.Mutex
	state    LikeState
	pending  bool
	onChange func(LikeState)
}

func NewLikeToggle(api LikeAPI, postID string, initial LikeState) *LikeToggle {
	return &LikeToggle{api: api, postID: postID, state: initial}
}

// OnChange registers an observer called after every local state change,
// including rollbacks.
func (t *LikeToggle) OnChange(fn func(LikeState)) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

func (t *LikeToggle) State() LikeState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *LikeToggle) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Toggle flips the like state.
func (t *LikeToggle) Toggle(ctx context.Context) error {
	if !validators.IsUUID(t.postID) {
		return ErrInvalidPostID
	}

	t.mu.Lock()
	if t.pending {
		t.mu.Unlock()
		return ErrInFlight
	}
	return t.apply(ctx, !t.state.Liked)
}

// DoubleTap only ever likes; it is a no-op on an already liked post.
func (t *LikeToggle) DoubleTap(ctx context.Context) error {
	if !validators.IsUUID(t.postID) {
		return ErrInvalidPostID
	}

	t.mu.Lock()
	if t.state.Liked {
		t.mu.Unlock()
		return nil
	}
	if t.pending {
		t.mu.Unlock()
		return ErrInFlight
	}
	return t.apply(ctx, true)
}

// apply must be called with t.mu held; it releases it.
func (t *LikeToggle) apply(ctx context.Context, like bool) error {
	snapshot := t.state
	next := LikeState{Liked: like, Count: snapshot.Count}
	if like {
		next.Count++
	} else if next.Count > 0 {
		next.Count--
	}
	t.state = next
	t.pending = true
	notify := t.onChange
	t.mu.Unlock()

	if notify != nil {
		notify(next)
	}

	var err error
	if like {
		err = t.api.Like(ctx, t.postID)
	} else {
		err = t.api.Unlike(ctx, t.postID)
	}

	t.mu.Lock()
	t.pending = false
	if err != nil {
		t.state = snapshot
	}
	notify = t.onChange
	t.mu.Unlock()

	if err != nil && notify != nil {
		notify(snapshot)
	}
	return err
}
