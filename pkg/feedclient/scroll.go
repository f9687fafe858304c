package feedclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

const DefaultScrollCooldown = 100 * time.Millisecond

// ScrollTrigger turns sentinel visibility events into page loads. A single
// visibility event fires at most once per cooldown window.
type ScrollTrigger struct {
	pager    *Pager
	cooldown time.Duration
	now      func() time.Time

	mu       sync.Mutex
	lastFire time.Time
	enabled  bool
}

type ScrollOption func(*ScrollTrigger)

func WithCooldown(d time.Duration) ScrollOption {
	return func(s *ScrollTrigger) { s.cooldown = d }
}

func WithClock(now func() time.Time) ScrollOption {
	return func(s *ScrollTrigger) { s.now = now }
}

func NewScrollTrigger(pager *Pager, opts ...ScrollOption) *ScrollTrigger {
	s := &ScrollTrigger{pager: pager, cooldown: DefaultScrollCooldown, now: time.Now, enabled: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetEnabled gates the trigger without touching the pager.
func (s *ScrollTrigger) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
}

// Visible reports that the sentinel came into view. It returns whether a load
// was fired and the load's error, if any.
func (s *ScrollTrigger) Visible(ctx context.Context) (bool, error) {
	if s.Done() || s.pager.Loading() || s.pager.Err() != nil {
		return false, nil
	}

	s.mu.Lock()
	now := s.now()
	if !s.enabled || (!s.lastFire.IsZero() && now.Sub(s.lastFire) < s.cooldown) {
		s.mu.Unlock()
		return false, nil
	}
	s.lastFire = now
	s.mu.Unlock()

	if _, err := s.pager.LoadMore(ctx); err != nil {
		if errors.Is(err, ErrLoading) {
			return false, nil
		}
		return true, err
	}
	return true, nil
}

// Done reports that the feed is exhausted and the sentinel can be removed.
func (s *ScrollTrigger) Done() bool {
	return !s.pager.HasMore()
}
