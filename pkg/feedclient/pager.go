package feedclient

import (
	"context"
	"errors"
	"sync"

	"github.com/anonto42/snapfeed/backend/internal/models"
)

// ErrLoading is returned by LoadMore while a previous load is running.
var ErrLoading = errors.New("page load already in progress")

// PageFetcher is the subset of Client the pager needs.
type PageFetcher interface {
	ListPosts(ctx context.Context, limit, offset int) (*models.FeedPage, error)
}

// Pager accumulates feed pages. Its offset advances by the number of posts
// actually appended, not by the requested limit.
type Pager struct {
	fetcher PageFetcher
	limit   int

	mu      sync.Mutex
	posts   []models.PostWithUser
	offset  int
	hasMore bool
	loading bool
	err     error
	gen     int
}

func NewPager(fetcher PageFetcher, limit int) *Pager {
	return &Pager{fetcher: fetcher, limit: limit, hasMore: true}
}

// LoadMore fetches the next page and returns how many posts were appended. It
// does nothing once the feed is exhausted and refuses to run while a previous
// error is unresolved.
func (p *Pager) LoadMore(ctx context.Context) (int, error) {
	p.mu.Lock()
	switch {
	case p.loading:
		p.mu.Unlock()
		return 0, ErrLoading
	case p.err != nil:
		err := p.err
		p.mu.Unlock()
		return 0, err
	case !p.hasMore:
		p.mu.Unlock()
		return 0, nil
	}
	p.loading = true
	offset, gen := p.offset, p.gen
	p.mu.Unlock()

	page, err := p.fetcher.ListPosts(ctx, p.limit, offset)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		// Reset while the request was running.
		return 0, nil
	}
	p.loading = false
	if err != nil {
		p.err = err
		return 0, err
	}

	appended := 0
	for _, post := range page.Posts {
		if post.ID == "" || post.User == nil {
			continue
		}
		p.posts = append(p.posts, post)
		appended++
	}
	p.offset += appended
	p.hasMore = page.HasMore
	return appended, nil
}

func (p *Pager) Offset() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.offset
}

func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMore
}

func (p *Pager) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

func (p *Pager) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Posts returns a copy of the accumulated posts.
func (p *Pager) Posts() []models.PostWithUser {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.PostWithUser, len(p.posts))
	copy(out, p.posts)
	return out
}

// ClearError lets LoadMore run again after a failure.
func (p *Pager) ClearError() {
	p.mu.Lock()
	p.err = nil
	p.mu.Unlock()
}

// Reset drops everything loaded so far. A load still running is discarded.
func (p *Pager) Reset() {
	p.mu.Lock()
	p.posts = nil
	p.offset = 0
	p.hasMore = true
	p.loading = false
	p.err = nil
	p.gen++
	p.mu.Unlock()
}
