package client

import (
	"context"
	"sync"
)

// ListingController maintains browse state over the post listing:
// active filters, accumulated posts across load-more fetches and the
// pagination cursor. It is safe for concurrent use.
//
// Every filter change resets to page one before fetching. The
// accumulated rows are replaced only when the page-one response for the
// new filters is adopted, so a failed fetch leaves the previous rows
// intact. Responses are sequence-numbered; a response that arrives
// after a newer request has been issued is discarded.
type ListingController struct {
	client  *Client
	session Session
	limit   int

	mu       sync.Mutex
	category string
	keyword  string
	status   string
	page     int
	posts    []Post
	total    int64
	hasMore  bool
	seq      uint64
}

// NewListingController creates a controller. limit <= 0 uses the server
// default page size.
func NewListingController(c *Client, session Session, limit int) *ListingController {
	return &ListingController{
		client:  c,
		session: session,
		limit:   limit,
		page:    1,
	}
}

// Posts returns a copy of the accumulated rows.
func (lc *ListingController) Posts() []Post {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	out := make([]Post, len(lc.posts))
	copy(out, lc.posts)
	return out
}

// Total returns the total match count from the most recent response.
func (lc *ListingController) Total() int64 {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.total
}

// HasMore reports whether another page exists beyond the accumulated
// rows.
func (lc *ListingController) HasMore() bool {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return lc.hasMore
}

// query snapshots the request for the given page and bumps the sequence
// number. The caller fetches outside the lock.
func (lc *ListingController) query(page int) (ListQuery, uint64) {
	lc.seq++
	return ListQuery{
		Page:     page,
		Limit:    lc.limit,
		Category: lc.category,
		Keyword:  lc.keyword,
		Status:   lc.status,
	}, lc.seq
}

// fetch performs the listing request for q and applies the response
// unless a newer request has been issued in the meantime. reset
// replaces the accumulated rows; otherwise the page is appended.
func (lc *ListingController) fetch(ctx context.Context, q ListQuery, seq uint64, reset bool) error {
	page, err := lc.client.ListPosts(ctx, lc.session, q)
	if err != nil {
		return err
	}

	lc.mu.Lock()
	defer lc.mu.Unlock()
	if seq != lc.seq {
		// A newer request superseded this one; drop the response.
		return nil
	}

	if reset {
		lc.posts = page.Posts
	} else {
		lc.posts = append(lc.posts, page.Posts...)
	}
	lc.page = page.CurrentPage
	lc.total = page.TotalPosts
	lc.hasMore = page.NextPage != nil
	return nil
}

// Refresh fetches page one under the current filters and replaces the
// accumulated rows on success.
func (lc *ListingController) Refresh(ctx context.Context) error {
	lc.mu.Lock()
	lc.page = 1
	q, seq := lc.query(1)
	lc.mu.Unlock()

	return lc.fetch(ctx, q, seq, true)
}

// SetCategory changes the category filter and refetches from page one.
// The previous rows stay in place until the new page arrives; a failed
// fetch leaves them unchanged.
func (lc *ListingController) SetCategory(ctx context.Context, category string) error {
	lc.mu.Lock()
	lc.category = category
	lc.page = 1
	q, seq := lc.query(1)
	lc.mu.Unlock()

	return lc.fetch(ctx, q, seq, true)
}

// SetSearch changes the keyword filter and refetches from page one.
func (lc *ListingController) SetSearch(ctx context.Context, keyword string) error {
	lc.mu.Lock()
	lc.keyword = keyword
	lc.page = 1
	q, seq := lc.query(1)
	lc.mu.Unlock()

	return lc.fetch(ctx, q, seq, true)
}

// SetStatus changes the status filter and refetches from page one.
func (lc *ListingController) SetStatus(ctx context.Context, status string) error {
	lc.mu.Lock()
	lc.status = status
	lc.page = 1
	q, seq := lc.query(1)
	lc.mu.Unlock()

	return lc.fetch(ctx, q, seq, true)
}

// LoadMore appends the next page under the current filters. A failed
// fetch keeps the accumulated rows intact. Calling LoadMore when no
// further page exists is a no-op.
func (lc *ListingController) LoadMore(ctx context.Context) error {
	lc.mu.Lock()
	if len(lc.posts) > 0 && !lc.hasMore {
		lc.mu.Unlock()
		return nil
	}
	q, seq := lc.query(lc.page + 1)
	if len(lc.posts) == 0 {
		q.Page = 1
	}
	lc.mu.Unlock()

	return lc.fetch(ctx, q, seq, q.Page == 1)
}
