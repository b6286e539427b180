package client

import (
	"context"
	"sync"
)

// Typeahead serves keyword suggestions for a search box. It queries the
// listing with the prefix as keyword but keeps its own state: its
// results never touch a ListingController's accumulated rows. Responses
// are sequence-numbered like the listing so a slow suggestion query
// cannot overwrite a newer one.
type Typeahead struct {
	client  *Client
	session Session
	limit   int

	mu          sync.Mutex
	suggestions []Post
	seq         uint64
}

// NewTypeahead creates a suggestion source. limit caps the number of
// suggestions per query; <= 0 uses the server default.
func NewTypeahead(c *Client, session Session, limit int) *Typeahead {
	return &Typeahead{client: c, session: session, limit: limit}
}

// Suggestions returns a copy of the current suggestion rows.
func (t *Typeahead) Suggestions() []Post {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Post, len(t.suggestions))
	copy(out, t.suggestions)
	return out
}

// Query fetches suggestions for the given input. An empty input clears
// the suggestions without a request.
func (t *Typeahead) Query(ctx context.Context, input string) error {
	t.mu.Lock()
	t.seq++
	seq := t.seq
	t.mu.Unlock()

	if input == "" {
		t.mu.Lock()
		if seq == t.seq {
			t.suggestions = nil
		}
		t.mu.Unlock()
		return nil
	}

	page, err := t.client.ListPosts(ctx, t.session, ListQuery{
		Page:    1,
		Limit:   t.limit,
		Keyword: input,
	})
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return nil
	}
	t.suggestions = page.Posts
	return nil
}
