// Package client is a Go client for the inkwell API. It carries no
// ambient state: authentication lives in an explicit Session value that
// callers attach per request.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Session is an authenticated identity. The zero value is an anonymous
// session.
type Session struct {
	Token string
	User  *User
}

// Anonymous reports whether the session carries no credential.
func (s Session) Anonymous() bool {
	return s.Token == ""
}

// APIError is a non-2xx response decoded from the server's error
// envelope.
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"error"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// User mirrors the server's user representation. The server never
// marshals email addresses, so there is no email field here.
type User struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Post mirrors the server's post representation.
type Post struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Image       string    `json:"image"`
	CategoryID  uint      `json:"category_id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	StatusID    uint      `json:"status_id"`
	LikesCount  int       `json:"likes_count"`
	Author      User      `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostPage is the listing envelope.
type PostPage struct {
	TotalPosts  int64  `json:"totalPosts"`
	TotalPages  int    `json:"totalPages"`
	CurrentPage int    `json:"currentPage"`
	Limit       int    `json:"limit"`
	Posts       []Post `json:"posts"`
	NextPage    *int   `json:"nextPage"`
}

// Category mirrors the server's category representation.
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Status is a publication state reference row.
type Status struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	IsLiked    bool `json:"isLiked"`
	LikesCount int  `json:"likes_count"`
}

// Comment mirrors the server's comment representation.
type Comment struct {
	ID          uint      `json:"id"`
	PostID      uint      `json:"post_id"`
	UserID      uint      `json:"user_id"`
	User        User      `json:"user"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CommentPage is the comment listing envelope.
type CommentPage struct {
	Comments      []Comment `json:"comments"`
	TotalComments int64     `json:"totalComments"`
	TotalPages    int       `json:"totalPages"`
	CurrentPage   int       `json:"currentPage"`
	Limit         int       `json:"limit"`
}

// AuthResult is the signup/login response.
type AuthResult struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// ListQuery holds the raw listing parameters. Zero values are omitted
// from the request.
type ListQuery struct {
	Page     int
	Limit    int
	Category string
	Keyword  string
	Status   string
}

// Client talks to an inkwell server.
type Client struct {
	baseURL string
	httpc   *http.Client

	// status label -> id, resolved lazily from /api/statuses so callers
	// never hardcode status ids.
	statusIDs map[string]uint
}

// New creates a client for the given base URL (e.g.
// "http://localhost:8642"). A nil httpc uses a default with a 10s
// timeout.
func New(baseURL string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   httpc,
	}
}

func (c *Client) do(ctx context.Context, session Session, method, path string, body, dest any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if !session.Anonymous() {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if dest == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(dest)
}

// ListPosts fetches one page of the post listing.
func (c *Client) ListPosts(ctx context.Context, session Session, q ListQuery) (*PostPage, error) {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Keyword != "" {
		values.Set("keyword", q.Keyword)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}

	path := "/api/posts"
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var page PostPage
	if err := c.do(ctx, session, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(ctx context.Context, session Session, id uint) (*Post, error) {
	var post Post
	if err := c.do(ctx, session, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListCategories fetches all categories.
func (c *Client) ListCategories(ctx context.Context) ([]Category, error) {
	var result struct {
		Categories []Category `json:"categories"`
		Total      int        `json:"total"`
	}
	if err := c.do(ctx, Session{}, http.MethodGet, "/api/categories", nil, &result); err != nil {
		return nil, err
	}
	return result.Categories, nil
}

// ListStatuses fetches the publication status reference rows.
func (c *Client) ListStatuses(ctx context.Context) ([]Status, error) {
	var result struct {
		Statuses []Status `json:"statuses"`
	}
	if err := c.do(ctx, Session{}, http.MethodGet, "/api/statuses", nil, &result); err != nil {
		return nil, err
	}
	return result.Statuses, nil
}

// StatusID resolves a status label to its server-side id, fetching the
// reference rows on first use.
func (c *Client) StatusID(ctx context.Context, label string) (uint, error) {
	if c.statusIDs == nil {
		statuses, err := c.ListStatuses(ctx)
		if err != nil {
			return 0, err
		}
		ids := make(map[string]uint, len(statuses))
		for _, st := range statuses {
			ids[st.Status] = st.ID
		}
		c.statusIDs = ids
	}
	id, ok := c.statusIDs[label]
	if !ok {
		return 0, fmt.Errorf("unknown status label %q", label)
	}
	return id, nil
}

// Signup registers a new account and returns an authenticated session.
func (c *Client) Signup(ctx context.Context, username, email, password string) (Session, error) {
	var result AuthResult
	err := c.do(ctx, Session{}, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: result.Token, User: result.User}, nil
}

// Login authenticates and returns a session.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var result AuthResult
	err := c.do(ctx, Session{}, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: result.Token, User: result.User}, nil
}

// AdminLogin authenticates against the admin login endpoint. A valid
// non-admin credential fails with 403.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (Session, error) {
	var result AuthResult
	err := c.do(ctx, Session{}, http.MethodPost, "/api/auth/admin/login", map[string]string{
		"email":    email,
		"password": password,
	}, &result)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: result.Token, User: result.User}, nil
}

// ToggleLike flips the session user's like on a post.
func (c *Client) ToggleLike(ctx context.Context, session Session, postID uint) (*LikeResult, error) {
	var result LikeResult
	err := c.do(ctx, session, http.MethodPost, "/api/likes/toggle", map[string]uint{
		"post_id": postID,
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// CheckLike reports whether the session user likes the post.
func (c *Client) CheckLike(ctx context.Context, session Session, postID uint) (bool, error) {
	var result struct {
		IsLiked bool `json:"isLiked"`
	}
	err := c.do(ctx, session, http.MethodGet, fmt.Sprintf("/api/likes/check/%d", postID), nil, &result)
	if err != nil {
		return false, err
	}
	return result.IsLiked, nil
}

// ListComments fetches one page of a post's comments.
func (c *Client) ListComments(ctx context.Context, postID uint, page, limit int) (*CommentPage, error) {
	path := fmt.Sprintf("/api/comments/post/%d", postID)
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	if len(values) > 0 {
		path += "?" + values.Encode()
	}

	var result CommentPage
	if err := c.do(ctx, Session{}, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateComment adds a comment to a post.
func (c *Client) CreateComment(ctx context.Context, session Session, postID uint, text string) (*Comment, error) {
	var comment Comment
	err := c.do(ctx, session, http.MethodPost, "/api/comments", map[string]any{
		"post_id":      postID,
		"comment_text": text,
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}
