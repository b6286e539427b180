package models

// PostPage is one bounded, ordered slice of the post collection matching
// the active filters, plus the pagination envelope the client consumes.
type PostPage struct {
	TotalPosts  int64   `json:"totalPosts"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Limit       int     `json:"limit"`
	Posts       []*Post `json:"posts"`
	NextPage    *int    `json:"nextPage"`
}

// CommentPage is the pagination envelope for a post's comments.
type CommentPage struct {
	Comments      []*Comment `json:"comments"`
	TotalComments int64      `json:"totalComments"`
	TotalPages    int        `json:"totalPages"`
	CurrentPage   int        `json:"currentPage"`
	Limit         int        `json:"limit"`
}

// LikePage is the pagination envelope for a user's likes.
type LikePage struct {
	Likes       []*Like `json:"likes"`
	TotalLikes  int64   `json:"totalLikes"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	Limit       int     `json:"limit"`
}

// NewPostPage assembles the listing envelope. totalPages is
// ceil(total/limit); nextPage is currentPage+1 while more pages remain,
// nil on the last page.
func NewPostPage(posts []*Post, total int64, page, limit int) *PostPage {
	if posts == nil {
		posts = []*Post{}
	}
	totalPages := TotalPages(total, limit)
	p := &PostPage{
		TotalPosts:  total,
		TotalPages:  totalPages,
		CurrentPage: page,
		Limit:       limit,
		Posts:       posts,
	}
	if page < totalPages {
		next := page + 1
		p.NextPage = &next
	}
	return p
}

// TotalPages computes ceil(total/limit) without floating point.
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
