package model

// Post keeps the snake_case wire format of the legacy posts collection.
type Post struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Tags      StringList `json:"tags"`
	Upvotes   int        `json:"upvotes"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

func (p *Post) DocID() string           { return p.ID }
func (p *Post) DocPartitionKey() string { return p.UserID }

type CreatePostRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Tags    StringList `json:"tags"`
}

type PostList struct {
	Posts  []Post `json:"posts"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}
