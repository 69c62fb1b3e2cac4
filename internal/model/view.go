package model

import "github.com/google/uuid"

// PostSummary is a post as returned by the listing endpoint.
type PostSummary struct {
	Post
	User     *Author   `json:"user"`
	Category *Category `json:"category"`
}

// CommentView is a comment with its author.
type CommentView struct {
	Comment
	User *Author `json:"user"`
}

// PostDetail is a single post with its author, category and comments.
type PostDetail struct {
	Post
	User     *Author       `json:"user"`
	Category *Category     `json:"category"`
	Comments []CommentView `json:"comments"`
}

// NewPostSummary builds the listing view from a post with preloaded relations.
func NewPostSummary(p Post) PostSummary {
	s := PostSummary{Post: p, User: AuthorOf(p.User)}
	if p.Category.ID != uuid.Nil {
		c := p.Category
		s.Category = &c
	}
	return s
}

// NewPostDetail builds the detail view from a post with preloaded relations.
func NewPostDetail(p Post) PostDetail {
	s := NewPostSummary(p)
	d := PostDetail{Post: s.Post, User: s.User, Category: s.Category, Comments: make([]CommentView, 0, len(p.Comments))}
	for _, c := range p.Comments {
		d.Comments = append(d.Comments, CommentView{Comment: c, User: AuthorOf(c.User)})
	}
	return d
}
