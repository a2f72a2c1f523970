package domain

import (
	"errors"
	"time"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
)

// Like records that a user liked a post.
type Like struct {
	UserID string `json:"user"`
}

// Comment is a reply on a post. Name and Avatar are copied from the author
// when the comment is written and never refreshed.
type Comment struct {
	ID     string    `json:"id"`
	UserID string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post is a status update. Name and Avatar are snapshots of the author.
type Post struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}

// LikedBy reports whether userID has a like on the post.
func (p *Post) LikedBy(userID string) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Comment returns the comment with the given id, or nil.
func (p *Post) Comment(id string) *Comment {
	for i := range p.Comments {
		if p.Comments[i].ID == id {
			return &p.Comments[i]
		}
	}
	return nil
}

// OwnedBy reports whether userID authored the post.
func (p *Post) OwnedBy(userID string) bool {
	return p.UserID == userID
}
