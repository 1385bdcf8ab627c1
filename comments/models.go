// Package comments covers the comment resource: public reads, creation by
// any authenticated commentator-or-above, and updates by the author or an
// editor.
package comments

import "time"

// Comment represents a comment row. Author and published date are stamped by
// the write-path hooks, never taken from the client.
type Comment struct {
	ID         string     `json:"id"`
	Content    string     `json:"content"`
	Published  *time.Time `json:"published"`
	AuthorID   string     `json:"author_id"`
	BlogPostID string     `json:"blog_post_id"`

	// Author is populated on reads.
	Author *AuthorSummary `json:"author,omitempty"`
}

// AuthorSummary is the public view of a comment's author.
type AuthorSummary struct {
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// SetAuthorID implements lifecycle.Authored.
func (c *Comment) SetAuthorID(id string) { c.AuthorID = id }

// PublishedAt implements lifecycle.Published.
func (c *Comment) PublishedAt() *time.Time { return c.Published }

// SetPublishedAt implements lifecycle.Published.
func (c *Comment) SetPublishedAt(t time.Time) { c.Published = &t }
