// Package posts covers the blog post resource: public reads by page or slug,
// and role-gated writes with author and published-date stamping.
package posts

import "time"

// BlogPost represents a blog post row. The author is always the requester
// who created the post; clients cannot supply it.
type BlogPost struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Slug      string     `json:"slug"`
	Published *time.Time `json:"published"`
	Updated   time.Time  `json:"updated"`
	AuthorID  string     `json:"author_id"`

	// Author is populated on single-post reads.
	Author *AuthorSummary `json:"author,omitempty"`
}

// AuthorSummary is the public view of a post's author embedded in responses.
type AuthorSummary struct {
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// SetAuthorID implements lifecycle.Authored.
func (p *BlogPost) SetAuthorID(id string) { p.AuthorID = id }

// PublishedAt implements lifecycle.Published.
func (p *BlogPost) PublishedAt() *time.Time { return p.Published }

// SetPublishedAt implements lifecycle.Published.
func (p *BlogPost) SetPublishedAt(t time.Time) { p.Published = &t }
