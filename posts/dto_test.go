package posts

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nora-sch/s-r-portfolio/apperror"
)

func TestCreatePostRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		req     CreatePostRequest
		wantErr bool
	}{
		{"valid", CreatePostRequest{Title: "Hello", Content: "body", Slug: "hello-world"}, false},
		{"valid with digits in slug", CreatePostRequest{Title: "Hello", Content: "body", Slug: "post-42"}, false},
		{"missing title", CreatePostRequest{Content: "body", Slug: "hello"}, true},
		{"missing content", CreatePostRequest{Title: "Hello", Slug: "hello"}, true},
		{"missing slug", CreatePostRequest{Title: "Hello", Content: "body"}, true},
		{"title too long", CreatePostRequest{Title: strings.Repeat("a", 256), Content: "body", Slug: "hello"}, true},
		{"uppercase slug", CreatePostRequest{Title: "Hello", Content: "body", Slug: "Hello-World"}, true},
		{"slug with spaces", CreatePostRequest{Title: "Hello", Content: "body", Slug: "hello world"}, true},
		{"slug with double hyphen", CreatePostRequest{Title: "Hello", Content: "body", Slug: "hello--world"}, true},
		{"slug with trailing hyphen", CreatePostRequest{Title: "Hello", Content: "body", Slug: "hello-"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr {
				assert.True(t, apperror.IsValidationError(err), "want a validation error, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreatePostRequest_OptionalPublished(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	req := CreatePostRequest{Title: "Hello", Content: "body", Slug: "hello", Published: &at}
	assert.NoError(t, req.Validate())
}

func TestUpdatePostRequest_Validate(t *testing.T) {
	t.Parallel()

	title := "New title"
	badSlug := "Not A Slug"
	goodSlug := "new-slug"

	t.Run("empty update rejected", func(t *testing.T) {
		req := UpdatePostRequest{}
		assert.True(t, apperror.IsValidationError(req.Validate()))
	})

	t.Run("title only is enough", func(t *testing.T) {
		req := UpdatePostRequest{Title: &title}
		assert.NoError(t, req.Validate())
	})

	t.Run("bad slug rejected", func(t *testing.T) {
		req := UpdatePostRequest{Slug: &badSlug}
		assert.True(t, apperror.IsValidationError(req.Validate()))
	})

	t.Run("good slug accepted", func(t *testing.T) {
		req := UpdatePostRequest{Slug: &goodSlug}
		assert.NoError(t, req.Validate())
	})
}
