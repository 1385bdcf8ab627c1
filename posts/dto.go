package posts

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/nora-sch/s-r-portfolio/apperror"
)

var validate = validator.New()

// slugRegex accepts kebab-case: lowercase letters, digits, single hyphens.
var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// CreatePostRequest represents the payload for creating a blog post.
// Author is never part of the payload; the published date is optional and
// defaults to the server time at creation.
type CreatePostRequest struct {
	Title     string     `json:"title" validate:"required,max=255"`
	Content   string     `json:"content" validate:"required"`
	Slug      string     `json:"slug" validate:"required,max=255"`
	Published *time.Time `json:"published,omitempty"`
}

// Validate checks the field constraints and the slug format.
func (r *CreatePostRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError(validationMessage(err), err)
	}
	if !slugRegex.MatchString(r.Slug) {
		return apperror.NewValidationError("slug must be kebab-case (lowercase letters, numbers, hyphens)", nil)
	}
	return nil
}

// UpdatePostRequest represents a partial blog post update. The published
// date is deliberately absent: it is stamped once at creation and never
// modified afterwards.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,max=255"`
	Content *string `json:"content,omitempty"`
	Slug    *string `json:"slug,omitempty" validate:"omitempty,max=255"`
}

// Validate checks the provided fields and rejects an empty update.
func (r *UpdatePostRequest) Validate() error {
	if r.Title == nil && r.Content == nil && r.Slug == nil {
		return apperror.NewValidationError("no fields provided for update", nil)
	}
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError(validationMessage(err), err)
	}
	if r.Slug != nil && !slugRegex.MatchString(*r.Slug) {
		return apperror.NewValidationError("slug must be kebab-case (lowercase letters, numbers, hyphens)", nil)
	}
	return nil
}

// PostListResponse is the paginated listing: links to each post by slug, the
// way the original blog listing exposed them.
type PostListResponse struct {
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Data  []string `json:"data"`
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field())+" failed on '"+fe.Tag()+"'")
		}
		return "invalid fields: " + strings.Join(fields, ", ")
	}
	return "invalid request"
}
