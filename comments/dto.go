package comments

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nora-sch/s-r-portfolio/apperror"
)

var validate = validator.New()

// NewCommentRequest represents the payload for creating a comment.
type NewCommentRequest struct {
	Content    string `json:"content" validate:"required,min=5,max=3000"`
	BlogPostID string `json:"blog_post_id" validate:"required,uuid4"`
}

// Validate checks the field constraints.
func (r *NewCommentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError(validationMessage(err), err)
	}
	return nil
}

// UpdateCommentRequest represents a comment update; only the content is
// mutable.
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=5,max=3000"`
}

// Validate checks the field constraints.
func (r *UpdateCommentRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return apperror.NewValidationError(validationMessage(err), err)
	}
	return nil
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
