package comments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/nora-sch/s-r-portfolio/apperror"
	"github.com/nora-sch/s-r-portfolio/authz"
	"github.com/nora-sch/s-r-portfolio/lifecycle"
)

// pgForeignKeyViolation is the PostgreSQL error code raised when the comment
// references a blog post that does not exist. Surfaced as NotFound instead of
// pre-checking, to avoid check-then-insert races.
const pgForeignKeyViolation = "23503"

// CommentService provides comment operations.
type CommentService struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *pgxpool.Pool, log zerolog.Logger) *CommentService {
	return &CommentService{db: db, log: log}
}

// Create persists a new comment for a commentator-or-above requester. Author
// and published date are stamped just before the insert.
func (s *CommentService) Create(ctx context.Context, requester authz.Requester, req NewCommentRequest) (*Comment, error) {
	if err := authz.CanCreateComment(requester); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:         uuid.New().String(),
		Content:    req.Content,
		BlogPostID: req.BlogPostID,
	}
	lifecycle.StampAuthor(comment, requester.UserID)
	lifecycle.StampPublished(comment, time.Now())

	query := `INSERT INTO comments (id, content, published, author_id, blog_post_id)
              VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.Exec(ctx, query,
		comment.ID, comment.Content, comment.Published, comment.AuthorID, comment.BlogPostID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return nil, apperror.NewNotFoundError("blog post not found", nil)
		}
		s.log.Error().Err(err).Msg("failed to create comment")
		return nil, apperror.NewDatabaseError("failed to create comment", err)
	}
	return comment, nil
}

// Get returns a single comment with its author summary. Public.
func (s *CommentService) Get(ctx context.Context, id string) (*Comment, error) {
	query := `SELECT c.id, c.content, c.published, c.author_id, c.blog_post_id,
                     u.username, u.firstname, u.lastname
              FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.id = $1`

	var comment Comment
	var author AuthorSummary
	err := s.db.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.Content, &comment.Published, &comment.AuthorID, &comment.BlogPostID,
		&author.Username, &author.Firstname, &author.Lastname,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("comment not found", nil)
		}
		s.log.Error().Err(err).Str("comment_id", id).Msg("failed to get comment")
		return nil, apperror.NewDatabaseError("failed to get comment", err)
	}
	comment.Author = &author
	return &comment, nil
}

// ListByPost returns all comments for a blog post, oldest first. Public.
func (s *CommentService) ListByPost(ctx context.Context, blogPostID string) ([]Comment, error) {
	query := `SELECT c.id, c.content, c.published, c.author_id, c.blog_post_id,
                     u.username, u.firstname, u.lastname
              FROM comments c
              JOIN users u ON u.id = c.author_id
              WHERE c.blog_post_id = $1
              ORDER BY c.published ASC`
	rows, err := s.db.Query(ctx, query, blogPostID)
	if err != nil {
		s.log.Error().Err(err).Str("blog_post_id", blogPostID).Msg("failed to list comments")
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	defer rows.Close()

	comments := []Comment{}
	for rows.Next() {
		var comment Comment
		var author AuthorSummary
		if err := rows.Scan(
			&comment.ID, &comment.Content, &comment.Published, &comment.AuthorID, &comment.BlogPostID,
			&author.Username, &author.Firstname, &author.Lastname,
		); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan comment row", err)
		}
		comment.Author = &author
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list comments", err)
	}
	return comments, nil
}

// Update modifies a comment's content. Only the author or an editor-or-above
// requester may update.
func (s *CommentService) Update(ctx context.Context, requester authz.Requester, id string, req *UpdateCommentRequest) (*Comment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanModifyComment(requester, existing.AuthorID); err != nil {
		return nil, err
	}

	tag, err := s.db.Exec(ctx, `UPDATE comments SET content = $1 WHERE id = $2`, req.Content, id)
	if err != nil {
		s.log.Error().Err(err).Str("comment_id", id).Msg("failed to update comment")
		return nil, apperror.NewDatabaseError("failed to update comment", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperror.NewNotFoundError(fmt.Sprintf("comment %s not found", id), nil)
	}

	existing.Content = req.Content
	return existing, nil
}
