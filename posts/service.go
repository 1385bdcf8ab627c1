package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
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

const pgUniqueViolation = "23505"

// defaultPageLimit is the page size when the client does not pass one;
// maxPageLimit caps what a client may request.
const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

// PostService provides blog post operations.
type PostService struct {
	db  *pgxpool.Pool
	log zerolog.Logger
}

// NewPostService creates a new PostService.
func NewPostService(db *pgxpool.Pool, log zerolog.Logger) *PostService {
	return &PostService{db: db, log: log}
}

// List returns one page of post links ordered by published date, newest
// first. Public: no authentication required.
func (s *PostService) List(ctx context.Context, page, limit int) (*PostListResponse, error) {
	page, limit = normalizePaging(page, limit)

	query := `SELECT slug FROM blog_posts ORDER BY published DESC LIMIT $1 OFFSET $2`
	rows, err := s.db.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list posts")
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}
	defer rows.Close()

	links := []string{}
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, apperror.NewDatabaseError("failed to scan post row", err)
		}
		links = append(links, "/blog/post/"+slug)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("failed to list posts", err)
	}

	return &PostListResponse{Page: page, Limit: limit, Data: links}, nil
}

// normalizePaging clamps the paging inputs to their valid ranges: page at
// least 1, limit defaulting when non-positive and capped at maxPageLimit.
func normalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// GetBySlug returns a single post with its author summary. Public.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	return s.getOne(ctx, "p.slug = $1", slug)
}

// GetByID returns a single post with its author summary. Public.
func (s *PostService) GetByID(ctx context.Context, id string) (*BlogPost, error) {
	return s.getOne(ctx, "p.id = $1", id)
}

func (s *PostService) getOne(ctx context.Context, where string, arg string) (*BlogPost, error) {
	query := fmt.Sprintf(`SELECT p.id, p.title, p.content, p.slug, p.published, p.updated, p.author_id,
                     u.username, u.firstname, u.lastname
              FROM blog_posts p
              JOIN users u ON u.id = p.author_id
              WHERE %s`, where)

	var post BlogPost
	var author AuthorSummary
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&post.ID, &post.Title, &post.Content, &post.Slug, &post.Published, &post.Updated, &post.AuthorID,
		&author.Username, &author.Firstname, &author.Lastname,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("blog post not found", nil)
		}
		s.log.Error().Err(err).Msg("failed to get post")
		return nil, apperror.NewDatabaseError("failed to get post", err)
	}
	post.Author = &author
	return &post, nil
}

// Create persists a new blog post for a writer-or-above requester. The author
// and published-date hooks run just before the insert, so the persisted
// author is always the requester and an absent published date becomes the
// current server time.
func (s *PostService) Create(ctx context.Context, requester authz.Requester, req CreatePostRequest) (*BlogPost, error) {
	if err := authz.CanCreatePost(requester); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	post := &BlogPost{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Slug:      req.Slug,
		Published: req.Published,
	}
	lifecycle.StampAuthor(post, requester.UserID)
	lifecycle.StampPublished(post, time.Now())

	query := `INSERT INTO blog_posts (id, title, content, slug, published, author_id)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING updated`
	err := s.db.QueryRow(ctx, query,
		post.ID, post.Title, post.Content, post.Slug, post.Published, post.AuthorID,
	).Scan(&post.Updated)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("slug already exists", nil)
		}
		s.log.Error().Err(err).Msg("failed to create post")
		return nil, apperror.NewDatabaseError("failed to create post", err)
	}
	return post, nil
}

// Update modifies a post's title, content or slug. Only the author or an
// admin-or-above requester may update; the published date is never touched.
func (s *PostService) Update(ctx context.Context, requester authz.Requester, id string, req *UpdatePostRequest) (*BlogPost, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authz.CanModifyPost(requester, existing.AuthorID); err != nil {
		return nil, err
	}

	var setClauses []string
	var args []interface{}
	argID := 1

	if req.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *req.Title)
		argID++
	}
	if req.Content != nil {
		setClauses = append(setClauses, fmt.Sprintf("content = $%d", argID))
		args = append(args, *req.Content)
		argID++
	}
	if req.Slug != nil {
		setClauses = append(setClauses, fmt.Sprintf("slug = $%d", argID))
		args = append(args, *req.Slug)
		argID++
	}
	setClauses = append(setClauses, fmt.Sprintf("updated = $%d", argID))
	args = append(args, time.Now())
	argID++
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE blog_posts SET %s WHERE id = $%d
              RETURNING id, title, content, slug, published, updated, author_id`,
		strings.Join(setClauses, ", "), argID)

	var post BlogPost
	err = s.db.QueryRow(ctx, query, args...).Scan(
		&post.ID, &post.Title, &post.Content, &post.Slug, &post.Published, &post.Updated, &post.AuthorID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("slug already exists", nil)
		}
		s.log.Error().Err(err).Str("post_id", id).Msg("failed to update post")
		return nil, apperror.NewDatabaseError("failed to update post", err)
	}
	return &post, nil
}

// Delete removes a post. Only the author or an admin-or-above requester may
// delete.
func (s *PostService) Delete(ctx context.Context, requester authz.Requester, id string) error {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanModifyPost(requester, existing.AuthorID); err != nil {
		return err
	}

	if _, err := s.db.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, id); err != nil {
		s.log.Error().Err(err).Str("post_id", id).Msg("failed to delete post")
		return apperror.NewDatabaseError("failed to delete post", err)
	}
	return nil
}
