package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"social/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const foreignKeyViolation = "23503"

type PostRepository struct {
	db *pgxpool.Pool
}

func NewPostRepository(db *pgxpool.Pool) *PostRepository {
	return &PostRepository{db: db}
}

func postOrder(s domain.PostSorting) string {
	switch s {
	case domain.SortOld:
		return "p.id ASC"
	case domain.SortMostLikes:
		return "likes DESC, p.id DESC"
	default:
		return "p.id DESC"
	}
}

func (r *PostRepository) List(ctx context.Context, opts domain.PostListOptions) ([]*domain.Post, int64, error) {
	baseQuery := `
		SELECT
			p.id,
			p.body,
			p.user_id,
			p.image_url,
			p.created_at,
			COUNT(l.id) AS likes
		FROM posts p
		LEFT JOIN likes l ON l.post_id = p.id
	`

	args := []any{}
	conditions := []string{}
	argCounter := 1

	if opts.Search != "" {
		conditions = append(conditions, fmt.Sprintf("p.body ILIKE $%d", argCounter))
		args = append(args, "%"+opts.Search+"%")
		argCounter++
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	baseQuery += where + " GROUP BY p.id ORDER BY " + postOrder(opts.Sorting)

	var total int64
	countQuery := "SELECT COUNT(*) FROM posts p" + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	if opts.IsPaginate {
		offset := (opts.Page - 1) * opts.Limit
		if offset < 0 {
			return []*domain.Post{}, total, nil
		}
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
		args = append(args, opts.Limit, offset)
	} else {
		baseQuery += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.Query(ctx, baseQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query posts: %w", err)
	}
	defer rows.Close()

	posts := []*domain.Post{}
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(
			&p.ID,
			&p.Body,
			&p.UserID,
			&p.ImageURL,
			&p.CreatedAt,
			&p.Likes,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan posts: %w", err)
		}
		posts = append(posts, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *PostRepository) GetByID(ctx context.Context, postID int64) (*domain.Post, error) {
	query := `
		SELECT
			p.id,
			p.body,
			p.user_id,
			p.image_url,
			p.created_at,
			(SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id)
		FROM posts p
		WHERE p.id = $1
	`

	var p domain.Post
	if err := r.db.QueryRow(ctx, query, postID).Scan(
		&p.ID,
		&p.Body,
		&p.UserID,
		&p.ImageURL,
		&p.CreatedAt,
		&p.Likes,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}

	return &p, nil
}

func (r *PostRepository) Create(ctx context.Context, p *domain.Post) (*domain.Post, error) {
	query := `
		INSERT INTO posts (body, user_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	out := *p
	if err := r.db.QueryRow(ctx, query, p.Body, p.UserID).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	return &out, nil
}

func (r *PostRepository) SetImageURL(ctx context.Context, postID int64, imageURL string) error {
	ct, err := r.db.Exec(ctx, `UPDATE posts SET image_url = $1 WHERE id = $2`, imageURL, postID)
	if err != nil {
		return fmt.Errorf("failed to set post image: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrPostNotFound
	}
	return nil
}

func (r *PostRepository) ListComments(ctx context.Context, postID int64) ([]*domain.Comment, error) {
	query := `
		SELECT id, body, post_id, user_id, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.Body, &c.PostID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comments: %w", err)
		}
		comments = append(comments, &c)
	}

	return comments, rows.Err()
}

func (r *PostRepository) CreateComment(ctx context.Context, c *domain.Comment) (*domain.Comment, error) {
	query := `
		INSERT INTO comments (body, post_id, user_id, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	out := *c
	if err := r.db.QueryRow(ctx, query, c.Body, c.PostID, c.UserID).Scan(&out.ID, &out.CreatedAt); err != nil {
		if isPostReference(err) {
			return nil, domain.ErrPostNotFound
		}
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &out, nil
}

func (r *PostRepository) CreateLike(ctx context.Context, l *domain.Like) (*domain.Like, error) {
	query := `
		INSERT INTO likes (post_id, user_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	out := *l
	if err := r.db.QueryRow(ctx, query, l.PostID, l.UserID).Scan(&out.ID, &out.CreatedAt); err != nil {
		if isPostReference(err) {
			return nil, domain.ErrPostNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrPostAlreadyLiked
		}
		return nil, fmt.Errorf("failed to create like: %w", err)
	}

	return &out, nil
}

func isPostReference(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == foreignKeyViolation &&
		strings.Contains(pgErr.ConstraintName, "post_id")
}
