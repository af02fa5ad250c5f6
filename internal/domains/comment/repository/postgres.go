package repository

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/comment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCommentRepository implements comment.Repository on pgx.
type PostgresCommentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresCommentRepository(pool *pgxpool.Pool) comment.Repository {
	return &PostgresCommentRepository{pool: pool}
}

func (r *PostgresCommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO comments (id, book_id, user_id, username, content)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.BookID, c.UserID, c.Username, c.Content)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *PostgresCommentRepository) ListForBook(ctx context.Context, bookID, viewerID uuid.UUID, limit int) ([]comment.Comment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT c.id, c.book_id, c.user_id, c.username, c.content, c.created_at,
		       COUNT(cl.user_id) AS likes,
		       BOOL_OR(cl.user_id = $2) IS TRUE AS user_liked
		FROM comments c
		LEFT JOIN comment_likes cl ON cl.comment_id = c.id
		WHERE c.book_id = $1
		GROUP BY c.id
		ORDER BY c.created_at DESC
		LIMIT $3`, bookID, viewerID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []comment.Comment{}
	for rows.Next() {
		var c comment.Comment
		if err := rows.Scan(&c.ID, &c.BookID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt, &c.Likes, &c.UserLiked); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}

func (r *PostgresCommentRepository) Get(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	var c comment.Comment
	err := r.pool.QueryRow(ctx, `
		SELECT id, book_id, user_id, username, content, created_at
		FROM comments WHERE id = $1`, id,
	).Scan(&c.ID, &c.BookID, &c.UserID, &c.Username, &c.Content, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, comment.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &c, nil
}

// ToggleLike deletes the like row if present, inserts it otherwise,
// then reads back the count.
func (r *PostgresCommentRepository) ToggleLike(ctx context.Context, commentID, userID uuid.UUID) (*comment.LikeResult, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`DELETE FROM comment_likes WHERE comment_id = $1 AND user_id = $2`,
		commentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	liked := false
	if tag.RowsAffected() == 0 {
		_, err := tx.Exec(ctx,
			`INSERT INTO comment_likes (comment_id, user_id) VALUES ($1, $2)`,
			commentID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to insert like: %w", err)
		}
		liked = true
	}

	var likes int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM comment_likes WHERE comment_id = $1`, commentID,
	).Scan(&likes)
	if err != nil {
		return nil, fmt.Errorf("failed to count likes: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit like toggle: %w", err)
	}
	return &comment.LikeResult{Likes: likes, UserLiked: liked}, nil
}

func (r *PostgresCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return comment.ErrCommentNotFound
	}
	return nil
}
