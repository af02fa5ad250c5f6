package repository

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/rating"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRatingRepository implements rating.Repository on pgx.
type PostgresRatingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRatingRepository(pool *pgxpool.Pool) rating.Repository {
	return &PostgresRatingRepository{pool: pool}
}

// Upsert writes the rating row and recomputes the book's aggregates in
// one transaction. The second return value reports whether the user had
// rated before.
func (r *PostgresRatingRepository) Upsert(ctx context.Context, bookID, userID uuid.UUID, score int) (*rating.Summary, bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := bookExists(ctx, tx, bookID); err != nil {
		return nil, false, err
	}

	var updated bool
	err = tx.QueryRow(ctx, `
		INSERT INTO ratings (id, book_id, user_id, rating)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (book_id, user_id) DO UPDATE SET
			rating = EXCLUDED.rating,
			updated_at = NOW()
		RETURNING (xmax <> 0)`,
		uuid.New(), bookID, userID, score,
	).Scan(&updated)
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert rating: %w", err)
	}

	summary, err := recomputeAggregates(ctx, tx, bookID)
	if err != nil {
		return nil, false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, fmt.Errorf("failed to commit rating: %w", err)
	}

	summary.UserRating = score
	summary.HasRated = true
	return summary, updated, nil
}

func (r *PostgresRatingRepository) Get(ctx context.Context, bookID, userID uuid.UUID) (*rating.Summary, error) {
	var summary rating.Summary
	err := r.pool.QueryRow(ctx,
		`SELECT rating, total_ratings FROM books WHERE id = $1`, bookID,
	).Scan(&summary.AverageRating, &summary.TotalRatings)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, rating.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book aggregates: %w", err)
	}

	err = r.pool.QueryRow(ctx,
		`SELECT rating FROM ratings WHERE book_id = $1 AND user_id = $2`,
		bookID, userID,
	).Scan(&summary.UserRating)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load user rating: %w", err)
	}
	summary.HasRated = err == nil
	return &summary, nil
}

func (r *PostgresRatingRepository) ListForBook(ctx context.Context, bookID uuid.UUID) (*rating.BookRatings, error) {
	result := &rating.BookRatings{}
	err := r.pool.QueryRow(ctx,
		`SELECT title, rating, total_ratings FROM books WHERE id = $1`, bookID,
	).Scan(&result.BookTitle, &result.AverageRating, &result.TotalRatings)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, rating.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT r.id, r.book_id, r.user_id, u.username, r.rating, r.created_at, r.updated_at
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.book_id = $1
		ORDER BY r.updated_at DESC`, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	result.Ratings = []rating.Rating{}
	for rows.Next() {
		var rt rating.Rating
		if err := rows.Scan(&rt.ID, &rt.BookID, &rt.UserID, &rt.Username, &rt.Rating, &rt.CreatedAt, &rt.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		result.Ratings = append(result.Ratings, rt)
	}
	return result, rows.Err()
}

func (r *PostgresRatingRepository) Delete(ctx context.Context, bookID, userID uuid.UUID) (*rating.Summary, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := bookExists(ctx, tx, bookID); err != nil {
		return nil, err
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM ratings WHERE book_id = $1 AND user_id = $2`, bookID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete rating: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, rating.ErrRatingNotFound
	}

	summary, err := recomputeAggregates(ctx, tx, bookID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit rating delete: %w", err)
	}
	return summary, nil
}

func bookExists(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) error {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM books WHERE id = $1)`, bookID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check book: %w", err)
	}
	if !exists {
		return rating.ErrBookNotFound
	}
	return nil
}

func recomputeAggregates(ctx context.Context, tx pgx.Tx, bookID uuid.UUID) (*rating.Summary, error) {
	var summary rating.Summary
	err := tx.QueryRow(ctx, `
		UPDATE books
		SET rating = COALESCE((SELECT AVG(rating) FROM ratings WHERE book_id = $1), 0),
		    total_ratings = (SELECT COUNT(*) FROM ratings WHERE book_id = $1),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING rating, total_ratings`, bookID,
	).Scan(&summary.AverageRating, &summary.TotalRatings)
	if err != nil {
		return nil, fmt.Errorf("failed to recompute rating aggregates: %w", err)
	}
	return &summary, nil
}
