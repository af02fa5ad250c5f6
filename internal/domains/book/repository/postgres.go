package repository

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/book"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `
	id, title, author, category, year, synopsis, cover, pdf_url, borrow_link,
	stock, queue_enabled, max_queue_size, rating, total_ratings, borrow_count,
	available, version, created_at, updated_at`

// PostgresBookRepository implements book.Repository on pgx.
type PostgresBookRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresBookRepository(pool *pgxpool.Pool) book.Repository {
	return &PostgresBookRepository{pool: pool}
}

func (r *PostgresBookRepository) List(ctx context.Context, filter book.ListFilter) ([]book.Book, int64, error) {
	where := ""
	args := []any{}
	if filter.Category != "" {
		where = "WHERE category = $1"
		args = append(args, filter.Category)
	}

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM books %s`, where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	offset := (filter.Page - 1) * filter.Limit
	query := fmt.Sprintf(`
		SELECT %s FROM books %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, bookColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	books := []book.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, 0, err
		}
		books = append(books, *b)
	}
	return books, total, rows.Err()
}

func (r *PostgresBookRepository) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)
	return scanBook(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresBookRepository) GetByTitle(ctx context.Context, title string) (*book.Book, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE title = $1`, bookColumns)
	return scanBook(r.pool.QueryRow(ctx, query, title))
}

// Upsert keys on the title's unique index. An update deliberately does
// not touch stock, version or rating aggregates: those belong to the
// lending and rating engines.
func (r *PostgresBookRepository) Upsert(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := fmt.Sprintf(`
		INSERT INTO books (id, title, author, category, year, synopsis, cover,
		                   pdf_url, borrow_link, stock, queue_enabled, max_queue_size)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (title) DO UPDATE SET
			author = EXCLUDED.author,
			category = EXCLUDED.category,
			year = EXCLUDED.year,
			synopsis = EXCLUDED.synopsis,
			cover = EXCLUDED.cover,
			pdf_url = EXCLUDED.pdf_url,
			borrow_link = EXCLUDED.borrow_link,
			queue_enabled = EXCLUDED.queue_enabled,
			max_queue_size = EXCLUDED.max_queue_size,
			updated_at = NOW()
		RETURNING %s`, bookColumns)

	saved, err := scanBook(r.pool.QueryRow(ctx, query,
		b.ID, b.Title, b.Author, b.Category, b.Year, b.Synopsis, b.Cover,
		b.PDFURL, b.BorrowLink, b.Stock, b.QueueEnabled, b.MaxQueueSize))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, book.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("failed to upsert book: %w", err)
	}
	return saved, nil
}

func (r *PostgresBookRepository) DeleteByTitle(ctx context.Context, title string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE title = $1`, title)
	if err != nil {
		return false, fmt.Errorf("failed to delete book: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ReplaceAll runs in one transaction so a failed seed leaves the old
// catalog intact.
func (r *PostgresBookRepository) ReplaceAll(ctx context.Context, books []book.Book) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}

	for _, b := range books {
		_, err := tx.Exec(ctx, `
			INSERT INTO books (id, title, author, category, year, synopsis, cover,
			                   borrow_link, stock, rating)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			b.ID, b.Title, b.Author, b.Category, b.Year, b.Synopsis, b.Cover,
			b.BorrowLink, b.Stock, b.Rating)
		if err != nil {
			return fmt.Errorf("failed to insert seed book %q: %w", b.Title, err)
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresBookRepository) Search(ctx context.Context, query string, limit int) ([]book.Suggestion, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, author, category, year, rating, cover, stock, pdf_url, synopsis
		FROM books
		WHERE title ILIKE '%' || $1 || '%'
		   OR author ILIKE '%' || $1 || '%'
		   OR category ILIKE '%' || $1 || '%'
		ORDER BY borrow_count DESC, rating DESC
		LIMIT $2`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	suggestions := []book.Suggestion{}
	for rows.Next() {
		var s book.Suggestion
		err := rows.Scan(&s.ID, &s.Title, &s.Author, &s.Category, &s.Year,
			&s.Rating, &s.Cover, &s.Stock, &s.PDFURL, &s.Synopsis)
		if err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}

func (r *PostgresBookRepository) UpdateCover(ctx context.Context, id uuid.UUID, coverURL string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE books SET cover = $2, updated_at = NOW() WHERE id = $1`, id, coverURL)
	if err != nil {
		return fmt.Errorf("failed to update cover: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Category, &b.Year, &b.Synopsis,
		&b.Cover, &b.PDFURL, &b.BorrowLink, &b.Stock, &b.QueueEnabled,
		&b.MaxQueueSize, &b.Rating, &b.TotalRatings, &b.BorrowCount,
		&b.Available, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, book.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}
	return &b, nil
}
