package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-backend/internal/domains/lending"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookColumns = `id, title, author, cover, stock, queue_enabled, max_queue_size, version`

// PostgresLendingRepository implements lending.Repository on pgx.
type PostgresLendingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLendingRepository(pool *pgxpool.Pool) lending.Repository {
	return &PostgresLendingRepository{pool: pool}
}

// WithTx opens a transaction and hands fn a tx-scoped repository.
// A commit failure after fn succeeded leaves the outcome unknown to the
// caller, so it is wrapped in ErrPartialFailure.
func (r *PostgresLendingRepository) WithTx(ctx context.Context, fn func(tx lending.TxRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", lending.ErrStoreUnavailable, err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&txLendingRepository{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %v", lending.ErrPartialFailure, err)
	}
	return nil
}

// ========================================
// READ-ONLY PROJECTIONS
// ========================================

func (r *PostgresLendingRepository) GetBookByID(ctx context.Context, bookID uuid.UUID) (*lending.BookView, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1`, bookColumns)
	return scanBook(r.pool.QueryRow(ctx, query, bookID))
}

func (r *PostgresLendingRepository) HasActiveBorrow(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	return hasActiveBorrow(ctx, r.pool, userID, title)
}

func (r *PostgresLendingRepository) CountActiveBorrows(ctx context.Context, userID uuid.UUID) (int, error) {
	return countActiveBorrows(ctx, r.pool, userID)
}

func (r *PostgresLendingRepository) ListUserBorrows(ctx context.Context, userID uuid.UUID) ([]lending.BorrowRecord, error) {
	query := `
		SELECT id, user_id, book_id, book_title, book_author, book_cover,
		       borrow_date, due_date, return_date, status
		FROM borrows
		WHERE user_id = $1
		ORDER BY borrow_date DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list borrows: %w", err)
	}
	defer rows.Close()

	records := []lending.BorrowRecord{}
	for rows.Next() {
		var rec lending.BorrowRecord
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.BookID, &rec.BookTitle,
			&rec.BookAuthor, &rec.BookCover, &rec.BorrowDate, &rec.DueDate,
			&rec.ReturnDate, &rec.Status)
		if err != nil {
			return nil, fmt.Errorf("failed to scan borrow: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ListUserQueues derives each position with a window over the book's
// full queue, so positions are always consistent with insertion order.
func (r *PostgresLendingRepository) ListUserQueues(ctx context.Context, userID uuid.UUID) ([]lending.QueueMembership, error) {
	query := `
		WITH ranked AS (
			SELECT w.book_id, w.user_id, w.joined_at,
			       ROW_NUMBER() OVER (PARTITION BY w.book_id ORDER BY w.joined_at, w.id) AS position,
			       COUNT(*) OVER (PARTITION BY w.book_id) AS queue_length
			FROM waitlist_entries w
		)
		SELECT r.book_id, b.title, r.position, r.queue_length, r.joined_at
		FROM ranked r
		JOIN books b ON b.id = r.book_id
		WHERE r.user_id = $1
		ORDER BY r.joined_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list queues: %w", err)
	}
	defer rows.Close()

	memberships := []lending.QueueMembership{}
	for rows.Next() {
		var m lending.QueueMembership
		if err := rows.Scan(&m.BookID, &m.BookTitle, &m.Position, &m.QueueLength, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan queue membership: %w", err)
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}

func (r *PostgresLendingRepository) QueueSnapshot(ctx context.Context, bookID, userID uuid.UUID) (*lending.QueueSnapshot, error) {
	snap := &lending.QueueSnapshot{BookID: bookID}

	err := r.pool.QueryRow(ctx,
		`SELECT queue_enabled FROM books WHERE id = $1`, bookID,
	).Scan(&snap.QueueEnabled)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lending.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load book: %w", err)
	}

	query := `
		WITH ranked AS (
			SELECT user_id,
			       ROW_NUMBER() OVER (ORDER BY joined_at, id) AS position
			FROM waitlist_entries
			WHERE book_id = $1
		)
		SELECT (SELECT COUNT(*) FROM ranked),
		       COALESCE((SELECT position FROM ranked WHERE user_id = $2), 0)`

	var position int64
	var length int64
	if err := r.pool.QueryRow(ctx, query, bookID, userID).Scan(&length, &position); err != nil {
		return nil, fmt.Errorf("failed to read queue: %w", err)
	}

	snap.QueueLength = int(length)
	snap.Position = int(position)
	snap.IsInQueue = position > 0
	return snap, nil
}

// ========================================
// WORKER SUPPORT
// ========================================

func (r *PostgresLendingRepository) ListBorrowsDueWithin(ctx context.Context, within time.Duration) ([]lending.DueSoonBorrow, error) {
	query := `
		SELECT br.id, br.user_id, u.username, u.email, br.book_title, br.due_date
		FROM borrows br
		JOIN users u ON u.id = br.user_id
		WHERE br.status = 'borrowed'
		  AND br.due_date BETWEEN NOW() AND NOW() + $1
		ORDER BY br.due_date`

	rows, err := r.pool.Query(ctx, query, within)
	if err != nil {
		return nil, fmt.Errorf("failed to list due borrows: %w", err)
	}
	defer rows.Close()

	var due []lending.DueSoonBorrow
	for rows.Next() {
		var d lending.DueSoonBorrow
		if err := rows.Scan(&d.BorrowID, &d.UserID, &d.Username, &d.Email, &d.BookTitle, &d.DueDate); err != nil {
			return nil, fmt.Errorf("failed to scan due borrow: %w", err)
		}
		due = append(due, d)
	}
	return due, rows.Err()
}

// DeleteOrphanWaitlistEntries drops entries whose user no longer
// exists. Foreign keys make these rare; the sweep keeps promotion from
// ever stalling on a dead head.
func (r *PostgresLendingRepository) DeleteOrphanWaitlistEntries(ctx context.Context) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM waitlist_entries w
		WHERE NOT EXISTS (SELECT 1 FROM users u WHERE u.id = w.user_id)`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete orphan waitlist entries: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ========================================
// TRANSACTIONAL PRIMITIVES
// ========================================

type txLendingRepository struct {
	tx pgx.Tx
}

func (r *txLendingRepository) LockBookByTitle(ctx context.Context, title string) (*lending.BookView, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE title = $1 FOR UPDATE`, bookColumns)
	return scanBook(r.tx.QueryRow(ctx, query, title))
}

func (r *txLendingRepository) LockBookByID(ctx context.Context, bookID uuid.UUID) (*lending.BookView, error) {
	query := fmt.Sprintf(`SELECT %s FROM books WHERE id = $1 FOR UPDATE`, bookColumns)
	return scanBook(r.tx.QueryRow(ctx, query, bookID))
}

// AdjustStock only matches when the stored version is the one the
// caller read and the new stock stays non-negative. No match means a
// concurrent writer got there first.
func (r *txLendingRepository) AdjustStock(ctx context.Context, bookID uuid.UUID, version int64, delta int, countBorrow bool) (*lending.BookView, error) {
	borrowBump := 0
	if countBorrow {
		borrowBump = 1
	}

	query := fmt.Sprintf(`
		UPDATE books
		SET stock = stock + $3,
		    version = version + 1,
		    borrow_count = borrow_count + $4,
		    updated_at = NOW()
		WHERE id = $1 AND version = $2 AND stock + $3 >= 0
		RETURNING %s`, bookColumns)

	book, err := scanBook(r.tx.QueryRow(ctx, query, bookID, version, delta, borrowBump))
	if errors.Is(err, lending.ErrBookNotFound) {
		return nil, lending.ErrVersionConflict
	}
	return book, err
}

func (r *txLendingRepository) GetUser(ctx context.Context, userID uuid.UUID) (*lending.UserInfo, error) {
	var user lending.UserInfo
	err := r.tx.QueryRow(ctx,
		`SELECT id, username, email FROM users WHERE id = $1`, userID,
	).Scan(&user.ID, &user.Username, &user.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lending.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (r *txLendingRepository) HasActiveBorrow(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	return hasActiveBorrow(ctx, r.tx, userID, title)
}

func (r *txLendingRepository) CountActiveBorrows(ctx context.Context, userID uuid.UUID) (int, error) {
	return countActiveBorrows(ctx, r.tx, userID)
}

func (r *txLendingRepository) InsertBorrow(ctx context.Context, rec lending.BorrowRecord) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO borrows (id, user_id, book_id, book_title, book_author, book_cover,
		                     borrow_date, due_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		rec.ID, rec.UserID, rec.BookID, rec.BookTitle, rec.BookAuthor,
		rec.BookCover, rec.BorrowDate, rec.DueDate, rec.Status)
	if err != nil {
		return fmt.Errorf("failed to insert borrow: %w", err)
	}
	return nil
}

func (r *txLendingRepository) CloseBorrow(ctx context.Context, userID uuid.UUID, title string, returnedAt time.Time) (bool, error) {
	tag, err := r.tx.Exec(ctx, `
		UPDATE borrows
		SET status = 'returned', return_date = $3
		WHERE user_id = $1 AND book_title = $2 AND status = 'borrowed'`,
		userID, title, returnedAt)
	if err != nil {
		return false, fmt.Errorf("failed to close borrow: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *txLendingRepository) QueueLength(ctx context.Context, bookID uuid.UUID) (int, error) {
	var length int
	err := r.tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM waitlist_entries WHERE book_id = $1`, bookID,
	).Scan(&length)
	if err != nil {
		return 0, fmt.Errorf("failed to count queue: %w", err)
	}
	return length, nil
}

func (r *txLendingRepository) IsQueued(ctx context.Context, bookID, userID uuid.UUID) (bool, error) {
	var queued bool
	err := r.tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM waitlist_entries WHERE book_id = $1 AND user_id = $2)`,
		bookID, userID,
	).Scan(&queued)
	if err != nil {
		return false, fmt.Errorf("failed to check queue membership: %w", err)
	}
	return queued, nil
}

func (r *txLendingRepository) AppendQueueEntry(ctx context.Context, entry lending.QueueEntry) error {
	_, err := r.tx.Exec(ctx, `
		INSERT INTO waitlist_entries (id, book_id, user_id, username, joined_at, notified)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.ID, entry.BookID, entry.UserID, entry.Username, entry.JoinedAt, entry.Notified)
	if err != nil {
		return fmt.Errorf("failed to append queue entry: %w", err)
	}
	return nil
}

func (r *txLendingRepository) RemoveQueueEntry(ctx context.Context, bookID, userID uuid.UUID) (bool, error) {
	tag, err := r.tx.Exec(ctx,
		`DELETE FROM waitlist_entries WHERE book_id = $1 AND user_id = $2`,
		bookID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to remove queue entry: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *txLendingRepository) QueueHead(ctx context.Context, bookID uuid.UUID) (*lending.QueueEntry, error) {
	var entry lending.QueueEntry
	err := r.tx.QueryRow(ctx, `
		SELECT id, book_id, user_id, username, joined_at, notified
		FROM waitlist_entries
		WHERE book_id = $1
		ORDER BY joined_at, id
		LIMIT 1`, bookID,
	).Scan(&entry.ID, &entry.BookID, &entry.UserID, &entry.Username, &entry.JoinedAt, &entry.Notified)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read queue head: %w", err)
	}
	return &entry, nil
}

func (r *txLendingRepository) MarkNotified(ctx context.Context, entryID uuid.UUID) error {
	_, err := r.tx.Exec(ctx,
		`UPDATE waitlist_entries SET notified = TRUE WHERE id = $1`, entryID)
	if err != nil {
		return fmt.Errorf("failed to mark entry notified: %w", err)
	}
	return nil
}

// ========================================
// SHARED HELPERS
// ========================================

// querier covers both pool and tx query surfaces.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func scanBook(row pgx.Row) (*lending.BookView, error) {
	var book lending.BookView
	err := row.Scan(&book.ID, &book.Title, &book.Author, &book.Cover,
		&book.Stock, &book.QueueEnabled, &book.MaxQueueSize, &book.Version)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, lending.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan book: %w", err)
	}
	return &book, nil
}

func hasActiveBorrow(ctx context.Context, q querier, userID uuid.UUID, title string) (bool, error) {
	var active bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM borrows WHERE user_id = $1 AND book_title = $2 AND status = 'borrowed')`,
		userID, title,
	).Scan(&active)
	if err != nil {
		return false, fmt.Errorf("failed to check active borrow: %w", err)
	}
	return active, nil
}

func countActiveBorrows(ctx context.Context, q querier, userID uuid.UUID) (int, error) {
	var count int
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM borrows WHERE user_id = $1 AND status = 'borrowed'`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count active borrows: %w", err)
	}
	return count, nil
}
