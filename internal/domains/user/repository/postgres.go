package repository

import (
	"context"
	"errors"
	"fmt"

	"library-backend/internal/domains/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, username, email, password_hash, profile_picture, role, created_at, updated_at`

// PostgresUserRepository implements user.Repository on pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) user.Repository {
	return &PostgresUserRepository{pool: pool}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, username, email, password_hash, profile_picture, role)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.ProfilePicture, u.Role)
	if isUniqueViolation(err) {
		return user.ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1`, userColumns)
	return scanUser(r.pool.QueryRow(ctx, query, email))
}

func (r *PostgresUserRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET username = $2, email = $3, profile_picture = $4, updated_at = NOW()
		WHERE id = $1`,
		u.ID, u.Username, u.Email, u.ProfilePicture)
	if isUniqueViolation(err) {
		return user.ErrDuplicateUser
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ========================================
// WISHLIST
// ========================================

func (r *PostgresUserRepository) AddWishlistItem(ctx context.Context, item user.WishlistItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist_items (id, user_id, book_title, book_author, book_cover)
		VALUES ($1, $2, $3, $4, $5)`,
		item.ID, item.UserID, item.BookTitle, item.BookAuthor, item.BookCover)
	if isUniqueViolation(err) {
		return user.ErrAlreadyInWishlist
	}
	if err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) ListWishlist(ctx context.Context, userID uuid.UUID) ([]user.WishlistItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, book_title, book_author, book_cover, added_at
		FROM wishlist_items
		WHERE user_id = $1
		ORDER BY added_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishlist: %w", err)
	}
	defer rows.Close()

	items := []user.WishlistItem{}
	for rows.Next() {
		var item user.WishlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.BookTitle, &item.BookAuthor, &item.BookCover, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresUserRepository) RemoveWishlistItem(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist_items WHERE user_id = $1 AND book_title = $2`,
		userID, title)
	if err != nil {
		return false, fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ========================================
// READING LIST
// ========================================

func (r *PostgresUserRepository) AddReadingItem(ctx context.Context, item user.ReadingListItem) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reading_list_items (id, user_id, book_title, book_author, book_cover, progress)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		item.ID, item.UserID, item.BookTitle, item.BookAuthor, item.BookCover, item.Progress)
	if isUniqueViolation(err) {
		return user.ErrAlreadyReading
	}
	if err != nil {
		return fmt.Errorf("failed to add reading item: %w", err)
	}
	return nil
}

func (r *PostgresUserRepository) ListReading(ctx context.Context, userID uuid.UUID) ([]user.ReadingListItem, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, book_title, book_author, book_cover, progress, start_date
		FROM reading_list_items
		WHERE user_id = $1
		ORDER BY start_date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reading items: %w", err)
	}
	defer rows.Close()

	items := []user.ReadingListItem{}
	for rows.Next() {
		var item user.ReadingListItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.BookTitle, &item.BookAuthor, &item.BookCover, &item.Progress, &item.StartDate); err != nil {
			return nil, fmt.Errorf("failed to scan reading item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *PostgresUserRepository) UpdateReadingProgress(ctx context.Context, userID uuid.UUID, title string, progress int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reading_list_items SET progress = $3 WHERE user_id = $1 AND book_title = $2`,
		userID, title, progress)
	if err != nil {
		return false, fmt.Errorf("failed to update reading progress: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *PostgresUserRepository) RemoveReadingItem(ctx context.Context, userID uuid.UUID, title string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM reading_list_items WHERE user_id = $1 AND book_title = $2`,
		userID, title)
	if err != nil {
		return false, fmt.Errorf("failed to remove reading item: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var u user.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.ProfilePicture, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
