package lending

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository is the lending data access contract. Mutating flows run
// inside WithTx so that the book-side state (stock, waiting queue) and
// the user-side state (borrow records) change as a unit.
type Repository interface {
	// WithTx runs fn inside a single database transaction. A rollback
	// happens automatically when fn returns an error. A commit error
	// after fn succeeded is wrapped in ErrPartialFailure.
	WithTx(ctx context.Context, fn func(tx TxRepository) error) error

	// Read-only projections (no transaction needed).
	GetBookByID(ctx context.Context, bookID uuid.UUID) (*BookView, error)
	HasActiveBorrow(ctx context.Context, userID uuid.UUID, title string) (bool, error)
	CountActiveBorrows(ctx context.Context, userID uuid.UUID) (int, error)
	ListUserBorrows(ctx context.Context, userID uuid.UUID) ([]BorrowRecord, error)
	ListUserQueues(ctx context.Context, userID uuid.UUID) ([]QueueMembership, error)
	QueueSnapshot(ctx context.Context, bookID, userID uuid.UUID) (*QueueSnapshot, error)

	// Worker support.
	ListBorrowsDueWithin(ctx context.Context, within time.Duration) ([]DueSoonBorrow, error)
	DeleteOrphanWaitlistEntries(ctx context.Context) (int64, error)
}

// TxRepository exposes the primitives available inside one transaction.
// The service orchestrates them; every check-then-act sequence is
// protected by the row lock taken in LockBookByTitle/LockBookByID.
type TxRepository interface {
	// LockBookByTitle loads a book with SELECT ... FOR UPDATE, serializing
	// all mutations against the same book. ErrBookNotFound when absent.
	LockBookByTitle(ctx context.Context, title string) (*BookView, error)
	LockBookByID(ctx context.Context, bookID uuid.UUID) (*BookView, error)

	// AdjustStock applies a guarded stock delta: the update only matches
	// when the stored version equals the supplied one and the resulting
	// stock stays non-negative. countBorrow additionally bumps the
	// book's borrow counter. Returns the updated view;
	// ErrVersionConflict when no row matched.
	AdjustStock(ctx context.Context, bookID uuid.UUID, version int64, delta int, countBorrow bool) (*BookView, error)

	GetUser(ctx context.Context, userID uuid.UUID) (*UserInfo, error)

	HasActiveBorrow(ctx context.Context, userID uuid.UUID, title string) (bool, error)
	CountActiveBorrows(ctx context.Context, userID uuid.UUID) (int, error)
	InsertBorrow(ctx context.Context, rec BorrowRecord) error

	// CloseBorrow marks the active record for (user, title) as returned.
	// Reports false when no active record exists.
	CloseBorrow(ctx context.Context, userID uuid.UUID, title string, returnedAt time.Time) (bool, error)

	QueueLength(ctx context.Context, bookID uuid.UUID) (int, error)
	IsQueued(ctx context.Context, bookID, userID uuid.UUID) (bool, error)
	AppendQueueEntry(ctx context.Context, entry QueueEntry) error

	// RemoveQueueEntry deletes the user's slot; false when absent.
	RemoveQueueEntry(ctx context.Context, bookID, userID uuid.UUID) (bool, error)

	// QueueHead returns the oldest entry, or nil when the queue is empty.
	QueueHead(ctx context.Context, bookID uuid.UUID) (*QueueEntry, error)

	// MarkNotified flags an entry before its promotion removes it, so
	// the notification pipeline has a durable marker inside the tx.
	MarkNotified(ctx context.Context, entryID uuid.UUID) error
}
