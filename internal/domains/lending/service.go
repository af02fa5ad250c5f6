package lending

import (
	"context"

	"github.com/google/uuid"
)

// Service is the inventory & waitlist consistency engine: every
// operation that touches stock, borrow records or the waiting queue
// goes through here.
type Service interface {
	// Borrow checks out a book by title for a user. Decrements stock
	// and appends a borrow record atomically.
	Borrow(ctx context.Context, userID uuid.UUID, title string) (*BorrowResult, error)

	// Return closes the user's active borrow, restocks the book when it
	// still exists, and drains one waitlist entry if possible.
	Return(ctx context.Context, userID uuid.UUID, title string) (*ReturnResult, error)

	JoinQueue(ctx context.Context, bookID, userID uuid.UUID) (*JoinQueueResult, error)
	LeaveQueue(ctx context.Context, bookID, userID uuid.UUID) (*LeaveQueueResult, error)

	QueueStatus(ctx context.Context, bookID, userID uuid.UUID) (*QueueStatusResult, error)
	BorrowStatus(ctx context.Context, bookID, userID uuid.UUID) (*BorrowStatusResult, error)

	ListUserBorrows(ctx context.Context, userID uuid.UUID) ([]BorrowRecord, error)
	ListUserQueues(ctx context.Context, userID uuid.UUID) ([]QueueMembership, error)
}
