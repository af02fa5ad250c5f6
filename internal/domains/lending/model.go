package lending

import (
	"time"

	"github.com/google/uuid"
)

// Borrow record statuses.
const (
	StatusBorrowed = "borrowed"
	StatusReturned = "returned"
)

// BookView is the lending-relevant slice of a catalog book.
// Version guards conditional stock updates.
type BookView struct {
	ID           uuid.UUID
	Title        string
	Author       string
	Cover        string
	Stock        int
	QueueEnabled bool
	MaxQueueSize int
	Version      int64
}

// BorrowRecord is one lending episode. Records are never deleted; a
// return closes the record by setting Status and ReturnDate.
type BorrowRecord struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	BookID     *uuid.UUID `json:"bookId,omitempty"`
	BookTitle  string     `json:"bookTitle"`
	BookAuthor string     `json:"bookAuthor"`
	BookCover  string     `json:"bookCover"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate,omitempty"`
	Status     string     `json:"status"`
}

// QueueEntry is one user's waitlist slot on a book. Position is not a
// field: it is derived from (JoinedAt, ID) order whenever the queue is
// read, which makes position drift impossible.
type QueueEntry struct {
	ID       uuid.UUID
	BookID   uuid.UUID
	UserID   uuid.UUID
	Username string
	JoinedAt time.Time
	Notified bool
}

// QueueMembership is the user-side projection of a waitlist slot.
type QueueMembership struct {
	BookID      uuid.UUID `json:"bookId"`
	BookTitle   string    `json:"bookTitle"`
	Position    int       `json:"position"`
	QueueLength int       `json:"queueLength"`
	JoinedAt    time.Time `json:"joinedAt"`
}

// QueueSnapshot is a point-in-time read of one user's standing in a
// book's queue.
type QueueSnapshot struct {
	BookID       uuid.UUID
	QueueEnabled bool
	IsInQueue    bool
	Position     int
	QueueLength  int
}

// UserInfo is the lending-relevant slice of a user.
type UserInfo struct {
	ID       uuid.UUID
	Username string
	Email    string
}

// DueSoonBorrow feeds the due-date reminder job.
type DueSoonBorrow struct {
	BorrowID  uuid.UUID
	UserID    uuid.UUID
	Username  string
	Email     string
	BookTitle string
	DueDate   time.Time
}

// Promotion describes an auto-promotion that happened during a return.
type Promotion struct {
	User      UserInfo
	BookID    uuid.UUID
	BookTitle string
	DueDate   time.Time
}
