package lending

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ========================================
// REQUEST DTOs
// ========================================

// BorrowRequest - borrow a book by its exact title.
type BorrowRequest struct {
	Title string `json:"title" binding:"required"`
}

func (r BorrowRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
	)
}

// ReturnRequest - return a borrowed book by title.
type ReturnRequest struct {
	Title string `json:"title" binding:"required"`
}

func (r ReturnRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
	)
}

// ========================================
// RESULT DTOs
// ========================================

type BorrowResult struct {
	BookTitle      string    `json:"bookTitle"`
	RemainingStock int       `json:"remainingStock"`
	DueDate        time.Time `json:"dueDate"`
}

type ReturnResult struct {
	BookTitle string `json:"bookTitle"`
	Restocked bool   `json:"restocked"`
	Promoted  bool   `json:"promoted"`
}

type JoinQueueResult struct {
	Position    int `json:"position"`
	QueueLength int `json:"queueLength"`
}

type LeaveQueueResult struct {
	Removed bool `json:"removed"`
}

type QueueStatusResult struct {
	IsInQueue     bool `json:"isInQueue"`
	QueueEnabled  bool `json:"queueEnabled"`
	Position      int  `json:"position"`
	QueueLength   int  `json:"queueLength"`
	EstimatedWait int  `json:"estimatedWaitDays"`
}

type BorrowStatusResult struct {
	HasBorrowed    bool `json:"hasBorrowed"`
	CanBorrow      bool `json:"canBorrow"`
	CurrentBorrows int  `json:"currentBorrows"`
	BorrowLimit    int  `json:"borrowLimit"`
}
