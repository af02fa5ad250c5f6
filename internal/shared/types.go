package shared

import (
	"time"

	"github.com/google/uuid"
)

// Asynq task type names. Grouped per queue so the worker can weight them.
const (
	TypeNotifyPromotion   = "lending:notify_promotion"
	TypeDueReminder       = "lending:due_reminder"
	TypeReconcileWaitlist = "lending:reconcile_waitlist"
)

// Queue names used by the worker.
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)

// NotifyPromotionPayload is enqueued after a waitlisted user has been
// auto-promoted into an active borrow by a return.
type NotifyPromotionPayload struct {
	UserID     uuid.UUID `json:"userId"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	BookID     uuid.UUID `json:"bookId"`
	BookTitle  string    `json:"bookTitle"`
	DueDate    time.Time `json:"dueDate"`
	PromotedAt time.Time `json:"promotedAt"`
}

// DueReminderPayload triggers a scan for borrows approaching their due date.
type DueReminderPayload struct{}

// ReconcileWaitlistPayload triggers the sweep that drops waitlist entries
// pointing at users that no longer exist.
type ReconcileWaitlistPayload struct{}
