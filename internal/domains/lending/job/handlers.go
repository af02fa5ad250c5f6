package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"library-backend/internal/domains/lending"
	"library-backend/internal/infrastructure/email"
	"library-backend/internal/shared"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

// Handlers processes the lending background tasks: promotion emails,
// due-date reminders and the waitlist reconciliation sweep.
type Handlers struct {
	repo  lending.Repository
	email email.EmailService
}

func NewHandlers(repo lending.Repository, emailSvc email.EmailService) *Handlers {
	return &Handlers{repo: repo, email: emailSvc}
}

// Register attaches the lending task handlers to the worker mux.
func (h *Handlers) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(shared.TypeNotifyPromotion, h.HandleNotifyPromotion)
	mux.HandleFunc(shared.TypeDueReminder, h.HandleDueReminder)
	mux.HandleFunc(shared.TypeReconcileWaitlist, h.HandleReconcileWaitlist)
}

// HandleNotifyPromotion emails one promoted user. The borrow itself is
// already committed; only the notification is at stake here, so errors
// are returned for asynq to retry.
func (h *Handlers) HandleNotifyPromotion(ctx context.Context, t *asynq.Task) error {
	var payload shared.NotifyPromotionPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to decode promotion payload: %v: %w", err, asynq.SkipRetry)
	}

	logger.Info("📧 Sending promotion notification", map[string]interface{}{
		"user_id":    payload.UserID.String(),
		"book_title": payload.BookTitle,
	})

	return h.email.SendPromotionEmail(ctx, email.PromotionEmailData{
		Email:     payload.Email,
		Username:  payload.Username,
		BookTitle: payload.BookTitle,
		DueDate:   payload.DueDate,
	})
}

// HandleDueReminder emails every user whose borrow is due within the
// next 48 hours. Runs daily from the scheduler.
func (h *Handlers) HandleDueReminder(ctx context.Context, t *asynq.Task) error {
	due, err := h.repo.ListBorrowsDueWithin(ctx, 48*time.Hour)
	if err != nil {
		return fmt.Errorf("failed to list due borrows: %w", err)
	}

	sent := 0
	for _, d := range due {
		err := h.email.SendDueReminderEmail(ctx, email.DueReminderData{
			Email:     d.Email,
			Username:  d.Username,
			BookTitle: d.BookTitle,
			DueDate:   d.DueDate,
		})
		if err != nil {
			// One bad address must not block the rest of the batch.
			logger.Error("failed to send due reminder", err)
			continue
		}
		sent++
	}

	logger.Info("⏰ Due reminder sweep finished", map[string]interface{}{
		"candidates": len(due),
		"sent":       sent,
	})
	return nil
}

// HandleReconcileWaitlist drops waitlist entries whose user no longer
// exists, so promotion never stalls on a dead queue head.
func (h *Handlers) HandleReconcileWaitlist(ctx context.Context, t *asynq.Task) error {
	removed, err := h.repo.DeleteOrphanWaitlistEntries(ctx)
	if err != nil {
		return fmt.Errorf("failed to reconcile waitlist: %w", err)
	}

	if removed > 0 {
		logger.Info("🧹 Removed orphaned waitlist entries", map[string]interface{}{
			"removed": removed,
		})
	}
	return nil
}
