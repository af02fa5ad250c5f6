package service

import (
	"context"
	"errors"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/domains/lending"
	"library-backend/internal/infrastructure/queue"
	"library-backend/internal/shared"
	"library-backend/pkg/cache"
	"library-backend/pkg/logger"

	"github.com/google/uuid"
)

// LendingService implements lending.Service. All mutating operations
// run in a single transaction with the book row locked first, so a
// book's stock and waiting queue only ever change under that lock.
type LendingService struct {
	repo     lending.Repository
	cache    cache.Cache    // nil-safe, best-effort invalidation
	enqueuer queue.Enqueuer // nil-safe, best-effort notification
	policy   config.LendingConfig
}

func NewService(repo lending.Repository, c cache.Cache, enq queue.Enqueuer, policy config.LendingConfig) lending.Service {
	return &LendingService{
		repo:     repo,
		cache:    c,
		enqueuer: enq,
		policy:   policy,
	}
}

func (s *LendingService) loanPeriod() time.Duration {
	return time.Duration(s.policy.LoanDays) * 24 * time.Hour
}

// withConflictRetry re-runs fn while it fails with ErrVersionConflict.
// The row lock makes conflicts rare; the guard catches the remainder.
func (s *LendingService) withConflictRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt <= s.policy.ConflictRetries; attempt++ {
		err = fn()
		if !errors.Is(err, lending.ErrVersionConflict) {
			return err
		}
	}
	return lending.ErrConflict
}

// invalidateBookCache drops cached catalog projections after a stock
// change. Best-effort: a stale cache entry expires on its own.
func (s *LendingService) invalidateBookCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "books:*"); err != nil {
		logger.Error("failed to invalidate book cache", err)
	}
}

// ========================================
// BORROW
// ========================================

func (s *LendingService) Borrow(ctx context.Context, userID uuid.UUID, title string) (*lending.BorrowResult, error) {
	var result *lending.BorrowResult

	err := s.withConflictRetry(func() error {
		return s.repo.WithTx(ctx, func(tx lending.TxRepository) error {
			book, err := tx.LockBookByTitle(ctx, title)
			if err != nil {
				return err
			}

			if book.Stock <= 0 {
				return lending.ErrOutOfStock
			}

			user, err := tx.GetUser(ctx, userID)
			if err != nil {
				return err
			}

			active, err := tx.HasActiveBorrow(ctx, user.ID, book.Title)
			if err != nil {
				return err
			}
			if active {
				return lending.ErrAlreadyBorrowed
			}

			count, err := tx.CountActiveBorrows(ctx, user.ID)
			if err != nil {
				return err
			}
			if count >= s.policy.BorrowLimit {
				return lending.ErrBorrowLimitReached
			}

			now := time.Now()
			rec := lending.BorrowRecord{
				ID:         uuid.New(),
				UserID:     user.ID,
				BookID:     &book.ID,
				BookTitle:  book.Title,
				BookAuthor: book.Author,
				BookCover:  book.Cover,
				BorrowDate: now,
				DueDate:    now.Add(s.loanPeriod()),
				Status:     lending.StatusBorrowed,
			}
			if err := tx.InsertBorrow(ctx, rec); err != nil {
				return err
			}

			updated, err := tx.AdjustStock(ctx, book.ID, book.Version, -1, true)
			if err != nil {
				return err
			}

			result = &lending.BorrowResult{
				BookTitle:      book.Title,
				RemainingStock: updated.Stock,
				DueDate:        rec.DueDate,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBookCache(ctx)
	return result, nil
}

// ========================================
// RETURN (+ waitlist drain)
// ========================================

func (s *LendingService) Return(ctx context.Context, userID uuid.UUID, title string) (*lending.ReturnResult, error) {
	var result *lending.ReturnResult
	var promotion *lending.Promotion

	err := s.withConflictRetry(func() error {
		result, promotion = nil, nil

		return s.repo.WithTx(ctx, func(tx lending.TxRepository) error {
			user, err := tx.GetUser(ctx, userID)
			if err != nil {
				return err
			}

			closed, err := tx.CloseBorrow(ctx, user.ID, title, time.Now())
			if err != nil {
				return err
			}
			if !closed {
				return lending.ErrNotBorrowed
			}

			// A book deleted from the catalog is tolerated: the return
			// still succeeds, stock and queue effects are skipped.
			book, err := tx.LockBookByTitle(ctx, title)
			if errors.Is(err, lending.ErrBookNotFound) {
				result = &lending.ReturnResult{BookTitle: title, Restocked: false, Promoted: false}
				return nil
			}
			if err != nil {
				return err
			}

			updated, err := tx.AdjustStock(ctx, book.ID, book.Version, +1, false)
			if err != nil {
				return err
			}

			promotion, err = s.promoteHead(ctx, tx, updated)
			if err != nil {
				return err
			}

			result = &lending.ReturnResult{
				BookTitle: book.Title,
				Restocked: true,
				Promoted:  promotion != nil,
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.invalidateBookCache(ctx)

	if promotion != nil {
		s.notifyPromotion(ctx, promotion)
	}

	return result, nil
}

// promoteHead converts the oldest waitlist entry into an active borrow
// when stock allows. Runs under the same book row lock as the return
// that freed the copy.
//
// An entry pointing at a deleted user is skipped without consuming
// stock: a dead entry must not eat a copy nobody receives. The nightly
// reconciliation job clears such entries.
func (s *LendingService) promoteHead(ctx context.Context, tx lending.TxRepository, book *lending.BookView) (*lending.Promotion, error) {
	if book.Stock <= 0 {
		return nil, nil
	}

	head, err := tx.QueueHead(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	if head == nil {
		return nil, nil
	}

	user, err := tx.GetUser(ctx, head.UserID)
	if errors.Is(err, lending.ErrUserNotFound) {
		logger.Warn("waitlist head user missing, skipping promotion", map[string]interface{}{
			"book_id": book.ID.String(),
			"user_id": head.UserID.String(),
		})
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rec := lending.BorrowRecord{
		ID:         uuid.New(),
		UserID:     user.ID,
		BookID:     &book.ID,
		BookTitle:  book.Title,
		BookAuthor: book.Author,
		BookCover:  book.Cover,
		BorrowDate: now,
		DueDate:    now.Add(s.loanPeriod()),
		Status:     lending.StatusBorrowed,
	}
	if err := tx.InsertBorrow(ctx, rec); err != nil {
		return nil, err
	}

	if _, err := tx.AdjustStock(ctx, book.ID, book.Version, -1, true); err != nil {
		return nil, err
	}

	if err := tx.MarkNotified(ctx, head.ID); err != nil {
		return nil, err
	}

	if _, err := tx.RemoveQueueEntry(ctx, book.ID, user.ID); err != nil {
		return nil, err
	}

	return &lending.Promotion{
		User:      *user,
		BookID:    book.ID,
		BookTitle: book.Title,
		DueDate:   rec.DueDate,
	}, nil
}

// notifyPromotion hands the promotion email to the worker. Best-effort:
// the borrow is already committed, a lost email must not undo it.
func (s *LendingService) notifyPromotion(ctx context.Context, p *lending.Promotion) {
	if s.enqueuer == nil {
		return
	}

	payload := shared.NotifyPromotionPayload{
		UserID:     p.User.ID,
		Email:      p.User.Email,
		Username:   p.User.Username,
		BookID:     p.BookID,
		BookTitle:  p.BookTitle,
		DueDate:    p.DueDate,
		PromotedAt: time.Now(),
	}
	if err := s.enqueuer.EnqueueNotifyPromotion(ctx, payload); err != nil {
		logger.Error("failed to enqueue promotion notification", err)
	}
}

// ========================================
// QUEUE JOIN / LEAVE
// ========================================

func (s *LendingService) JoinQueue(ctx context.Context, bookID, userID uuid.UUID) (*lending.JoinQueueResult, error) {
	var result *lending.JoinQueueResult

	err := s.repo.WithTx(ctx, func(tx lending.TxRepository) error {
		book, err := tx.LockBookByID(ctx, bookID)
		if err != nil {
			return err
		}

		if !book.QueueEnabled {
			return lending.ErrQueueDisabled
		}

		queued, err := tx.IsQueued(ctx, book.ID, userID)
		if err != nil {
			return err
		}
		if queued {
			return lending.ErrAlreadyQueued
		}

		active, err := tx.HasActiveBorrow(ctx, userID, book.Title)
		if err != nil {
			return err
		}
		if active {
			return lending.ErrAlreadyBorrowed
		}

		length, err := tx.QueueLength(ctx, book.ID)
		if err != nil {
			return err
		}
		if length >= book.MaxQueueSize {
			return lending.ErrQueueFull
		}

		user, err := tx.GetUser(ctx, userID)
		if err != nil {
			return err
		}

		entry := lending.QueueEntry{
			ID:       uuid.New(),
			BookID:   book.ID,
			UserID:   user.ID,
			Username: user.Username,
			JoinedAt: time.Now(),
		}
		if err := tx.AppendQueueEntry(ctx, entry); err != nil {
			return err
		}

		result = &lending.JoinQueueResult{
			Position:    length + 1,
			QueueLength: length + 1,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *LendingService) LeaveQueue(ctx context.Context, bookID, userID uuid.UUID) (*lending.LeaveQueueResult, error) {
	var removed bool

	err := s.repo.WithTx(ctx, func(tx lending.TxRepository) error {
		book, err := tx.LockBookByID(ctx, bookID)
		if err != nil {
			return err
		}

		// Leaving an absent queue is a no-op success, not an error.
		removed, err = tx.RemoveQueueEntry(ctx, book.ID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &lending.LeaveQueueResult{Removed: removed}, nil
}

// ========================================
// STATUS QUERIES
// ========================================

func (s *LendingService) QueueStatus(ctx context.Context, bookID, userID uuid.UUID) (*lending.QueueStatusResult, error) {
	snap, err := s.repo.QueueSnapshot(ctx, bookID, userID)
	if err != nil {
		return nil, err
	}

	result := &lending.QueueStatusResult{
		IsInQueue:    snap.IsInQueue,
		QueueEnabled: snap.QueueEnabled,
		Position:     snap.Position,
		QueueLength:  snap.QueueLength,
	}
	if snap.IsInQueue {
		// Rough turnaround: everyone ahead keeps the book a full loan.
		result.EstimatedWait = snap.Position * s.policy.LoanDays
	}
	return result, nil
}

func (s *LendingService) BorrowStatus(ctx context.Context, bookID, userID uuid.UUID) (*lending.BorrowStatusResult, error) {
	book, err := s.repo.GetBookByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	hasBorrowed, err := s.repo.HasActiveBorrow(ctx, userID, book.Title)
	if err != nil {
		return nil, err
	}

	current, err := s.repo.CountActiveBorrows(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &lending.BorrowStatusResult{
		HasBorrowed:    hasBorrowed,
		CanBorrow:      current < s.policy.BorrowLimit,
		CurrentBorrows: current,
		BorrowLimit:    s.policy.BorrowLimit,
	}, nil
}

func (s *LendingService) ListUserBorrows(ctx context.Context, userID uuid.UUID) ([]lending.BorrowRecord, error) {
	return s.repo.ListUserBorrows(ctx, userID)
}

func (s *LendingService) ListUserQueues(ctx context.Context, userID uuid.UUID) ([]lending.QueueMembership, error) {
	return s.repo.ListUserQueues(ctx, userID)
}
