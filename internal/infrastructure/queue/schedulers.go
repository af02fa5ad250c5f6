package queue

import (
	"encoding/json"
	"time"

	"library-backend/internal/shared"
	"library-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterLendingJobs() error {
	if err := s.registerDueReminderJob(); err != nil {
		return err
	}

	if err := s.registerReconcileWaitlistJob(); err != nil {
		return err
	}

	return nil
}

// ================================================
// JOB 1: Due-date reminders (daily at 8 AM)
// ================================================
func (s *Scheduler) registerDueReminderJob() error {
	payload, err := json.Marshal(shared.DueReminderPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeDueReminder, payload)

	_, err = s.scheduler.Register(
		"0 8 * * *", // Daily at 8 AM
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register DueReminder job", err)
		return err
	}

	logger.Info("✓ Registered DueReminder: daily at 8 AM", map[string]interface{}{})
	return nil
}

// ================================================
// JOB 2: Waitlist reconciliation (daily at 3 AM)
// ================================================
// Promotion skips queue entries whose user was deleted; the sweep
// removes them before they pile up.
func (s *Scheduler) registerReconcileWaitlistJob() error {
	payload, err := json.Marshal(shared.ReconcileWaitlistPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeReconcileWaitlist, payload)

	_, err = s.scheduler.Register(
		"0 3 * * *", // Daily at 3 AM
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register ReconcileWaitlist job", err)
		return err
	}

	logger.Info("✓ Registered ReconcileWaitlist: daily at 3 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
