package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"library-backend/internal/shared"

	"github.com/hibiken/asynq"
)

// Enqueuer is the narrow interface services use to hand work to the
// background worker. Kept small so tests can stub it.
type Enqueuer interface {
	EnqueueNotifyPromotion(ctx context.Context, payload shared.NotifyPromotionPayload) error
}

// Client wraps asynq.Client with typed enqueue helpers.
type Client struct {
	client *asynq.Client
}

func NewClient(redisAddr string) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

var _ Enqueuer = (*Client)(nil)

// EnqueueNotifyPromotion queues the "you got the book" email for a
// just-promoted waitlist user. High priority: the user is waiting.
func (c *Client) EnqueueNotifyPromotion(ctx context.Context, payload shared.NotifyPromotionPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal promotion payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeNotifyPromotion, data)
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueHigh),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue promotion notification: %w", err)
	}

	return nil
}

func (c *Client) Close() error {
	return c.client.Close()
}
