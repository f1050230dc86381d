package queue

import (
	"context"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// editMaxRetry bounds redelivery of a failing edit; an unparseable
	// payload is rejected without retrying at all.
	editMaxRetry = 5
	// editTimeout caps one processing attempt, sized for large sources at
	// the maximum blur radius.
	editTimeout = 3 * time.Minute
)

// Client enqueues edit tasks onto one named queue.
type Client struct {
	asynq *asynq.Client
	queue string
}

func NewClient(redisOpt asynq.RedisClientOpt, queueName string) *Client {
	queueName = strings.TrimSpace(queueName)
	if queueName == "" {
		queueName = "default"
	}
	return &Client{
		asynq: asynq.NewClient(redisOpt),
		queue: queueName,
	}
}

func (c *Client) EnqueueEditImage(ctx context.Context, payload EditImagePayload) (*asynq.TaskInfo, error) {
	task, err := NewEditImageTask(payload)
	if err != nil {
		return nil, err
	}
	return c.asynq.EnqueueContext(
		ctx,
		task,
		asynq.Queue(c.queue),
		asynq.MaxRetry(editMaxRetry),
		asynq.Timeout(editTimeout),
	)
}

func (c *Client) Close() error {
	return c.asynq.Close()
}
