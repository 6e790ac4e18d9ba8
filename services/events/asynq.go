package events

import (
	"context"
	"encoding/json"
	"fmt"

	"lexmarket/config"

	"github.com/hibiken/asynq"
)

// QueueName is the asynq queue onboarding events are enqueued on.
const QueueName = "onboarding"

// RedisOpt returns the asynq connection for the configured queue database.
func RedisOpt(cfg *config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// AsynqPublisher enqueues each event as an asynq task whose type is the event name.
type AsynqPublisher struct {
	client *asynq.Client
}

func NewAsynqPublisher(client *asynq.Client) *AsynqPublisher {
	return &AsynqPublisher{client: client}
}

func (p *AsynqPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode %s payload: %w", eventType, err)
	}
	task := asynq.NewTask(eventType, data)
	if _, err := p.client.EnqueueContext(ctx, task, asynq.Queue(QueueName), asynq.MaxRetry(5)); err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", eventType, err)
	}
	return nil
}
