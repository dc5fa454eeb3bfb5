package queue

import (
	"context"
	"time"

	"tutortrack/core/config"
	"tutortrack/core/logger"

	"github.com/hibiken/asynq"
)

// Queue enqueues background tasks
type Queue interface {
	Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error
	EnqueueAt(ctx context.Context, at time.Time, task *asynq.Task, opts ...asynq.Option) error
	Close() error
}

type asynqQueue struct {
	client *asynq.Client
}

// NewQueue creates an asynq client backed by the shared redis instance
func NewQueue(cfg *config.Config) Queue {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return &asynqQueue{client: client}
}

func (q *asynqQueue) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		logger.Error("Queue:Enqueue", "type", task.Type(), "error", err)
		return err
	}
	logger.Info("Queue:Enqueue", "type", task.Type(), "task_id", info.ID, "queue", info.Queue)
	return nil
}

func (q *asynqQueue) EnqueueAt(ctx context.Context, at time.Time, task *asynq.Task, opts ...asynq.Option) error {
	return q.Enqueue(ctx, task, append(opts, asynq.ProcessAt(at))...)
}

func (q *asynqQueue) Close() error {
	return q.client.Close()
}

// NewServer creates the asynq worker server; handlers are registered by the
// modules that own the task types
func NewServer(cfg *config.Config) *asynq.Server {
	return asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Logger:      asynqLogger{},
		},
	)
}

type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("asynq", "msg", args) }
func (asynqLogger) Info(args ...any)  { logger.Info("asynq", "msg", args) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("asynq", "msg", args) }
func (asynqLogger) Error(args ...any) { logger.Error("asynq", "msg", args) }
func (asynqLogger) Fatal(args ...any) { logger.Error("asynq", "msg", args) }
