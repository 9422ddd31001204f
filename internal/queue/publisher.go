package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"fleetdesk/internal/logger"
	"fleetdesk/internal/model"
)

const taskEventQueue = "task.events"

// TaskEvent is published whenever a task is created, updated or deleted.
type TaskEvent struct {
	Action string     `json:"action"`
	Task   model.Task `json:"task"`
	At     time.Time  `json:"at"`
}

// Publisher sends task lifecycle events to RabbitMQ. It is best-effort by
// construction: a nil or unreachable publisher logs and moves on so the
// request path is never held hostage by the broker.
type Publisher struct {
	url string
}

// NewPublisher returns a publisher for the given AMQP URL, or nil when the
// URL is empty (events disabled).
func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{url: url}
}

// PublishTaskEvent marshals and publishes the event. Messages are persistent
// and the queue is declared durable so events survive broker restarts.
func (p *Publisher) PublishTaskEvent(ctx context.Context, action string, task model.Task) {
	if p == nil {
		return
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		logger.L.Warn("amqp dial failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.L.Warn("amqp channel open failed", zap.Error(err))
		return
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(taskEventQueue, true, false, false, false, nil); err != nil {
		logger.L.Warn("amqp queue declare failed", zap.Error(err))
		return
	}

	body, err := json.Marshal(TaskEvent{Action: action, Task: task, At: time.Now().UTC()})
	if err != nil {
		logger.L.Warn("marshal task event failed", zap.Error(err))
		return
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", taskEventQueue, false, false, pub); err != nil {
		logger.L.Warn("amqp publish failed", zap.Error(err))
	}
}
