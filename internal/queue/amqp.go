package queue

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"github.com/unclebandit/outreach-tracker/internal/logger"
	"github.com/unclebandit/outreach-tracker/internal/model"
)

// AMQPQueue publishes JSON messages to durable RabbitMQ queues named after
// the topic, and consumes call-logged events for the worker.
type AMQPQueue struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  *zap.Logger

	mu       sync.Mutex // a channel must not be used by concurrent publishers
	declared map[string]bool
}

func DialAMQP(url string, log *zap.Logger) (*AMQPQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	return &AMQPQueue{conn: conn, ch: ch, log: logger.OrNop(log), declared: map[string]bool{}}, nil
}

func (q *AMQPQueue) declare(name string) error {
	if q.declared[name] {
		return nil
	}
	_, err := q.ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", name, err)
	}
	q.declared[name] = true
	return nil
}

func (q *AMQPQueue) Publish(topic string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if err := q.declare(topic); err != nil {
		return err
	}
	return q.ch.Publish(
		"",
		topic,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.NewString(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// ConsumeCallLogged decodes deliveries from topic into events. Malformed
// messages are acked and dropped. The returned channel closes with the connection.
func (q *AMQPQueue) ConsumeCallLogged(topic string) (<-chan model.CallLoggedEvent, error) {
	q.mu.Lock()
	err := q.declare(topic)
	q.mu.Unlock()
	if err != nil {
		return nil, err
	}

	msgs, err := q.ch.Consume(
		topic,
		"",
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("register consumer: %w", err)
	}

	events := make(chan model.CallLoggedEvent)
	go func() {
		defer close(events)
		for d := range msgs {
			var ev model.CallLoggedEvent
			if err := json.Unmarshal(d.Body, &ev); err != nil {
				q.log.Warn("⚠️ dropping malformed event", zap.String("message_id", d.MessageId), zap.Error(err))
				d.Ack(false)
				continue
			}
			events <- ev
			d.Ack(false)
		}
	}()
	return events, nil
}

func (q *AMQPQueue) Close() error {
	q.ch.Close()
	return q.conn.Close()
}

var _ Publisher = (*AMQPQueue)(nil)
