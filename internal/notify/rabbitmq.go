package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

const defaultQueueName = "notifications"

// RabbitMQ подключение к брокеру уведомлений. Одна durable-очередь,
// доставка at-least-once: обработчик обязан быть идемпотентным.
type RabbitMQ struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queueName  string
	logger     *zap.Logger
}

// NewRabbitMQ подключается к брокеру и объявляет очередь уведомлений
func NewRabbitMQ(url, queueName string, logger *zap.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if queueName == "" {
		queueName = defaultQueueName
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	logger.Info("Connected to RabbitMQ", zap.String("queue", queueName))

	return &RabbitMQ{
		connection: conn,
		channel:    ch,
		queueName:  queueName,
		logger:     logger,
	}, nil
}

// Enqueue публикует задание в очередь
func (q *RabbitMQ) Enqueue(_ context.Context, job Job) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}

	err = q.channel.Publish(
		"",          // exchange
		q.queueName, // routing key
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    job.ID,
			Timestamp:    job.CreatedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish job: %w", err)
	}

	return nil
}

// Handler обрабатывает одно задание. Ошибка приводит к requeue.
type Handler func(ctx context.Context, job Job) error

// Consume читает задания из очереди и передаёт их обработчику.
// Сообщения с нечитаемым телом отбрасываются без requeue,
// ошибки обработчика возвращают сообщение в очередь для повтора.
func (q *RabbitMQ) Consume(handler Handler) error {
	// Обрабатываем по одному сообщению за раз
	if err := q.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set QoS: %w", err)
	}

	msgs, err := q.channel.Consume(
		q.queueName, // queue
		"",          // consumer
		false,       // auto-ack (подтверждаем вручную)
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			q.processDelivery(msg, handler)
		}
	}()

	return nil
}

func (q *RabbitMQ) processDelivery(msg amqp.Delivery, handler Handler) {
	var job Job
	if err := json.Unmarshal(msg.Body, &job); err != nil {
		q.logger.Error("Failed to unmarshal notification job", zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := handler(ctx, job); err != nil {
		q.logger.Error("Failed to process notification job",
			zap.String("job_id", job.ID),
			zap.String("type", string(job.Type)),
			zap.Error(err),
		)
		_ = msg.Nack(false, true)
		return
	}

	if err := msg.Ack(false); err != nil {
		q.logger.Error("Failed to ack notification job",
			zap.String("job_id", job.ID),
			zap.Error(err),
		)
	}
}

// Close закрывает канал и соединение
func (q *RabbitMQ) Close() error {
	if q.channel != nil {
		if err := q.channel.Close(); err != nil {
			return fmt.Errorf("close channel: %w", err)
		}
	}
	if q.connection != nil {
		if err := q.connection.Close(); err != nil {
			return fmt.Errorf("close connection: %w", err)
		}
	}
	return nil
}
