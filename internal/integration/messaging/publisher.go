// Package messaging publishes ledger events to a message broker.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/finance-tracker/ledger/internal/application/adapter"
	"github.com/finance-tracker/ledger/internal/domain/entity"
)

const publishTimeout = 5 * time.Second

var _ adapter.EventPublisher = (*AMQPPublisher)(nil)

// AMQPPublisher publishes ledger events to a durable direct exchange. The routing
// key is the event type.
type AMQPPublisher struct {
	mu           sync.Mutex
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
}

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchangeName string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"direct",     // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
	}, nil
}

// Publish sends every event as a persistent JSON message.
func (p *AMQPPublisher) Publish(ctx context.Context, events ...entity.LedgerEvent) error {
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	// amqp091 channels are not safe for concurrent publishing.
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, event := range events {
		body, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}

		err = p.channel.PublishWithContext(
			ctx,
			p.exchangeName,     // exchange
			string(event.Type), // routing key
			false,              // mandatory
			false,              // immediate
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				MessageId:    event.ID.String(),
				Timestamp:    event.OccurredAt,
				Body:         body,
			},
		)
		if err != nil {
			return fmt.Errorf("publish event: %w", err)
		}

		slog.DebugContext(ctx, "Published ledger event",
			"type", event.Type,
			"entityID", event.EntityID,
			"exchange", p.exchangeName,
		)
	}
	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

// LogPublisher writes events to the structured log. It is used when no broker is
// configured.
type LogPublisher struct{}

// NewLogPublisher creates a publisher that only logs.
func NewLogPublisher() adapter.EventPublisher {
	return LogPublisher{}
}

// Publish logs every event at debug level.
func (LogPublisher) Publish(ctx context.Context, events ...entity.LedgerEvent) error {
	for _, event := range events {
		slog.DebugContext(ctx, "Ledger event",
			"type", event.Type,
			"userID", event.UserID,
			"entityID", event.EntityID,
		)
	}
	return nil
}
