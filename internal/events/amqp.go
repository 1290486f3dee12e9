package events

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"
)

// DefaultExchange is the topic exchange session events are published to
const DefaultExchange = "session_updates"

// RoutingKey returns the routing key for a session's events
func RoutingKey(sessionID string) string {
	return fmt.Sprintf("session.%s", sessionID)
}

// channel is the subset of *amqp.Channel used for publishing
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPPublisher publishes events to a RabbitMQ topic exchange
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch channel
}

// DialAMQP connects to the broker and declares the exchange
func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("error dialling rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &AMQPPublisher{conn: conn, exchange: exchange, ch: ch}, nil
}

// Publish sends ev with routing key session.<id>. Failures are logged.
func (p *AMQPPublisher) Publish(ev Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		slog.Warn("failed to marshal event", "type", ev.Type, "error", err)
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch == nil {
		return
	}
	err = p.ch.Publish(p.exchange, RoutingKey(ev.SessionID), false, false, amqp.Publishing{
		ContentType: "application/json",
		Timestamp:   ev.At,
		Type:        string(ev.Type),
		Body:        body,
	})
	if err != nil {
		slog.Warn("failed to publish event", "exchange", p.exchange, "session_id", ev.SessionID, "type", ev.Type, "error", err)
	}
}

// Close closes the channel and connection
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	if p.ch != nil {
		firstErr = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.conn = nil
	}
	return firstErr
}
