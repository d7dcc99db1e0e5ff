package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/orderevent"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

// Client represents a RabbitMQ client.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Channel returns the underlying AMQP channel.
func (r *Client) Channel() *amqp.Channel {
	return r.channel
}

// Close closes the channel and connection for graceful shutdown.
func (r *Client) Close() error {
	if r.channel != nil {
		if err := r.channel.Close(); err != nil {
			return err
		}
	}
	if r.conn != nil {
		return r.conn.Close()
	}

	return nil
}

// NewClient dials RabbitMQ and opens a channel.
func NewClient(url string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		if closeErr := conn.Close(); closeErr != nil {
			slog.Error("Failed to close RabbitMQ connection", "error", closeErr)
		}

		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	slog.Info("RabbitMQ connected")

	return &Client{
		conn:    conn,
		channel: channel,
	}, nil
}

type DeclareExchangeConfig struct {
	Name       string
	Kind       string
	Durable    bool
	AutoDelete bool
	Internal   bool
	NoWait     bool
	Args       amqp.Table
}

// DeclareExchange declares an exchange with the given configuration.
func (r *Client) DeclareExchange(cfg DeclareExchangeConfig) error {
	return r.channel.ExchangeDeclare(
		cfg.Name,
		cfg.Kind,
		cfg.Durable,
		cfg.AutoDelete,
		cfg.Internal,
		cfg.NoWait,
		cfg.Args,
	)
}

// Publisher publishes order lifecycle events to a topic exchange.
type Publisher struct {
	client   *Client
	exchange string

	// amqp.Channel is not safe for concurrent publishing.
	mu sync.Mutex
}

// NewPublisher connects using the rabbitmq.* configuration keys and declares
// the events exchange.
func NewPublisher() (*Publisher, error) {
	client, err := NewClient(viper.GetString("rabbitmq.url"))
	if err != nil {
		return nil, err
	}

	exchange := viper.GetString("rabbitmq.exchange")
	err = client.DeclareExchange(DeclareExchangeConfig{
		Name:    exchange,
		Kind:    amqp.ExchangeTopic,
		Durable: true,
	})
	if err != nil {
		if closeErr := client.Close(); closeErr != nil {
			slog.Error("Failed to close RabbitMQ client", "error", closeErr)
		}

		return nil, fmt.Errorf("failed to declare exchange %q: %w", exchange, err)
	}

	return &Publisher{
		client:   client,
		exchange: exchange,
	}, nil
}

// Publish sends the event as JSON using its type as the routing key.
func (p *Publisher) Publish(ctx context.Context, event orderevent.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Type, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.client.Channel().Publish(
		p.exchange,
		string(event.Type),
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	return nil
}

// Close releases the underlying connection.
func (p *Publisher) Close() error {
	return p.client.Close()
}
