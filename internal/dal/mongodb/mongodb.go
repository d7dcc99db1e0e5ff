package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/corray333/backend-labs/cam2cart/internal/service/models/order"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const pingTimeout = 5 * time.Second

// Client represents a MongoDB client.
// It is created once at startup and shared by every request.
type Client struct {
	client     *mongo.Client
	database   string
	collection string
	connectErr error
}

// Config holds the connection settings for NewClientWithConfig.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// NewClient creates a MongoDB client from the mongo.* configuration keys.
// Connection problems are logged and do not stop startup: operations on the
// returned client fail until the server becomes reachable.
func NewClient(ctx context.Context) *Client {
	return NewClientWithConfig(ctx, Config{
		URI:        viper.GetString("mongo.uri"),
		Database:   viper.GetString("mongo.database"),
		Collection: viper.GetString("mongo.collection"),
	})
}

// NewClientWithConfig creates a MongoDB client from explicit settings.
func NewClientWithConfig(ctx context.Context, cfg Config) *Client {
	c := &Client{
		database:   cfg.Database,
		collection: cfg.Collection,
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		slog.Error("MongoDB connection error", "error", err)
		c.connectErr = err

		return c
	}
	c.client = client

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		slog.Error("MongoDB connection error", "error", err)
	} else {
		slog.Info("Connected to MongoDB", "database", c.database)
	}

	return c
}

// Collection returns the orders collection.
func (c *Client) Collection() (*mongo.Collection, error) {
	if c.client == nil {
		return nil, fmt.Errorf("%w: %v", order.ErrStoreUnavailable, c.connectErr)
	}

	return c.client.Database(c.database).Collection(c.collection), nil
}

// Ping checks that the server is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("%w: %v", order.ErrStoreUnavailable, c.connectErr)
	}

	return c.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client for graceful shutdown.
func (c *Client) Close(ctx context.Context) error {
	if c.client == nil {
		return nil
	}

	return c.client.Disconnect(ctx)
}
