// Package mongo provides MongoDB-backed catalog stores. Movies live in the
// "movie" collection and categories in "category", one document per record.
package mongo

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection names.
const (
	MovieCollection    = "movie"
	CategoryCollection = "category"
)

// Config describes how to reach the database. URI wins over the individual
// host fields when set.
type Config struct {
	URI      string
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Timeout  time.Duration
}

// ClientOptions translates cfg into driver options. Credentials authenticate
// against the catalog database itself.
func ClientOptions(cfg Config) *options.ClientOptions {
	uri := cfg.URI
	if uri == "" {
		host := cfg.Host
		if host == "" {
			host = "localhost"
		}
		port := cfg.Port
		if port == 0 {
			port = 27017
		}
		uri = "mongodb://" + net.JoinHostPort(host, strconv.Itoa(port))
	}
	opts := options.Client().ApplyURI(uri)
	if cfg.URI == "" && cfg.User != "" {
		opts.SetAuth(options.Credential{
			Username:   cfg.User,
			Password:   cfg.Password,
			AuthSource: cfg.Database,
		})
	}
	if cfg.Timeout > 0 {
		opts.SetConnectTimeout(cfg.Timeout)
		opts.SetServerSelectionTimeout(cfg.Timeout)
	}
	return opts
}

// Client owns the single driver connection shared by both stores.
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects, pings the primary, and ensures the category index.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Database == "" {
		return nil, fmt.Errorf("mongo.database is required")
	}
	client, err := mongo.Connect(ClientOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	c := &Client{client: client, db: client.Database(cfg.Database)}
	if err := c.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := c.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return c, nil
}

// EnsureIndexes creates the indexes the stores rely on: unique category
// names and the two sort keys used by the movie pages.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(CategoryCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create category index: %w", err)
	}
	_, err = c.db.Collection(MovieCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "title", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create movie indexes: %w", err)
	}
	return nil
}

// Ping checks the primary is reachable.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongo: %w", err)
	}
	return nil
}

// Close disconnects the driver.
func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.client == nil {
		return nil
	}
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}
