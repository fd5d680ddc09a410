package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connector holds the single process-wide Mongo connection. The connection is
// established lazily on first use and memoized; a failed connect leaves the
// memo empty so the next call retries.
type Connector struct {
	uri            string
	database       string
	connectTimeout time.Duration

	mu     sync.Mutex
	client *mongo.Client
	db     *mongo.Database
}

func NewConnector(uri, database string, connectTimeout time.Duration) *Connector {
	return &Connector{
		uri:            uri,
		database:       database,
		connectTimeout: connectTimeout,
	}
}

// Database returns the memoized handle, connecting if necessary.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db, nil
	}

	connectCtx, cancel := context.WithTimeout(ctx, c.connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(c.uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	c.client = client
	c.db = client.Database(c.database)
	return c.db, nil
}

// Close disconnects the memoized client, if one was ever established.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	c.db = nil
	return err
}
