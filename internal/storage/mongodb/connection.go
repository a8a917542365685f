// Package mongodb owns the process-wide MongoDB connection.
package mongodb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/kahvecikaan/buildingMicroservices/inventory-api/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// ConnectTimeout bounds both connection establishment and server selection.
const ConnectTimeout = 30 * time.Second

// Connection is an explicitly constructed handle on a MongoDB database.
// It is opened once at startup, shared by all requests and closed once at
// shutdown.
type Connection struct {
	client *mongo.Client
	db     *mongo.Database
	logger hclog.Logger
	once   sync.Once
}

// Open connects to the server described by cfg and verifies the connection
// with a ping.
func Open(ctx context.Context, cfg config.MongoConfig, logger hclog.Logger) (*Connection, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := options.Client().
		ApplyURI(cfg.URI()).
		SetConnectTimeout(ConnectTimeout).
		SetServerSelectionTimeout(ConnectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	logger.Info("Connected to MongoDB", "host", cfg.Host, "port", cfg.Port, "database", cfg.Database)
	return NewConnection(client, cfg.Database, logger), nil
}

// NewConnection wraps an already connected client.
func NewConnection(client *mongo.Client, database string, logger hclog.Logger) *Connection {
	return &Connection{
		client: client,
		db:     client.Database(database),
		logger: logger,
	}
}

func (c *Connection) Database() *mongo.Database {
	return c.db
}

func (c *Connection) Collection(name string) *mongo.Collection {
	return c.db.Collection(name)
}

// Close disconnects the client. Only the first call has any effect.
func (c *Connection) Close(ctx context.Context) error {
	var err error
	c.once.Do(func() {
		c.logger.Info("Closing MongoDB connection")
		if err = c.client.Disconnect(ctx); err != nil {
			c.logger.Error("Unable to disconnect from MongoDB", "error", err)
		}
	})
	return err
}
