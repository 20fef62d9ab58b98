package database

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"bizarre-bazaar/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

const pingTimeout = 5 * time.Second

type Mongo struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	instance *Mongo
	initErr  error
	once     sync.Once
)

// Instance connects once per process; later calls return the first result.
func Instance(globalCtx context.Context, uri, dbName string) (*Mongo, error) {
	once.Do(func() {
		instance, initErr = Connect(globalCtx, uri, dbName)
	})
	return instance, initErr
}

// Connect dials MongoDB with otel command monitoring and verifies it with a
// ping.
func Connect(ctx context.Context, uri, dbName string) (*Mongo, error) {
	if uri == "" || dbName == "" {
		return nil, errors.New("mongo uri and database name are required")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error(ctx, "Failed to connect to MongoDB", slog.String("error", err.Error()))
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Error(ctx, "MongoDB ping failed", slog.String("error", err.Error()))
		_ = client.Disconnect(ctx)
		return nil, err
	}

	logger.Info(ctx, "Connected to MongoDB successfully", slog.String("database", dbName))
	return &Mongo{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

// Ping implements service.Pinger.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, nil)
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
