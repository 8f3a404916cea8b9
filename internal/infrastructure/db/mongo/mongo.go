// Package mongo stores the storefront session in a MongoDB collection.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Options selects the deployment and database holding the session.
type Options struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Open connects, pings the primary and returns the client with the chosen
// database. Callers disconnect the client on shutdown.
func Open(ctx context.Context, opts Options) (*mongo.Client, *mongo.Database, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(opts.URI).
		SetAppName("storefront").
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(opts.Database), nil
}
