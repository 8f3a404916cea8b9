// Package redis stores the storefront session in Redis, for gateways that
// run as disposable containers.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pingTimeout = 5 * time.Second

// Options selects the Redis instance holding the session.
type Options struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
}

// Open dials Redis and checks it answers a PING before handing the client out.
func Open(ctx context.Context, opts Options) (*redis.Client, error) {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = pingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:       opts.Addr,
		Password:   opts.Password,
		DB:         opts.DB,
		ClientName: "storefront",
	})

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis %s: %w", opts.Addr, err)
	}
	return client, nil
}
