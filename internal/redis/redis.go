package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 2 * time.Second

// Client is the connection backing the redis credential store.
type Client struct {
	*goredis.Client
}

type Options struct {
	Addr        string
	Password    string
	DB          int
	PingTimeout time.Duration
}

// New dials redis and fails fast when the server does not answer a PING.
func New(ctx context.Context, opts Options) (*Client, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	timeout := opts.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", opts.Addr, err)
	}

	return &Client{Client: client}, nil
}
