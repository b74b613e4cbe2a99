package redis

import (
	"context"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

func NewClient(address, password string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     address,
		Password: password,
		DB:       0,
		Protocol: 2,
	})
}

// Connect returns a client that has answered a PING
func Connect(ctx context.Context, address, password string) (*redis.Client, error) {
	client := NewClient(address, password)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", address)
	}
	return client, nil
}
