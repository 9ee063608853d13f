package appServer

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ds124wfegd/WB_L3/6/internal/pkg/kafka"
)

// TestCloseClients: при остановке закрываются и продюсер, и redis-клиент
func TestCloseClients(t *testing.T) {
	redisClient := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	producer := kafka.NewMockProducer(nil)

	closeClients(producer, redisClient)

	err := redisClient.Ping(context.Background()).Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, redis.ErrClosed)
}
