package stats

import (
	"context"
	"strconv"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/ds124wfegd/WB_L3/6/internal/entity"
)

const (
	OpMeme    = "memes_created"
	OpQuote   = "quotes_created"
	OpFilter  = "filters_applied"
	OpSticker = "stickers_created"
)

type Counter interface {
	IncrOp(user string, op string) error
	UserStats(user string) (*entity.UserStats, error)
	TotalStats() (map[string]int64, error)
}

type redisCounter struct {
	client *redis.Client
	ctx    context.Context
}

// NewCounter подключается к Redis; если он недоступен, счётчики живут в памяти
func NewCounter(client *redis.Client) Counter {
	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.Warnf("Redis is unavailable, falling back to in-memory counters: %v", err)
		return NewMemoryCounter()
	}

	return &redisCounter{client: client, ctx: ctx}
}

func (c *redisCounter) IncrOp(user string, op string) error {
	if err := c.client.HIncrBy(c.ctx, userStatsKey(user), op, 1).Err(); err != nil {
		return err
	}
	return c.client.HIncrBy(c.ctx, "stats:global", op, 1).Err()
}

func (c *redisCounter) UserStats(user string) (*entity.UserStats, error) {
	fields, err := c.client.HGetAll(c.ctx, userStatsKey(user)).Result()
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(fields))
	for op, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		counts[op] = n
	}

	return statsFromMap(user, counts), nil
}

func (c *redisCounter) TotalStats() (map[string]int64, error) {
	fields, err := c.client.HGetAll(c.ctx, "stats:global").Result()
	if err != nil {
		return nil, err
	}

	totals := make(map[string]int64, len(fields))
	for op, raw := range fields {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		totals[op] = n
	}

	return totals, nil
}

func userStatsKey(user string) string {
	return "stats:user:" + user
}

type memoryCounter struct {
	mu     sync.Mutex
	users  map[string]map[string]int64
	global map[string]int64
}

func NewMemoryCounter() Counter {
	return &memoryCounter{
		users:  make(map[string]map[string]int64),
		global: make(map[string]int64),
	}
}

func (c *memoryCounter) IncrOp(user string, op string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.users[user] == nil {
		c.users[user] = make(map[string]int64)
	}
	c.users[user][op]++
	c.global[op]++
	return nil
}

func (c *memoryCounter) UserStats(user string) (*entity.UserStats, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return statsFromMap(user, c.users[user]), nil
}

func (c *memoryCounter) TotalStats() (map[string]int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	totals := make(map[string]int64, len(c.global))
	for op, n := range c.global {
		totals[op] = n
	}
	return totals, nil
}

func statsFromMap(user string, counts map[string]int64) *entity.UserStats {
	return &entity.UserStats{
		User:            user,
		MemesCreated:    counts[OpMeme],
		QuotesCreated:   counts[OpQuote],
		FiltersApplied:  counts[OpFilter],
		StickersCreated: counts[OpSticker],
	}
}
