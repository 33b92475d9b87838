// Package ratelimit provides per-client token bucket limiters, either local
// to the process or shared through Redis.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

type Limiter interface {
	// Allow reports whether the client identified by key may make one more
	// request now.
	Allow(ctx context.Context, key string) (bool, error)
}

const idleClientTTL = 3 * time.Minute

type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Memory keeps one token bucket per key. Buckets idle for longer than three
// minutes are swept once a minute.
type Memory struct {
	mu      sync.Mutex
	clients map[string]*client
	rps     float64
	burst   int
}

func NewMemory(rps float64, burst int) *Memory {
	m := &Memory{
		clients: map[string]*client{},
		rps:     rps,
		burst:   burst,
	}

	go func() {
		for {
			<-time.After(time.Minute)
			m.sweep(time.Now())
		}
	}()

	return m
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.clients[key]
	if !ok {
		c = &client{limiter: rate.NewLimiter(rate.Limit(m.rps), m.burst)}
		m.clients[key] = c
	}

	c.lastSeen = time.Now()
	return c.limiter.Allow(), nil
}

func (m *Memory) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for key, c := range m.clients {
		if now.Sub(c.lastSeen) > idleClientTTL {
			delete(m.clients, key)
		}
	}
}

var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local burst = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_ms')
local tokens = tonumber(state[1])
local last_ms = tonumber(state[2])
if tokens == nil or last_ms == nil then
    tokens = burst
    last_ms = now_ms
end

local elapsed = math.max(0, now_ms - last_ms)
tokens = math.min(burst, tokens + (elapsed / 1000) * rate)

local allowed = 0
if tokens >= 1 then
    allowed = 1
    tokens = tokens - 1
end

redis.call('HSET', key, 'tokens', tokens, 'last_ms', now_ms)
redis.call('EXPIRE', key, ttl_seconds)
return allowed
`)

// Redis keeps the token buckets in Redis so that several instances of the
// service share one budget per client.
type Redis struct {
	client *redis.Client
	prefix string
	rps    float64
	burst  int
	now    func() time.Time
}

func NewRedis(client *redis.Client, rps float64, burst int) *Redis {
	return &Redis{
		client: client,
		prefix: "moviesinfo:rl:",
		rps:    rps,
		burst:  burst,
		now:    time.Now,
	}
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	args := []any{
		r.now().UnixMilli(),
		r.rps,
		r.burst,
		int64(idleClientTTL / time.Second),
	}

	allowed, err := tokenBucket.Run(ctx, r.client, []string{r.prefix + key}, args...).Int()
	if err != nil {
		return false, err
	}

	return allowed == 1, nil
}
