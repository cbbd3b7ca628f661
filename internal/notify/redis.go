package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"alcyxob/workout-tracker/internal/logger"
)

// RedisSender publishes notifications as JSON on a Redis pub/sub channel.
type RedisSender struct {
	log     *logger.Logger
	rdb     goredis.UniversalClient
	channel string
}

// NewRedisSender connects to addr and verifies the connection with a ping.
func NewRedisSender(log *logger.Logger, addr, channel string) (*RedisSender, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address required")
	}
	if channel == "" {
		channel = "workout-notifications"
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return newRedisSender(log, rdb, channel), nil
}

func newRedisSender(log *logger.Logger, rdb goredis.UniversalClient, channel string) *RedisSender {
	return &RedisSender{
		log:     log.With("component", "RedisSender", "channel", channel),
		rdb:     rdb,
		channel: channel,
	}
}

func (s *RedisSender) Send(ctx context.Context, n Notification) error {
	raw, err := json.Marshal(n)
	if err != nil {
		return err
	}
	if err := s.rdb.Publish(ctx, s.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	s.log.Debug("Notification published", "schedule_id", n.ScheduleID)
	return nil
}

func (s *RedisSender) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
