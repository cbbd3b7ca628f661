package app

import (
	"fmt"

	"alcyxob/workout-tracker/internal/config"
	"alcyxob/workout-tracker/internal/logger"
	"alcyxob/workout-tracker/internal/notify"
)

// NewSender returns the sender chosen by cfg.Driver and a function releasing it.
func NewSender(cfg config.NotificationConfig, log *logger.Logger) (notify.Sender, func() error, error) {
	switch cfg.Driver {
	case "", "log":
		return notify.NewLogSender(log), func() error { return nil }, nil
	case "redis":
		sender, err := notify.NewRedisSender(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			return nil, nil, err
		}
		return sender, sender.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown notification driver %q", cfg.Driver)
	}
}
