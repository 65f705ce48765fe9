package redis

import (
	"context"
	"encoding/json"
	"time"

	settingsdomain "social-care-go/internal/domain/settings"
	"social-care-go/pkg/logger"
)

const settingsKey = "social-care:settings"

// SettingsCache shares the settings row across instances through Redis.
// Cache failures are logged and treated as misses; the repository stays
// the source of truth.
type SettingsCache struct {
	client *Client
	log    logger.Logger
}

func NewSettingsCache(client *Client, log logger.Logger) *SettingsCache {
	return &SettingsCache{client: client, log: log}
}

func (c *SettingsCache) Get() (*settingsdomain.Settings, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	payload, err := c.client.Get(ctx, settingsKey).Bytes()
	if err != nil {
		return nil, false
	}

	var s settingsdomain.Settings
	if err := json.Unmarshal(payload, &s); err != nil {
		c.log.Warn("settings cache: corrupt payload, dropping", "err", err)
		c.Invalidate()
		return nil, false
	}
	return &s, true
}

func (c *SettingsCache) Set(s *settingsdomain.Settings, ttl time.Duration) {
	if s == nil || ttl <= 0 {
		return
	}

	payload, err := json.Marshal(s)
	if err != nil {
		c.log.Warn("settings cache: marshal failed", "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.client.Set(ctx, settingsKey, payload, ttl).Err(); err != nil {
		c.log.Warn("settings cache: set failed", "err", err)
	}
}

func (c *SettingsCache) Invalidate() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := c.client.Del(ctx, settingsKey).Err(); err != nil {
		c.log.Warn("settings cache: invalidate failed", "err", err)
	}
}
