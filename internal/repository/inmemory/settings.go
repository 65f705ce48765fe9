package inmemory

import (
	"sync"
	"time"

	settingsdomain "social-care-go/internal/domain/settings"
)

// SettingsCache is a process-local TTL cache for the settings row.
type SettingsCache struct {
	mu        sync.RWMutex
	value     *settingsdomain.Settings
	expiresAt time.Time
}

func NewSettingsCache() *SettingsCache {
	return &SettingsCache{}
}

func (c *SettingsCache) Get() (*settingsdomain.Settings, bool) {
	now := time.Now()

	c.mu.RLock()
	value, expiresAt := c.value, c.expiresAt
	c.mu.RUnlock()

	if value == nil {
		return nil, false
	}
	if !expiresAt.After(now) {
		c.Invalidate()
		return nil, false
	}

	copied := *value
	return &copied, true
}

func (c *SettingsCache) Set(s *settingsdomain.Settings, ttl time.Duration) {
	if s == nil || ttl <= 0 {
		return
	}
	copied := *s

	c.mu.Lock()
	c.value = &copied
	c.expiresAt = time.Now().Add(ttl)
	c.mu.Unlock()
}

func (c *SettingsCache) Invalidate() {
	c.mu.Lock()
	c.value = nil
	c.expiresAt = time.Time{}
	c.mu.Unlock()
}
