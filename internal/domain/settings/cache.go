package settings

import "time"

type Cache interface {
	Get() (*Settings, bool)
	Set(s *Settings, ttl time.Duration)
	Invalidate()
}

type noopCache struct{}

func (noopCache) Get() (*Settings, bool)       { return nil, false }
func (noopCache) Set(*Settings, time.Duration) {}
func (noopCache) Invalidate()                  {}

func NoopCache() Cache {
	return noopCache{}
}
