package di

import (
	"github.com/goliatone/go-lazy-record/cache"
	"github.com/goliatone/go-lazy-record/internal/cacheinfra"
	"github.com/goliatone/go-lazy-record/record"
	"github.com/goliatone/go-lazy-record/refreshcache"
)

// Container wires the refresh caching components together. It manages
// singleton instances of the cache service and key serializer and provides
// a factory for cached refreshers, so embedding applications configure
// caching once and share it across every record type.
type Container struct {
	service cache.Service
	keys    cache.KeySerializer
	config  cache.Config
}

// NewContainer creates a container from the provided cache configuration,
// backed by the sturdyc adapter and the default key serializer.
func NewContainer(config cache.Config) (*Container, error) {
	service, err := cacheinfra.NewSturdycService(config)
	if err != nil {
		return nil, err
	}
	return &Container{
		service: service,
		keys:    cache.NewDefaultKeySerializer(),
		config:  config,
	}, nil
}

// NewContainerWithDefaults creates a container using cache.DefaultConfig.
func NewContainerWithDefaults() (*Container, error) {
	return NewContainer(cache.DefaultConfig())
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.Service {
	return c.service
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keys
}

// Config returns a copy of the cache configuration used by this container.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewCachedRefresher wraps base with the container's shared cache service
// and key serializer, producing a drop-in record.Refresher with caching.
func (c *Container) NewCachedRefresher(base record.Refresher) *refreshcache.CachedRefresher {
	return refreshcache.New(base, c.service, c.keys)
}
