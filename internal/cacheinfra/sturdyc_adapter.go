// Package cacheinfra adapts sturdyc to the cache.Service contract.
package cacheinfra

import (
	"context"
	"strings"

	"github.com/viccon/sturdyc"

	"github.com/goliatone/go-lazy-record/cache"
)

// sturdycService wraps a sturdyc client typed to refresh payloads. The
// fetch signature is fixed by the refresh protocol, so no reflective
// fetch-function plumbing is needed here.
type sturdycService struct {
	client *sturdyc.Client[cache.Payload]
}

// NewSturdycService creates a sturdyc-backed cache service. It validates
// the configuration and initializes the client with the provided settings.
//
// Capacity, NumShards, TTL, and EvictionPercentage go straight to
// sturdyc.New; the remaining settings map to options.
func NewSturdycService(cfg cache.Config) (cache.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	client := sturdyc.New[cache.Payload](
		cfg.Capacity,
		cfg.NumShards,
		cfg.TTL,
		cfg.EvictionPercentage,
		toOptions(cfg)...,
	)
	return &sturdycService{client: client}, nil
}

// toOptions maps the optional config settings to sturdyc options.
func toOptions(cfg cache.Config) []sturdyc.Option {
	var options []sturdyc.Option
	if cfg.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			cfg.EarlyRefresh.MinAsyncRefreshTime,
			cfg.EarlyRefresh.MaxAsyncRefreshTime,
			cfg.EarlyRefresh.SyncRefreshTime,
			cfg.EarlyRefresh.RetryBaseDelay,
		))
	}
	if cfg.MissingRecordStorage {
		options = append(options, sturdyc.WithMissingRecordStorage())
	}
	if cfg.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}
	return options
}

// GetOrFetch implements cache.Service.
func (s *sturdycService) GetOrFetch(ctx context.Context, key string, fetch cache.FetchFn) (cache.Payload, error) {
	return s.client.GetOrFetch(ctx, key, func(ctx context.Context) (cache.Payload, error) {
		return fetch(ctx)
	})
}

// Delete implements cache.Service.
func (s *sturdycService) Delete(ctx context.Context, key string) error {
	s.client.Delete(key)
	return nil
}

// DeleteByPrefix implements cache.Service. sturdyc has no native prefix
// scan over arbitrary prefixes, so this walks the current key set.
func (s *sturdycService) DeleteByPrefix(ctx context.Context, prefix string) error {
	for _, key := range s.client.ScanKeys() {
		if strings.HasPrefix(key, prefix) {
			s.client.Delete(key)
		}
	}
	return nil
}

// InvalidateKeys implements cache.Service.
func (s *sturdycService) InvalidateKeys(ctx context.Context, keys []string) error {
	for _, key := range keys {
		s.client.Delete(key)
	}
	return nil
}
