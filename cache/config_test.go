package cache

import (
	"testing"
	"time"
)

func TestDefaultConfig_IsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("expected default config to validate but got: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	base := func() Config {
		return Config{
			Capacity:           100,
			NumShards:          4,
			TTL:                time.Minute,
			EvictionPercentage: 10,
		}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, true},
		{"negative capacity", func(c *Config) { c.Capacity = -1 }, true},
		{"zero shards", func(c *Config) { c.NumShards = 0 }, true},
		{"zero ttl", func(c *Config) { c.TTL = 0 }, true},
		{"eviction percentage too low", func(c *Config) { c.EvictionPercentage = 0 }, true},
		{"eviction percentage too high", func(c *Config) { c.EvictionPercentage = 101 }, true},
		{"negative early refresh", func(c *Config) {
			c.EarlyRefresh = &EarlyRefreshConfig{MinAsyncRefreshTime: -time.Second}
		}, true},
		{"valid early refresh", func(c *Config) {
			c.EarlyRefresh = &EarlyRefreshConfig{
				MinAsyncRefreshTime: time.Second,
				MaxAsyncRefreshTime: 2 * time.Second,
				SyncRefreshTime:     3 * time.Second,
				RetryBaseDelay:      10 * time.Millisecond,
			}
		}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error but got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("expected no error but got: %v", err)
			}
		})
	}
}
