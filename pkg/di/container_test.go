package di

import (
	"context"
	"testing"
	"time"

	"github.com/goliatone/go-lazy-record/cache"
	"github.com/goliatone/go-lazy-record/record"
	"github.com/goliatone/go-lazy-record/schema"
)

func TestNewContainer_RejectsInvalidConfig(t *testing.T) {
	cfg := cache.DefaultConfig()
	cfg.Capacity = 0

	if _, err := NewContainer(cfg); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}

func TestNewContainerWithDefaults(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}

	if container.CacheService() == nil {
		t.Error("expected a cache service instance")
	}
	if container.KeySerializer() == nil {
		t.Error("expected a key serializer instance")
	}
	if container.Config().Capacity != cache.DefaultConfig().Capacity {
		t.Errorf("expected default capacity, got %d", container.Config().Capacity)
	}
}

func TestContainer_SingletonComponents(t *testing.T) {
	container, err := NewContainerWithDefaults()
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}

	if container.CacheService() != container.CacheService() {
		t.Error("expected the same cache service instance on every call")
	}
	if container.KeySerializer() != container.KeySerializer() {
		t.Error("expected the same key serializer instance on every call")
	}
}

func TestNewCachedRefresher_EndToEnd(t *testing.T) {
	cfg := cache.Config{
		Capacity:           100,
		NumShards:          4,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	}
	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}

	calls := 0
	origin := record.RefresherFunc(func(ctx context.Context, rec *record.Record) (map[string]any, error) {
		calls++
		rec.MarkFullyLoaded()
		return map[string]any{"email": "ada@example.com"}, nil
	})
	cached := container.NewCachedRefresher(origin)

	users := schema.New("user")
	users.MustDeclare("id", schema.Required(), schema.Identity())
	users.MustDeclare("email")

	for i := 0; i < 2; i++ {
		rec, err := record.New(users, map[string]any{"id": "u-1"}, record.WithRefresher(cached))
		if err != nil {
			t.Fatalf("expected no error but got: %v", err)
		}
		if got := rec.Get("email"); got != "ada@example.com" {
			t.Errorf("expected refreshed email, got %v", got)
		}
	}

	if calls != 1 {
		t.Errorf("expected the shared cache to serve the second instance, got %d origin calls", calls)
	}
}
