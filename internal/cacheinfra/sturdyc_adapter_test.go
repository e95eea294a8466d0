package cacheinfra

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-lazy-record/cache"
)

func testConfig() cache.Config {
	return cache.Config{
		Capacity:           100,
		NumShards:          4,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	}
}

func newTestService(t *testing.T) cache.Service {
	t.Helper()

	svc, err := NewSturdycService(testConfig())
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	return svc
}

func countingFetch(data map[string]any, calls *int) cache.FetchFn {
	return func(ctx context.Context) (cache.Payload, error) {
		*calls++
		return cache.Payload{Data: data, Loaded: true}, nil
	}
}

func TestNewSturdycService_RejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Capacity = 0

	if _, err := NewSturdycService(cfg); err == nil {
		t.Error("expected invalid config to be rejected")
	}
}

func TestGetOrFetch_CachesPayload(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	calls := 0
	fetch := countingFetch(map[string]any{"email": "a@b.c"}, &calls)

	first, err := svc.GetOrFetch(ctx, "user::u-1", fetch)
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	if first.Data["email"] != "a@b.c" || !first.Loaded {
		t.Errorf("unexpected payload: %+v", first)
	}

	second, err := svc.GetOrFetch(ctx, "user::u-1", fetch)
	if err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	if second.Data["email"] != "a@b.c" {
		t.Errorf("unexpected cached payload: %+v", second)
	}
	if calls != 1 {
		t.Errorf("expected a single origin fetch, got %d", calls)
	}
}

func TestGetOrFetch_FetchErrorPropagates(t *testing.T) {
	svc := newTestService(t)

	boom := errors.New("origin down")
	_, err := svc.GetOrFetch(context.Background(), "user::u-1", func(ctx context.Context) (cache.Payload, error) {
		return cache.Payload{}, boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected fetch error to propagate, got: %v", err)
	}
}

func TestDelete_ForcesRefetch(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	calls := 0
	fetch := countingFetch(map[string]any{"email": "a@b.c"}, &calls)

	if _, err := svc.GetOrFetch(ctx, "user::u-1", fetch); err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	if err := svc.Delete(ctx, "user::u-1"); err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	if _, err := svc.GetOrFetch(ctx, "user::u-1", fetch); err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected refetch after delete, got %d calls", calls)
	}
}

func TestDeleteByPrefix_RemovesMatchingKeys(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	userCalls, noteCalls := 0, 0
	userFetch := countingFetch(map[string]any{"kind": "user"}, &userCalls)
	noteFetch := countingFetch(map[string]any{"kind": "note"}, &noteCalls)

	svc.GetOrFetch(ctx, "user::u-1", userFetch)
	svc.GetOrFetch(ctx, "user::u-2", userFetch)
	svc.GetOrFetch(ctx, "note::n-1", noteFetch)

	if err := svc.DeleteByPrefix(ctx, "user::"); err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}

	svc.GetOrFetch(ctx, "user::u-1", userFetch)
	svc.GetOrFetch(ctx, "note::n-1", noteFetch)

	if userCalls != 3 {
		t.Errorf("expected user keys refetched after prefix delete, got %d calls", userCalls)
	}
	if noteCalls != 1 {
		t.Errorf("expected note key untouched by prefix delete, got %d calls", noteCalls)
	}
}

func TestInvalidateKeys_RemovesEachKey(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	calls := 0
	fetch := countingFetch(map[string]any{"kind": "user"}, &calls)

	svc.GetOrFetch(ctx, "user::u-1", fetch)
	svc.GetOrFetch(ctx, "user::u-2", fetch)

	if err := svc.InvalidateKeys(ctx, []string{"user::u-1", "user::u-2"}); err != nil {
		t.Fatalf("expected no error but got: %v", err)
	}

	svc.GetOrFetch(ctx, "user::u-1", fetch)
	svc.GetOrFetch(ctx, "user::u-2", fetch)
	if calls != 4 {
		t.Errorf("expected both keys refetched after invalidation, got %d calls", calls)
	}
}
