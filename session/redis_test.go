package session

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisStore(rdb, "ct-test"), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	want := sampleRecord()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if *got != *want {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, want)
	}
}

func TestRedisStoreEmpty(t *testing.T) {
	s, _ := newRedisStore(t)

	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestRedisStoreCorruptBlobDiscarded(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	mr.Set("ct-test:session", "garbage")

	_, err := s.Load(ctx)
	if !errors.Is(err, ErrNoSession) || !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected ErrNoSession+ErrCorruptRecord, got %v", err)
	}
	if mr.Exists("ct-test:session") {
		t.Fatalf("corrupt blob should have been deleted")
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	s, mr := newRedisStore(t)
	mr.Close()

	_, err := s.Load(context.Background())
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}

func TestRedisStoreClearIdempotent(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, sampleRecord()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("first clear failed: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("second clear failed: %v", err)
	}
	if _, err := s.Load(ctx); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after clear, got %v", err)
	}
}
