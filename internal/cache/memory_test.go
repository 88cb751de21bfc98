package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := s.Get(ctx, "k"); !ok || v != "v" {
		t.Fatalf("get before expiry = %q, %v", v, ok)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("entry should have expired")
	}
}

func TestMemoryStore_NoTTLAndDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_ = s.Set(ctx, "k", "v", 0)
	if _, ok, _ := s.Get(ctx, "k"); !ok {
		t.Fatalf("entry without ttl missing")
	}

	_ = s.Delete(ctx, "k")
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("entry still present after delete")
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	type plan struct {
		Name string `json:"nombre"`
	}
	if err := SetJSON(ctx, s, "plans", []plan{{Name: "premium"}}, time.Minute); err != nil {
		t.Fatalf("set json: %v", err)
	}

	var got []plan
	ok, err := GetJSON(ctx, s, "plans", &got)
	if err != nil || !ok {
		t.Fatalf("get json: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Name != "premium" {
		t.Fatalf("got %+v", got)
	}

	_ = s.Set(ctx, "broken", "{", 0)
	ok, err = GetJSON(ctx, s, "broken", &got)
	if ok || err != nil {
		t.Fatalf("broken entry: ok=%v err=%v", ok, err)
	}
	if _, present, _ := s.Get(ctx, "broken"); present {
		t.Fatalf("broken entry should be dropped")
	}
}

func TestMemoryStore_SetNX(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if ok, err := s.SetNX(ctx, "k", "first", time.Minute); err != nil || !ok {
		t.Fatalf("first setnx = %v, %v", ok, err)
	}
	if ok, _ := s.SetNX(ctx, "k", "second", time.Minute); ok {
		t.Fatalf("second setnx should not overwrite")
	}
	if v, _, _ := s.Get(ctx, "k"); v != "first" {
		t.Fatalf("value = %q, want first", v)
	}

	now = now.Add(time.Minute)
	if ok, _ := s.SetNX(ctx, "k", "third", time.Minute); !ok {
		t.Fatalf("setnx after expiry should succeed")
	}
}

func TestMemoryStore_SetNXConcurrent(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const n = 32
	var won atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := s.SetNX(ctx, "k", "v", time.Minute); ok {
				won.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := won.Load(); got != 1 {
		t.Fatalf("winners = %d, want 1", got)
	}
}
