package fetch

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetCachesWithinTTL(t *testing.T) {
	c := New[int](time.Minute)
	var calls atomic.Int32
	load := func(ctx context.Context) (int, error) {
		calls.Add(1)
		return 42, nil
	}

	for i := 0; i < 5; i++ {
		v, err := c.Get(context.Background(), "proj-1", load)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if v != 42 {
			t.Fatalf("Get = %d, want 42", v)
		}
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("load called %d times within TTL, want 1", got)
	}
}

func TestGetRefetchesAfterTTL(t *testing.T) {
	c := New[int](10 * time.Millisecond)
	var calls atomic.Int32
	load := func(ctx context.Context) (int, error) {
		calls.Add(1)
		return int(calls.Load()), nil
	}

	if v, _ := c.Get(context.Background(), "k", load); v != 1 {
		t.Fatalf("first Get = %d, want 1", v)
	}
	time.Sleep(20 * time.Millisecond)
	if v, _ := c.Get(context.Background(), "k", load); v != 2 {
		t.Fatalf("Get after expiry = %d, want 2", v)
	}
}

func TestEmptyKeyIsDisabled(t *testing.T) {
	c := New[[]string](time.Minute)
	called := false
	v, err := c.Get(context.Background(), "", func(ctx context.Context) ([]string, error) {
		called = true
		return []string{"x"}, nil
	})
	if err != nil {
		t.Fatalf("disabled Get returned error: %v", err)
	}
	if v != nil {
		t.Errorf("disabled Get = %v, want zero value", v)
	}
	if called {
		t.Error("disabled Get must not call load")
	}
	if c.Loading("") {
		t.Error("disabled key must not report loading")
	}
}

func TestConcurrentGetsShareOneLoad(t *testing.T) {
	c := New[int](time.Minute)
	var calls atomic.Int32
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Get(context.Background(), "k", load)
			if err != nil || v != 7 {
				t.Errorf("Get = (%d, %v), want (7, nil)", v, err)
			}
		}()
	}
	// Let the goroutines pile up on the flight, then release.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Errorf("load called %d times for concurrent Gets, want 1", got)
	}
}

func TestErrorNotCached(t *testing.T) {
	c := New[int](time.Minute)
	var calls atomic.Int32
	load := func(ctx context.Context) (int, error) {
		if calls.Add(1) == 1 {
			return 0, errors.New("boom")
		}
		return 9, nil
	}

	if _, err := c.Get(context.Background(), "k", load); err == nil {
		t.Fatal("expected error from first load")
	}
	v, err := c.Get(context.Background(), "k", load)
	if err != nil || v != 9 {
		t.Fatalf("Get after failed load = (%d, %v), want (9, nil)", v, err)
	}
}

func TestInvalidateDiscardsInFlightResult(t *testing.T) {
	c := New[int](time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})
	load := func(ctx context.Context) (int, error) {
		close(started)
		<-release
		return 1, nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Get(context.Background(), "k", load)
	}()

	<-started
	c.Invalidate("k")
	close(release)
	<-done

	// The abandoned result must not have been applied.
	if _, ok := c.Peek("k"); ok {
		t.Error("result of invalidated in-flight load was stored")
	}

	v, err := c.Get(context.Background(), "k", func(ctx context.Context) (int, error) {
		return 2, nil
	})
	if err != nil || v != 2 {
		t.Fatalf("Get after invalidate = (%d, %v), want (2, nil)", v, err)
	}
}

func TestLoading(t *testing.T) {
	c := New[int](time.Minute)
	if c.Loading("k") {
		t.Error("Loading true with nothing in flight")
	}

	started := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_, _ = c.Get(context.Background(), "k", func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 1, nil
		})
	}()

	<-started
	if !c.Loading("k") {
		t.Error("Loading false during first in-flight load")
	}
	close(release)
}

func TestKey(t *testing.T) {
	if Key("") != "" {
		t.Error("empty scope must yield the disabled key")
	}
	if Key("", "extra") != "" {
		t.Error("extras must not enable an absent scope")
	}
	if Key("p") == "" {
		t.Error("scope-only key must be enabled")
	}
	if Key("p", "a") == Key("p", "b") {
		t.Error("distinct extras must yield distinct keys")
	}
	if Key("p") == Key("p", "") {
		t.Error("scope-only and scope+empty-extra must stay distinct")
	}
}
