package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestLimiter(cfg *Config, start time.Time) (*Limiter, *time.Time) {
	l := NewLimiter(cfg)
	now := start
	l.now = func() time.Time { return now }
	return l, &now
}

func TestLimiter_Burst(t *testing.T) {
	cfg := &Config{Enabled: true, Limit: 60, Window: time.Minute, Burst: 3}
	l, _ := newTestLimiter(cfg, time.Unix(1000, 0))

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("1.2.3.4")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		if info.Remaining != 2-i {
			t.Errorf("Expected %d remaining after request %d, got %d", 2-i, i+1, info.Remaining)
		}
	}

	allowed, info := l.Allow("1.2.3.4")
	if allowed {
		t.Fatal("Expected 4th request to be denied")
	}
	if info.RetryAfter != time.Second {
		t.Errorf("Expected retry after 1s, got %v", info.RetryAfter)
	}
}

func TestLimiter_Refill(t *testing.T) {
	cfg := &Config{Enabled: true, Limit: 60, Window: time.Minute, Burst: 1}
	l, now := newTestLimiter(cfg, time.Unix(1000, 0))

	if ok, _ := l.Allow("c"); !ok {
		t.Fatal("Expected first request to be allowed")
	}
	if ok, _ := l.Allow("c"); ok {
		t.Fatal("Expected second request to be denied")
	}

	*now = now.Add(time.Second)
	if ok, _ := l.Allow("c"); !ok {
		t.Error("Expected request to be allowed after refill")
	}
}

func TestLimiter_DeniedRequestsDoNotConsume(t *testing.T) {
	cfg := &Config{Enabled: true, Limit: 60, Window: time.Minute, Burst: 1}
	l, now := newTestLimiter(cfg, time.Unix(1000, 0))

	l.Allow("c")
	for i := 0; i < 5; i++ {
		l.Allow("c")
	}

	*now = now.Add(time.Second)
	if ok, _ := l.Allow("c"); !ok {
		t.Error("Expected denied requests not to push the refill back")
	}
}

func TestLimiter_PerClient(t *testing.T) {
	cfg := &Config{Enabled: true, Limit: 1, Window: time.Hour, Burst: 1}
	l, _ := newTestLimiter(cfg, time.Unix(1000, 0))

	if ok, _ := l.Allow("a"); !ok {
		t.Fatal("Expected client a to be allowed")
	}
	if ok, _ := l.Allow("b"); !ok {
		t.Fatal("Expected client b to have its own bucket")
	}
	if ok, _ := l.Allow("a"); ok {
		t.Fatal("Expected client a to be limited")
	}
}

func TestLimiter_DisabledAndExempt(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
	}{
		{"disabled", &Config{Enabled: false, Limit: 1, Window: time.Hour}},
		{"exempt", &Config{Enabled: true, Limit: 1, Window: time.Hour, Burst: 1, Exempt: map[string]bool{"10.0.0.1": true}}},
		{"zero limit", &Config{Enabled: true, Limit: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := newTestLimiter(tt.cfg, time.Unix(1000, 0))
			for i := 0; i < 10; i++ {
				if ok, _ := l.Allow("10.0.0.1"); !ok {
					t.Fatalf("Expected request %d to be allowed", i+1)
				}
			}
		})
	}
}

func TestLimiter_SweepsIdleClients(t *testing.T) {
	cfg := &Config{Enabled: true, Limit: 10, Window: time.Minute, IdleTTL: time.Minute}
	l, now := newTestLimiter(cfg, time.Unix(1000, 0))

	for i := 0; i < 5; i++ {
		l.Allow(fmt.Sprintf("client-%d", i))
	}
	if got := l.Clients(); got != 5 {
		t.Fatalf("Expected 5 clients, got %d", got)
	}

	*now = now.Add(2 * time.Minute)
	l.Allow("fresh")
	if got := l.Clients(); got != 1 {
		t.Errorf("Expected idle clients to be swept, %d remain", got)
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	cfg := &Config{Enabled: true, Limit: 100, Window: time.Hour, Burst: 100}
	l := NewLimiter(cfg)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("shared"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowed)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DOCFORGE_RATE_LIMIT", "12")
	t.Setenv("DOCFORGE_RATE_LIMIT_WINDOW", "30s")
	t.Setenv("DOCFORGE_RATE_LIMIT_EXEMPT", "127.0.0.1, ::1")

	cfg := LoadConfig()
	if !cfg.Enabled || cfg.Limit != 12 || cfg.Window != 30*time.Second {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if !cfg.Exempt["127.0.0.1"] || !cfg.Exempt["::1"] {
		t.Errorf("Expected exempt list to be parsed, got %v", cfg.Exempt)
	}

	t.Setenv("DOCFORGE_RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}
