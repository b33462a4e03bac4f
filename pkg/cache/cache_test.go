package cache

import (
	"context"
	"errors"
	"net"
	"os"
	"testing"
	"time"
)

func init() {
	retryDelay = time.Millisecond
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

// exerciseCache runs the behaviour every storing backend shares.
func exerciseCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "layout:a"); err != nil || hit {
		t.Fatalf("Get on empty cache = hit %v, err %v", hit, err)
	}
	if err := c.Set(ctx, "layout:a", []byte(`{"tiles":[]}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "layout:a")
	if err != nil || !hit || string(data) != `{"tiles":[]}` {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if err := c.Delete(ctx, "layout:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "layout:a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete missing key: %v", err)
	}
	if _, err := Lookup(ctx, c, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("Lookup missing key: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	exerciseCache(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(c.path("k"), []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, _ := NewFileCache(t.TempDir())
	_ = c.Set(ctx, "a", []byte("1"), 0)
	_ = c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Clear should drop entries")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("Clear should keep the directory: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	exerciseCache(t, NewMemoryCache())
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); !hit {
		t.Fatal("fresh entry should hit")
	}
	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry", c.Len())
	}
}

func TestMemoryCacheCopiesData(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	buf := []byte("abc")
	_ = c.Set(ctx, "k", buf, 0)
	buf[0] = 'x'
	data, _, _ := c.Get(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("stored data changed to %q", data)
	}
}

func TestMongoCache(t *testing.T) {
	uri := os.Getenv("TILELAY_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TILELAY_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	c, err := NewMongoCache(ctx, uri, "tilelay_test", "cache_"+Hash([]byte(t.Name()))[:8])
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestRedisCache(t *testing.T) {
	url := os.Getenv("TILELAY_TEST_REDIS_URL")
	if url == "" {
		t.Skip("TILELAY_TEST_REDIS_URL not set")
	}
	c, err := NewRedisCache(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exerciseCache(t, c)
}

func TestClassifyRedis(t *testing.T) {
	if classifyRedis(nil) != nil {
		t.Error("classifyRedis(nil) should be nil")
	}
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	if err := classifyRedis(netErr); !IsRetryable(err) || !errors.Is(err, ErrNetwork) {
		t.Errorf("network error not retryable: %v", err)
	}
	plain := errors.New("WRONGTYPE")
	if err := classifyRedis(plain); IsRetryable(err) {
		t.Errorf("command error should not be retryable: %v", err)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", Config{}, false},
		{"none", Config{Backend: "none"}, false},
		{"memory", Config{Backend: "memory"}, false},
		{"file", Config{Backend: "file", Dir: t.TempDir()}, false},
		{"file without dir", Config{Backend: "file"}, true},
		{"redis without url", Config{Backend: "redis"}, true},
		{"mongo without url", Config{Backend: "mongo"}, true},
		{"unknown", Config{Backend: "memcached"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Open(ctx, tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if c != nil {
				c.Close()
			}
		})
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	j1, err := HashJSON(map[string]int{"a": 1, "b": 2})
	if err != nil {
		t.Fatal(err)
	}
	j2, _ := HashJSON(map[string]int{"b": 2, "a": 1})
	if j1 != j2 {
		t.Error("HashJSON should not depend on map order")
	}
	if _, err := HashJSON(make(chan int)); err == nil {
		t.Error("HashJSON should fail for unencodable values")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	base := LayoutKeyOpts{Pattern: "Square Grid Pattern", UnitLength: 50, Scale: 0.2, SurfaceHash: "s1"}
	lk1 := k.LayoutKey("cat", base)
	grout := base
	grout.GroutWidth = 2
	if lk1 == k.LayoutKey("cat", grout) {
		t.Error("grout width should change the layout key")
	}
	if lk1 == k.LayoutKey("other", base) {
		t.Error("catalog hash should change the layout key")
	}
	if lk1 != k.LayoutKey("cat", base) {
		t.Error("LayoutKey should be deterministic")
	}

	ak1 := k.ArtifactKey(lk1, ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey(lk1, ArtifactKeyOpts{Format: "dot"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}

	if got := k.WallKey("east"); got != "wall:east" {
		t.Errorf("WallKey = %q", got)
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "project:bath:")

	if got := scoped.WallKey("east"); got != "project:bath:wall:east" {
		t.Errorf("ScopedKeyer WallKey unexpected: %s", got)
	}
	lk := scoped.LayoutKey("cat", LayoutKeyOpts{})
	if len(lk) < 20 || lk[:13] != "project:bath:" {
		t.Errorf("ScopedKeyer LayoutKey should be prefixed: %s", lk)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	if key := scoped.WallKey("floor"); key != "prefix:wall:floor" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

func TestConfigKeyer(t *testing.T) {
	if got := (Config{}).Keyer().WallKey("east"); got != "wall:east" {
		t.Errorf("unscoped WallKey = %q", got)
	}
	if got := (Config{Prefix: "bath:"}).Keyer().WallKey("east"); got != "bath:wall:east" {
		t.Errorf("scoped WallKey = %q", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(ErrNetwork)
	if err == nil {
		t.Fatal("Retryable should return wrapped error")
	}
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if IsRetryable(ErrNotFound) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return nil
	})
	if err != nil || calls != 1 {
		t.Errorf("success: err %v, calls %d", err, calls)
	}

	// Non-retryable error stops immediately
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return ErrNotFound
	})
	if err != ErrNotFound || calls != 1 {
		t.Errorf("non-retryable: err %v, calls %d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retry: err %v, calls %d", err, calls)
	}

	// Gives up after three attempts
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		return Retryable(ErrNetwork)
	})
	if !errors.Is(err, ErrNetwork) || calls != 3 {
		t.Errorf("exhausted: err %v, calls %d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(ErrNetwork)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
