package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("VALKEY_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("VALKEY_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("skipping integration test: valkey not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestGalleryKey(t *testing.T) {
	if got := GalleryKey(""); got != "gallery:all" {
		t.Errorf("empty category: got %q", got)
	}
	if got := GalleryKey("logos"); got != "gallery:logos" {
		t.Errorf("logos: got %q", got)
	}
}

func TestPageCacheSetGet(t *testing.T) {
	client := testClient(t)
	pc := NewPageCache(client, time.Minute)
	ctx := context.Background()

	key := GalleryKey("logos")
	t.Cleanup(func() { client.Del(ctx, pageKeyPrefix+key) })

	if _, ok := pc.Get(ctx, key); ok {
		t.Fatal("expected miss before set")
	}

	pc.Set(ctx, key, []byte("<html>gallery</html>"))

	html, ok := pc.Get(ctx, key)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(html) != "<html>gallery</html>" {
		t.Errorf("cached html: got %q", html)
	}
}

func TestInvalidateGallery(t *testing.T) {
	client := testClient(t)
	pc := NewPageCache(client, time.Minute)
	ctx := context.Background()

	pc.Set(ctx, GalleryKey(""), []byte("all"))
	pc.Set(ctx, GalleryKey("web-design"), []byte("web"))

	pc.InvalidateGallery(ctx)

	if _, ok := pc.Get(ctx, GalleryKey("")); ok {
		t.Error("unfiltered gallery should be invalidated")
	}
	if _, ok := pc.Get(ctx, GalleryKey("web-design")); ok {
		t.Error("filtered gallery should be invalidated")
	}
}
