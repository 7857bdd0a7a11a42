package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mercadito/commerce-api/internal/infrastructure/config"
)

type nopCleaner struct{}

func (nopCleaner) Enqueue(...string) {}

// The mongo driver connects lazily and go-redis dials per command, so the
// full router can be assembled without either server running.
func newTestRouter(t *testing.T) *httptest.Server {
	t.Helper()

	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://localhost:27017"))
	if err != nil {
		t.Fatalf("building mongo client: %v", err)
	}
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Port:      "3000",
		Env:       "test",
		JWTSecret: "secret",
		Upload:    config.UploadConfig{Dir: t.TempDir(), Strategy: "direct"},
	}

	e := NewRouter(cfg, client.Database("commerce_test"), rdb, nopCleaner{}, zerolog.Nop())
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestRouter_OperationalEndpoints(t *testing.T) {
	srv := newTestRouter(t)

	t.Run("liveness", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/health")
		if err != nil {
			t.Fatalf("GET /health: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", res.StatusCode)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/metrics")
		if err != nil {
			t.Fatalf("GET /metrics: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", res.StatusCode)
		}
	})

	t.Run("swagger document", func(t *testing.T) {
		res, err := http.Get(srv.URL + "/swagger/doc.json")
		if err != nil {
			t.Fatalf("GET /swagger/doc.json: %v", err)
		}
		defer res.Body.Close()
		if res.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want 200", res.StatusCode)
		}

		raw, err := io.ReadAll(res.Body)
		if err != nil {
			t.Fatalf("reading body: %v", err)
		}
		body := string(raw)
		for _, path := range []string{"/api/login", "/api/new-product", "/api/user/{id}"} {
			if !strings.Contains(body, path) {
				t.Errorf("document missing path %s", path)
			}
		}
	})
}
