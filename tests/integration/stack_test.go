package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	tc_redis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"

	"go-bars-app/internal/adapter/api/rest"
	adapter_redis "go-bars-app/internal/adapter/cache/redis"
	"go-bars-app/internal/adapter/identity"
	"go-bars-app/internal/adapter/places/google"
	repo "go-bars-app/internal/adapter/storage/postgres"
	"go-bars-app/internal/core/service"
	"go-bars-app/internal/observability"
)

const jwtSecret = "test-secret"

// stack is the full application wired against real Postgres and Redis and a
// fake Places API.
type stack struct {
	db       *pgxpool.Pool
	service  *service.Service
	verifier *identity.JWTVerifier
	server   *httptest.Server
}

// placeCoordinates are served by the fake Places API; unknown ids get a 404-style status.
var placeCoordinates = map[string][2]float64{
	"bar-a": {51.5101, -0.1340},
	"bar-b": {51.5155, -0.0922},
	"bar-c": {51.5033, -0.1196},
}

func fakePlaces(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("placeid")
	w.Header().Set("Content-Type", "application/json")
	coords, ok := placeCoordinates[id]
	if !ok {
		_, _ = io.WriteString(w, `{"status":"NOT_FOUND"}`)
		return
	}
	name := "Bar " + strings.ToUpper(strings.TrimPrefix(id, "bar-"))
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status": "OK",
		"result": map[string]any{
			"place_id":               id,
			"name":                   name,
			"formatted_phone_number": "020 7946 0000",
			"vicinity":               fmt.Sprintf("%s, London", name),
			"geometry":               map[string]any{"location": map[string]any{"lat": coords[0], "lng": coords[1]}},
			"types":                  []string{"bar"},
		},
	})
}

func setupStack(t *testing.T) *stack {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(10*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate postgres: %v", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get pg connection string: %v", err)
	}

	redisContainer, err := tc_redis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis: %v", err)
	}
	t.Cleanup(func() {
		if err := redisContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis: %v", err)
		}
	})

	redisConnStr, err := redisContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	dbPool, err := pgxpool.New(ctx, pgConnStr)
	if err != nil {
		t.Fatalf("failed to connect to postgres: %v", err)
	}
	t.Cleanup(dbPool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := repo.RunMigrations(ctx, dbPool, logger); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	cache := adapter_redis.NewAdapter(strings.TrimPrefix(redisConnStr, "redis://"))
	t.Cleanup(func() { _ = cache.Close() })

	places := httptest.NewServer(http.HandlerFunc(fakePlaces))
	t.Cleanup(places.Close)
	gateway, err := google.NewGateway("AIzaTestKey", logger, google.WithBaseURL(places.URL), google.WithHTTPClient(places.Client()))
	if err != nil {
		t.Fatalf("failed to create gateway: %v", err)
	}

	favRepo := observability.NewInstrumentedRepository(repo.NewRepository(dbPool))
	workflow := observability.NewInstrumentedWorkflow(service.NewWorkflow(favRepo, logger))
	svc := service.NewService(
		favRepo,
		repo.NewUserRepository(dbPool),
		gateway,
		workflow,
		observability.NewInstrumentedCache(cache),
		logger,
	)

	verifier := identity.NewJWTVerifier(jwtSecret)
	handler := rest.NewHandler(svc, rest.ContextIdentity{}, logger)
	server := httptest.NewServer(rest.NewRouter(handler, identity.Chain{verifier}, rest.RequestID))
	t.Cleanup(server.Close)

	return &stack{db: dbPool, service: svc, verifier: verifier, server: server}
}

func (s *stack) token(t *testing.T, userID string) string {
	t.Helper()
	tok, err := s.verifier.Sign(userID, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}
