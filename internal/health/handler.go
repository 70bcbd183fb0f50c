package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink/internal/ratelimit"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"

	healthy   = "healthy"
	unhealthy = "unhealthy"

	defaultCheckTimeout = 2 * time.Second
)

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts a redis client to Checker.
type RedisChecker struct {
	client redis.Cmdable
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client redis.Cmdable) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PostgresChecker adapts a pgx pool to Checker.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a new PostgreSQL health checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// Ping acquires a connection and pings the database.
func (p *PostgresChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Handler reports the status of every registered dependency.
type Handler struct {
	checkers map[string]Checker
	timeout  time.Duration
}

// NewHandler creates a health handler for the named checkers.
func NewHandler(checkers map[string]Checker) *Handler {
	return &Handler{checkers: checkers, timeout: defaultCheckTimeout}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status string            `example:"ok" json:"status"`
		Checks map[string]string `json:"checks"`
		Failed []string          `json:"failed,omitempty"`
	}
}

// Check pings each dependency with its own timeout. A failing dependency
// degrades the status but never fails the request.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = StatusOK
	resp.Body.Checks = make(map[string]string, len(h.checkers))

	for name, checker := range h.checkers {
		checkCtx, cancel := context.WithTimeout(ctx, h.timeout)
		err := checker.Ping(checkCtx)

		cancel()

		if err != nil {
			resp.Body.Checks[name] = unhealthy
			resp.Body.Status = StatusDegraded
			resp.Body.Failed = append(resp.Body.Failed, name)

			continue
		}

		resp.Body.Checks[name] = healthy
	}

	sort.Strings(resp.Body.Failed)

	return resp, nil
}

// RegisterRoutes registers the health route. It is exempt from rate limiting.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{Disabled: true},
		},
	}, h.Check)
}
