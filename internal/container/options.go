package container

import (
	"fmt"
	"time"
)

// Options configures both binaries. humacli binds every field to a flag and
// to a SERVICE_* environment variable.
type Options struct {
	Port                int    `default:"8888"           help:"Port to listen on"                                              short:"p"`
	BaseURL             string `help:"Public base URL of short links, defaults to http://localhost:<port>"`
	RedisAddr           string `default:"localhost:6379" help:"Redis address; empty keeps cache, counter and limits in memory" short:"r"`
	DatabaseURL         string `help:"PostgreSQL connection string; empty keeps records in memory"                              short:"d"`
	EnsureSchema        bool   `default:"true"           help:"Create the short_urls table on startup"`
	LogFormat           string `default:"console"        help:"Log format: console or json"`
	StoreTimeoutMillis  int    `default:"2000"           help:"Deadline in milliseconds for each store round trip"`
	RateLimitFailOpen   bool   `default:"false"          help:"Allow requests when the rate limit store is unavailable"`
	ResetVisitsOnRename bool   `default:"false"          help:"Reset the visit count when a slug is renamed"`
	CacheSize           int    `default:"10000"          help:"Entries kept by the in-memory redirect cache"`
	ConsumerGroup       string `default:"analytics"      help:"Redis stream consumer group of the analytics consumer"`
	AnalyticsStore      string `default:"redis"          help:"Analytics sink of the consumer: redis or noop"`
}

// PublicBaseURL returns the configured base URL or the local default.
func (o *Options) PublicBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// StoreTimeout returns the per-operation store deadline.
func (o *Options) StoreTimeout() time.Duration {
	return time.Duration(o.StoreTimeoutMillis) * time.Millisecond
}

// UseRedis reports whether a Redis address was configured.
func (o *Options) UseRedis() bool {
	return o.RedisAddr != ""
}

// UsePostgres reports whether a database was configured.
func (o *Options) UsePostgres() bool {
	return o.DatabaseURL != ""
}
