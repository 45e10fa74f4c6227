package container

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Options configures the server and the admin commands. Every field maps to a
// flag and a SERVICE_ prefixed environment variable.
type Options struct {
	Port             int    `default:"8888"           help:"Port to listen on"`
	BaseURL          string `default:""               help:"Public base URL for self links, defaults to http://localhost:<port>"`
	RedisAddr        string `default:"localhost:6379" help:"Redis server address"                                    short:"r"`
	RedisPassword    string `default:""               help:"Redis password"`
	RedisDB          int    `default:"0"              help:"Redis database number"`
	SecretKey        string `default:""               help:"Secret used to sign access tokens"                       short:"s"`
	TokenTTL         string `default:"1h"             help:"Lifetime of issued access tokens"`
	MaxAllocAttempts int    `default:"32"             help:"Key draws before allocation gives up"`
	LogFormat        string `default:"console"        help:"Log format: json or console"`
	Analytics        bool   `default:"true"           help:"Publish URL change and access events"`
	RateLimit        bool   `default:"true"           help:"Enable request rate limiting"`
	DatabaseURL      string `default:""               help:"PostgreSQL URL for the analytics consumer"`
}

// Entry is a single named configuration value.
type Entry struct {
	Name  string
	Value string
}

const redacted = "********"

// Validate rejects configurations the server cannot run with.
func (o *Options) Validate() error {
	var errs []error

	if o.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}

	if _, err := o.TokenLifetime(); err != nil {
		errs = append(errs, err)
	}

	if o.MaxAllocAttempts < 0 {
		errs = append(errs, fmt.Errorf("max alloc attempts must not be negative, got %d", o.MaxAllocAttempts))
	}

	switch o.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("log format must be json or console, got %q", o.LogFormat))
	}

	return errors.Join(errs...)
}

// TokenLifetime parses TokenTTL.
func (o *Options) TokenLifetime() (time.Duration, error) {
	ttl, err := time.ParseDuration(o.TokenTTL)
	if err != nil {
		return 0, fmt.Errorf("token ttl: %w", err)
	}

	if ttl <= 0 {
		return 0, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}

	return ttl, nil
}

// PublicBaseURL returns BaseURL or the local address derived from Port.
func (o *Options) PublicBaseURL() string {
	if o.BaseURL != "" {
		return o.BaseURL
	}

	return fmt.Sprintf("http://localhost:%d", o.Port)
}

// Entries lists the effective configuration in a fixed order with secrets redacted.
func (o *Options) Entries() []Entry {
	return []Entry{
		{Name: "PORT", Value: strconv.Itoa(o.Port)},
		{Name: "BASE_URL", Value: o.PublicBaseURL()},
		{Name: "REDIS_ADDR", Value: o.RedisAddr},
		{Name: "REDIS_PASSWORD", Value: redact(o.RedisPassword)},
		{Name: "REDIS_DB", Value: strconv.Itoa(o.RedisDB)},
		{Name: "SECRET_KEY", Value: redact(o.SecretKey)},
		{Name: "TOKEN_TTL", Value: o.TokenTTL},
		{Name: "MAX_ALLOC_ATTEMPTS", Value: strconv.Itoa(o.MaxAllocAttempts)},
		{Name: "LOG_FORMAT", Value: o.LogFormat},
		{Name: "ANALYTICS", Value: strconv.FormatBool(o.Analytics)},
		{Name: "RATE_LIMIT", Value: strconv.FormatBool(o.RateLimit)},
		{Name: "DATABASE_URL", Value: redact(o.DatabaseURL)},
	}
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}

	return redacted
}
