package controltower

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/towerops/controltower/session"
	"github.com/towerops/controltower/transport"
)

// DefaultSessionFile returns the file-backed session record path used when
// none is configured, under the user config directory.
func DefaultSessionFile() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "controltower", "session.rec"), nil
}

// Builder defines a public type used by controltower APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client
	store  session.Store

	httpClient *http.Client
	logger     zerolog.Logger
	auditSink  AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
		logger: zerolog.Nop(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithBackendURL sets the Control Tower REST backend base URL.
func (b *Builder) WithBackendURL(baseURL string) *Builder {
	b.config.Backend.BaseURL = baseURL
	return b
}

// WithAssistantURL sets the chat assistant base URL. Empty disables the
// assistant surface.
func (b *Builder) WithAssistantURL(baseURL string) *Builder {
	b.config.Assistant.BaseURL = baseURL
	return b
}

// WithRedis selects redis-backed session storage using the given client.
//
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	b.config.Session.Backend = SessionBackendRedis
	return b
}

// WithSessionFile selects file-backed session storage at the given path.
func (b *Builder) WithSessionFile(path string) *Builder {
	b.config.Session.Backend = SessionBackendFile
	b.config.Session.FilePath = path
	return b
}

// WithRedisPrefix overrides the redis session key prefix.
func (b *Builder) WithRedisPrefix(prefix string) *Builder {
	b.config.Session.RedisPrefix = prefix
	return b
}

// WithSessionStore injects a custom durable session store, overriding the
// file and redis selections.
func (b *Builder) WithSessionStore(store session.Store) *Builder {
	b.store = store
	return b
}

// WithHTTPClient supplies the HTTP client whose transport the middleware
// chain wraps. The client's own transport becomes the chain's base.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithLogger injects the structured logger used by the guard, the client,
// and the middleware chain. The default is a no-op logger.
func (b *Builder) WithLogger(log zerolog.Logger) *Builder {
	b.logger = log
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	b.config.Audit.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Guard, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// -------- SESSION STORE --------
	store := b.store
	if store == nil {
		switch cfg.Session.Backend {
		case SessionBackendRedis:
			if b.redis == nil {
				return nil, errors.New("redis session backend requires redis client")
			}
			store = session.NewRedisStore(b.redis, cfg.Session.RedisPrefix)
		default:
			path := cfg.Session.FilePath
			if path == "" {
				var err error
				path, err = DefaultSessionFile()
				if err != nil {
					return nil, err
				}
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return nil, err
			}
			store = session.NewFileStore(path)
		}
	}

	guard := &Guard{
		config:  cfg,
		store:   store,
		log:     b.logger,
		metrics: NewMetrics(cfg.Metrics),
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
	}

	// -------- MIDDLEWARE CHAIN --------
	var base http.RoundTripper
	timeout := cfg.Backend.Timeout
	if b.httpClient != nil {
		base = b.httpClient.Transport
		if b.httpClient.Timeout > 0 {
			timeout = b.httpClient.Timeout
		}
	}

	chain := transport.NewChain(base, b.logger).
		Use(transport.RequestID{}).
		Use(transport.NewBearerAuthorizer(guard.Credential)).
		Observe(transport.NewUnauthorizedObserver(guard.invalidate))

	if guard.metrics.LatencyEnabled() {
		chain.Latency = func(d time.Duration) {
			guard.metrics.Observe(MetricRequestLatency, d)
		}
	}

	hc := &http.Client{
		Transport: chain,
		Timeout:   timeout,
	}
	if b.httpClient != nil {
		hc.Jar = b.httpClient.Jar
		hc.CheckRedirect = b.httpClient.CheckRedirect
	}

	guard.client = newClient(cfg, hc, b.logger, guard.metrics, guard.sessionContext)

	b.built = true

	return guard, nil
}
