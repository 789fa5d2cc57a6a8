package astropy

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/gilleslandais/astropy/pkg/constants"
	"github.com/gilleslandais/astropy/pkg/logging"
	"github.com/gilleslandais/astropy/pkg/sesame"
)

// Option is a function that configures a Resolver instance
type Option func(*config) error

// config holds the resolver configuration assembled from options
type config struct {
	mirrors       []string
	database      sesame.Database
	cacheEnabled  bool
	cacheDir      string
	cacheTTL      time.Duration
	httpTimeout   time.Duration
	parseEmbedded bool
	logger        *zerolog.Logger
	fetcher       sesame.Fetcher
	registry      *sesame.Registry
}

func defaultConfig() *config {
	return &config{
		httpTimeout: constants.DefaultHTTPTimeout,
		cacheTTL:    constants.DefaultCacheTTL,
		logger:      logging.Default(),
	}
}

// options applies the given options to the config
func (r *resolver) options(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(r.config); err != nil {
			return err
		}
	}
	return nil
}

// WithMirrors replaces the default mirror list. Entries are validated when
// the resolver is constructed.
func WithMirrors(mirrors ...string) Option {
	return func(c *config) error {
		c.mirrors = mirrors
		return nil
	}
}

// WithDatabase selects which catalog database mirrors should consult.
// The default is sesame.DatabaseAll.
func WithDatabase(db sesame.Database) Option {
	return func(c *config) error {
		c.database = db
		return nil
	}
}

// WithCache enables the URL-keyed response cache, in memory only.
func WithCache(enabled bool) Option {
	return func(c *config) error {
		c.cacheEnabled = enabled
		return nil
	}
}

// WithCacheDir enables the cache with persistence under dir.
func WithCacheDir(dir string) Option {
	return func(c *config) error {
		c.cacheEnabled = true
		c.cacheDir = dir
		return nil
	}
}

// WithCacheTTL sets how long cached responses stay valid in memory.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) error {
		c.cacheTTL = ttl
		return nil
	}
}

// WithHTTPTimeout bounds each mirror request. Mirror fallback relies on
// requests failing fast rather than hanging.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		c.httpTimeout = timeout
		return nil
	}
}

// WithEmbeddedParsing makes Resolve decode coordinates embedded in the name
// itself instead of querying mirrors. This mode performs no I/O.
func WithEmbeddedParsing() Option {
	return func(c *config) error {
		c.parseEmbedded = true
		return nil
	}
}

// WithLogger sets the logger used for resolution diagnostics.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger != nil {
			c.logger = logger
		}
		return nil
	}
}

// WithFetcher replaces the network fetch collaborator. Intended for tests
// and callers that bring their own caching transport.
func WithFetcher(fetcher sesame.Fetcher) Option {
	return func(c *config) error {
		c.fetcher = fetcher
		return nil
	}
}

// WithRegistry shares an existing registry, so several resolvers can see
// one process-wide mirror configuration.
func WithRegistry(registry *sesame.Registry) Option {
	return func(c *config) error {
		c.registry = registry
		return nil
	}
}
