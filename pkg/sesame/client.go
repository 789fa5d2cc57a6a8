package sesame

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gilleslandais/astropy/pkg/errors"
	"github.com/gilleslandais/astropy/pkg/logging"
)

// Fetcher retrieves the body of a URL. With useCache set, repeated fetches
// of the same URL must return identical bytes without a network round trip
// once one success has been stored. Implementations must fail fast with a
// transport error rather than hang, so the mirror fallback loop completes
// in bounded time.
type Fetcher interface {
	Fetch(ctx context.Context, url string, useCache bool) ([]byte, error)
}

// Client resolves object names against Sesame mirrors. Mirrors are tried
// strictly in registry order, one request at a time: they are fallbacks,
// not parallel sources to race, and racing would not preserve the
// documented priority among mirrors and databases.
type Client struct {
	registry *Registry
	fetcher  Fetcher
	logger   *zerolog.Logger
	useCache bool
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithLogger sets the logger used for per-attempt diagnostics.
func WithLogger(logger *zerolog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCache enables cache-aware fetching. The cache key is the exact
// constructed URL, so requests that differ only in mirror order still share
// entries per distinct URL.
func WithCache(enabled bool) ClientOption {
	return func(c *Client) {
		c.useCache = enabled
	}
}

// NewClient creates a resolution client reading its mirror list and
// database selector from registry and fetching through fetcher.
func NewClient(registry *Registry, fetcher Fetcher, opts ...ClientOption) *Client {
	c := &Client{
		registry: registry,
		fetcher:  fetcher,
		logger:   logging.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve queries each configured mirror in order until one yields a
// parseable match. The mirror list and database selector are snapshotted
// once at entry, so a concurrent registry update cannot produce an
// inconsistent view mid-loop.
//
// A mirror that is unreachable and a mirror that answers without a match
// are treated identically: record the reason, try the next mirror. When
// every mirror is exhausted the returned NameResolveError enumerates the
// name, every attempted URL and each per-mirror reason.
func (c *Client) Resolve(ctx context.Context, name string) (*Response, error) {
	mirrors, database := c.registry.snapshot()
	code := database.Code()

	attempts := make([]errors.ResolveAttempt, 0, len(mirrors))
	for _, mirror := range mirrors {
		requestURL := BuildURL(mirror, code, name)

		c.logger.Debug().
			Str("name", name).
			Str("url", requestURL).
			Str("database", string(database)).
			Bool("cache", c.useCache).
			Msg("Querying Sesame mirror")

		body, err := c.fetcher.Fetch(ctx, requestURL, c.useCache)
		if err != nil {
			attempts = append(attempts, errors.ResolveAttempt{URL: requestURL, Reason: reason(err)})
			c.logger.Debug().Err(err).Str("url", requestURL).Msg("Mirror attempt failed")
			if ctx.Err() != nil {
				// Context gone; further mirrors would fail the same way.
				break
			}
			continue
		}

		resp, err := ParseResponse(string(body))
		if err != nil {
			attempts = append(attempts, errors.ResolveAttempt{URL: requestURL, Reason: reason(err)})
			c.logger.Debug().Err(err).Str("url", requestURL).Msg("Mirror had no match")
			continue
		}

		c.logger.Debug().
			Str("name", name).
			Str("identifier", resp.Identifier).
			Str("coordinate", resp.Coordinate.String()).
			Msg("Resolved name")
		return resp, nil
	}

	return nil, errors.NewNameResolveError(name, attempts)
}

// BuildURL constructs the request URL for one mirror: the database code as
// a path segment followed by the percent-encoded object name as the query.
func BuildURL(mirror, code, name string) string {
	return strings.TrimRight(mirror, "/") + "/" + code + "?" + url.PathEscape(name)
}

// reason flattens an attempt error into the short form kept for the final
// NameResolveError message.
func reason(err error) string {
	var parseErr *errors.ParseError
	if stderrors.As(err, &parseErr) {
		return parseErr.Message
	}
	return err.Error()
}
