package sesame

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilleslandais/astropy/pkg/errors"
	"github.com/gilleslandais/astropy/pkg/logging"
)

// fakeFetcher serves canned bodies or errors per URL and records the order
// of requests.
type fakeFetcher struct {
	bodies   map[string]string
	failures map[string]error
	requests []string
	useCache []bool
}

func (f *fakeFetcher) Fetch(_ context.Context, url string, useCache bool) ([]byte, error) {
	f.requests = append(f.requests, url)
	f.useCache = append(f.useCache, useCache)
	if err, ok := f.failures[url]; ok {
		return nil, err
	}
	if body, ok := f.bodies[url]; ok {
		return []byte(body), nil
	}
	return nil, errors.NewTransportError(url, 0, "connection refused", nil)
}

func newTestRegistry(t *testing.T, mirrors ...string) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.SetMirrors(mirrors))
	return r
}

func TestResolve_FirstMirrorSuccess(t *testing.T) {
	registry := newTestRegistry(t, "https://one.example.org/", "https://two.example.org/")
	urlOne := BuildURL("https://one.example.org/", "SNV", "castor")

	fetcher := &fakeFetcher{bodies: map[string]string{urlOne: castorAll}}
	client := NewClient(registry, fetcher, WithLogger(&logging.Nop))

	resp, err := client.Resolve(context.Background(), "castor")
	require.NoError(t, err)
	assert.Equal(t, 113.649471640, resp.Coordinate.RA)
	assert.Equal(t, 31.888282216, resp.Coordinate.Dec)

	// First success stops the loop; the second mirror is never consulted.
	assert.Equal(t, []string{urlOne}, fetcher.requests)
}

// A mirror with no match falls through to the next one; the second mirror's
// coordinate is returned.
func TestResolve_MirrorOrderFallback(t *testing.T) {
	registry := newTestRegistry(t, "https://one.example.org/", "https://two.example.org/")
	urlOne := BuildURL("https://one.example.org/", "SNV", "NGC 3642")
	urlTwo := BuildURL("https://two.example.org/", "SNV", "NGC 3642")

	fetcher := &fakeFetcher{bodies: map[string]string{
		urlOne: "# nothing here\n#====Done====",
		urlTwo: ngc3642Vizier,
	}}
	client := NewClient(registry, fetcher, WithLogger(&logging.Nop))

	resp, err := client.Resolve(context.Background(), "NGC 3642")
	require.NoError(t, err)
	assert.Equal(t, 170.56, resp.Coordinate.RA)
	assert.Equal(t, []string{urlOne, urlTwo}, fetcher.requests, "mirrors must be tried strictly in order")
}

func TestResolve_AllMirrorsExhausted(t *testing.T) {
	registry := newTestRegistry(t, "https://one.example.org/", "https://two.example.org/")
	urlOne := BuildURL("https://one.example.org/", "SNV", "m87h34hhh")
	urlTwo := BuildURL("https://two.example.org/", "SNV", "m87h34hhh")

	fetcher := &fakeFetcher{
		bodies:   map[string]string{urlOne: "#!SIMBAD: Nothing found\n#====Done===="},
		failures: map[string]error{urlTwo: errors.NewTransportError(urlTwo, 503, "service unavailable", nil)},
	}
	client := NewClient(registry, fetcher, WithLogger(&logging.Nop))

	_, err := client.Resolve(context.Background(), "m87h34hhh")
	require.Error(t, err)

	var resolveErr *errors.NameResolveError
	require.ErrorAs(t, err, &resolveErr)
	assert.True(t, errors.IsNotFound(err))

	// Both attempted URLs, their reasons, and the selector code must all be
	// visible in the terminal error.
	require.Len(t, resolveErr.Attempts, 2)
	assert.Equal(t, urlOne, resolveErr.Attempts[0].URL)
	assert.Equal(t, urlTwo, resolveErr.Attempts[1].URL)

	msg := err.Error()
	assert.Contains(t, msg, "m87h34hhh")
	assert.Contains(t, msg, urlOne)
	assert.Contains(t, msg, urlTwo)
	assert.Contains(t, msg, "SNV")
	assert.Contains(t, msg, "no coordinate in response")
	assert.Contains(t, msg, "service unavailable")
}

// Parse failure and transport failure are not distinguished for fallback:
// one recorded reason each, then the next mirror.
func TestResolve_OneFailureReasonPerMirror(t *testing.T) {
	registry := newTestRegistry(t, "https://one.example.org/", "https://two.example.org/")
	urlOne := BuildURL("https://one.example.org/", "SNV", "castor")
	urlTwo := BuildURL("https://two.example.org/", "SNV", "castor")

	fetcher := &fakeFetcher{bodies: map[string]string{
		urlOne: "# no match\n#====Done====",
		urlTwo: castorAll,
	}}
	client := NewClient(registry, fetcher, WithLogger(&logging.Nop))

	resp, err := client.Resolve(context.Background(), "castor")
	require.NoError(t, err)
	assert.Equal(t, 113.649471640, resp.Coordinate.RA)
	assert.Len(t, fetcher.requests, 2)
}

func TestResolve_DatabaseSelectorInURL(t *testing.T) {
	tests := []struct {
		database Database
		code     string
	}{
		{DatabaseSimbad, "S"},
		{DatabaseNED, "N"},
		{DatabaseVizieR, "V"},
		{DatabaseAll, "SNV"},
	}

	for _, tt := range tests {
		t.Run(string(tt.database), func(t *testing.T) {
			registry := newTestRegistry(t, "https://one.example.org/")
			require.NoError(t, registry.SetDatabase(tt.database))

			fetcher := &fakeFetcher{}
			client := NewClient(registry, fetcher, WithLogger(&logging.Nop))

			_, err := client.Resolve(context.Background(), "castor")
			require.Error(t, err)

			require.Len(t, fetcher.requests, 1)
			assert.Equal(t, "https://one.example.org/"+tt.code+"?castor", fetcher.requests[0])
		})
	}
}

// The snapshot taken at the start of Resolve keeps the loop consistent even
// if the registry is reconfigured mid-flight by another goroutine.
func TestResolve_UsesSnapshot(t *testing.T) {
	registry := newTestRegistry(t, "https://one.example.org/", "https://two.example.org/")
	urlOne := BuildURL("https://one.example.org/", "SNV", "castor")
	urlTwo := BuildURL("https://two.example.org/", "SNV", "castor")

	fetcher := &fakeFetcher{bodies: map[string]string{urlTwo: castorAll}}
	client := NewClient(registry, fetcher, WithLogger(&logging.Nop))

	// Reconfigure between construction and resolve; the resolve call reads
	// the registry once at entry, so it sees this update, then nothing else.
	require.NoError(t, registry.SetMirrors([]string{"https://one.example.org/", "https://two.example.org/"}))

	resp, err := client.Resolve(context.Background(), "castor")
	require.NoError(t, err)
	assert.Equal(t, []string{urlOne, urlTwo}, fetcher.requests)
	assert.NotNil(t, resp)
}

func TestResolve_CacheFlagPropagates(t *testing.T) {
	registry := newTestRegistry(t, "https://one.example.org/")
	urlOne := BuildURL("https://one.example.org/", "SNV", "castor")

	fetcher := &fakeFetcher{bodies: map[string]string{urlOne: castorAll}}
	client := NewClient(registry, fetcher, WithLogger(&logging.Nop), WithCache(true))

	_, err := client.Resolve(context.Background(), "castor")
	require.NoError(t, err)
	require.Len(t, fetcher.useCache, 1)
	assert.True(t, fetcher.useCache[0])
}

func TestBuildURL(t *testing.T) {
	assert.Equal(t,
		"https://cds.unistra.fr/cgi-bin/nph-sesame/SNV?NGC%203642",
		BuildURL("https://cds.unistra.fr/cgi-bin/nph-sesame/", "SNV", "NGC 3642"))

	// No trailing slash on the mirror base.
	assert.Equal(t,
		"https://mirror.example.org/sesame/S?castor",
		BuildURL("https://mirror.example.org/sesame", "S", "castor"))
}

func TestResolve_ContextCanceled(t *testing.T) {
	registry := newTestRegistry(t, "https://one.example.org/", "https://two.example.org/")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{}
	client := NewClient(registry, fetcher, WithLogger(&logging.Nop))

	_, err := client.Resolve(ctx, "castor")
	var resolveErr *errors.NameResolveError
	require.ErrorAs(t, err, &resolveErr)

	// The loop stops after the first attempt once the context is gone.
	assert.Len(t, fetcher.requests, 1)
}
