package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilleslandais/astropy/pkg/errors"
)

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte("%J 1.5 -2.5 = x\n#====Done===="))
	}))
	defer server.Close()

	client := New(5 * time.Second)
	body, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Contains(t, string(body), "%J 1.5 -2.5")
}

func TestGet_NonSuccessStatus(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusBadGateway} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
		}))

		client := New(5 * time.Second)
		_, err := client.Get(context.Background(), server.URL)
		server.Close()

		var transportErr *errors.TransportError
		require.ErrorAs(t, err, &transportErr, "status %d", status)
		assert.Equal(t, status, transportErr.StatusCode)
		assert.True(t, errors.IsMirrorUnavailable(err))
	}
}

func TestGet_ConnectionRefused(t *testing.T) {
	// Bind then close to get a port that refuses connections.
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	client := New(2 * time.Second)
	_, err := client.Get(context.Background(), url)

	var transportErr *errors.TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Equal(t, url, transportErr.URL)
}

func TestGet_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	client := New(30 * time.Second)
	_, err := client.Get(ctx, server.URL)

	var transportErr *errors.TransportError
	require.ErrorAs(t, err, &transportErr)
}

func TestNew_DefaultTimeout(t *testing.T) {
	client := New(0)
	assert.Equal(t, DefaultHTTPTimeout, client.http.Timeout)
}
