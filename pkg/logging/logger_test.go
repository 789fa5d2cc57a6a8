package logging

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTestLogger_Captures(t *testing.T) {
	tl := NewTestLogger(t)
	tl.Info().Str("name", "NGC 3642").Msg("Resolving object name")

	assert.True(t, tl.Contains("Resolving object name"))
	assert.True(t, tl.Contains("NGC 3642"))
}

func TestNew_EmitsJSON(t *testing.T) {
	tl := NewTestLogger(t)
	tl.Debug().Str("mirror", "https://cds.unistra.fr/cgi-bin/nph-sesame/").Msg("Querying mirror")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(tl.Buffer.Bytes(), &entry))
	assert.Equal(t, "Querying mirror", entry["message"])
	assert.Equal(t, "https://cds.unistra.fr/cgi-bin/nph-sesame/", entry["mirror"])
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"info":    "info",
		"":        "info",
		"warn":    "warn",
		"warning": "warn",
		"bogus":   "info",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, parseLevel(input).String(), "input %q", input)
	}
}

func TestContext_RoundTrip(t *testing.T) {
	tl := NewTestLogger(t)
	ctx := WithLogger(context.Background(), tl.Logger)

	FromContext(ctx).Info().Msg("from context")
	assert.True(t, tl.Contains("from context"))
}

func TestContext_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, Default(), FromContext(context.Background()))
	assert.Equal(t, Default(), FromContext(nil)) //nolint:staticcheck // exercising nil handling
}
