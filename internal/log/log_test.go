package log

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":         zerolog.Disabled,
		"disabled": zerolog.Disabled,
		"error":    zerolog.ErrorLevel,
		"WARN":     zerolog.WarnLevel,
		"info":     zerolog.InfoLevel,
		" debug ":  zerolog.DebugLevel,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLevel("trace")
	assert.Error(t, err)
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	ctx := NewContext(context.Background(), New(&buf, zerolog.DebugLevel, true))
	FromContext(ctx).Debug().Str("file", "tb.py").Msg("scanned")
	assert.Contains(t, buf.String(), "scanned")
	assert.Contains(t, buf.String(), "file=tb.py")
}

func TestFromContextWithoutLogger(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, zerolog.Disabled, l.GetLevel())
}
