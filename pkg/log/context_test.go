package log

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCtxRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	ctx := WithLogger(context.Background(), logger)

	// chained level calls on the returned logger must write through the
	// context logger
	Ctx(ctx).Error().Err(errors.New("boom")).Str(FieldUserID, "u1").Msg("it failed")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"boom"`)
	assert.Contains(t, out, `"it failed"`)
	assert.Contains(t, out, `"u1"`)
}

func TestCtxFallsBackToGlobal(t *testing.T) {
	l := Ctx(context.Background())
	require.NotNil(t, l)

	// usable without panicking even when nothing was stored
	l.Debug().Msg("fallback")
}
