package clipboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/deck-api/internal/clipboard"
	"github.com/KirkDiggler/deck-api/internal/errors"
)

func TestMemory(t *testing.T) {
	ctx := context.Background()
	cb := &clipboard.Memory{}

	text, err := cb.ReadText(ctx)
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, cb.WriteText(ctx, "preset"))
	text, err = cb.ReadText(ctx)
	require.NoError(t, err)
	assert.Equal(t, "preset", text)

	cb.Err = errors.Unavailable("denied")
	_, err = cb.ReadText(ctx)
	assert.True(t, errors.IsUnavailable(err))
	assert.True(t, errors.IsUnavailable(cb.WriteText(ctx, "x")))
}

func TestSystemHonorsCanceledContext(t *testing.T) {
	cb, err := clipboard.NewSystem()
	if err != nil {
		t.Skip("no system clipboard")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = cb.ReadText(ctx)
	assert.Equal(t, errors.CodeAborted, errors.GetCode(err))
	assert.Equal(t, errors.CodeAborted, errors.GetCode(cb.WriteText(ctx, "x")))
}
