package browser

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThreadedLinx/bbscraper/internal/config"
	"github.com/ThreadedLinx/bbscraper/internal/models"
)

// A request that was already canceled must not reach Chrome at all.
func TestNewSessionCanceledContext(t *testing.T) {
	m := NewManager(config.Config{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sessionCtx, closeSession, err := m.NewSession(ctx)
	require.Error(t, err)
	assert.Nil(t, sessionCtx)
	assert.Nil(t, closeSession)

	var sessionErr *models.SessionError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, "create", sessionErr.Step)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewSessionAfterClose(t *testing.T) {
	m := NewManager(config.Config{}, zerolog.Nop())
	m.Close()

	_, _, err := m.NewSession(context.Background())
	require.Error(t, err)

	var sessionErr *models.SessionError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, "create", sessionErr.Step)
	assert.False(t, m.Healthy())
}
