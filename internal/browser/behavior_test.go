package browser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMousePathStaysInViewport(t *testing.T) {
	for i := 0; i < 100; i++ {
		path := mousePath(ViewportWidth, ViewportHeight)
		require.Len(t, path, 3)
		for _, p := range path {
			assert.Greater(t, p.x, 0.0)
			assert.Less(t, p.x, float64(ViewportWidth))
			assert.Greater(t, p.y, 0.0)
			assert.Less(t, p.y, float64(ViewportHeight))
		}
	}
}

func TestRandomDurationBounds(t *testing.T) {
	min, max := 3*time.Second, 6*time.Second
	for i := 0; i < 100; i++ {
		d := randomDuration(min, max)
		assert.GreaterOrEqual(t, d, min)
		assert.Less(t, d, max)
	}

	// Degenerate range collapses to the lower bound.
	assert.Equal(t, min, randomDuration(min, min))
}
