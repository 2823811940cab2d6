package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPosition(t *testing.T) {
	p, err := NewPosition(12.5, -3)
	require.NoError(t, err)
	assert.Equal(t, 12.5, p.X)
	assert.Equal(t, -3.0, p.Y)

	_, err = NewPosition(math.NaN(), 0)
	assert.Error(t, err)
	_, err = NewPosition(0, math.Inf(-1))
	assert.Error(t, err)
}

func TestPositionEquals(t *testing.T) {
	a := Position{X: 1, Y: 2}
	assert.True(t, a.Equals(Position{X: 1 + 1e-12, Y: 2}))
	assert.False(t, a.Equals(Position{X: 1.1, Y: 2}))
}

func TestPositionDistanceTo(t *testing.T) {
	a := Position{X: 0, Y: 0}
	b := Position{X: 3, Y: 4}
	assert.Equal(t, 5.0, a.DistanceTo(b))
}
