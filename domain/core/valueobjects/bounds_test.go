package valueobjects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsContains(t *testing.T) {
	b := Bounds{Center: Position{X: 100, Y: 100}, Width: 200, Height: 100}

	tests := []struct {
		name string
		p    Position
		want bool
	}{
		{"center", Position{X: 100, Y: 100}, true},
		{"left edge", Position{X: 0, Y: 100}, true},
		{"top-left corner", Position{X: 0, Y: 50}, true},
		{"bottom-right corner", Position{X: 200, Y: 150}, true},
		{"just outside right", Position{X: 200.001, Y: 100}, false},
		{"above", Position{X: 100, Y: 49.9}, false},
		{"nan point", Position{X: math.NaN(), Y: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.p))
		})
	}
}

func TestInvalidBoundsContainNothing(t *testing.T) {
	nan := Bounds{Center: Position{X: math.NaN(), Y: 0}, Width: 100, Height: 100}
	assert.False(t, nan.Contains(Position{X: 0, Y: 0}))

	inf := Bounds{Center: Position{X: 0, Y: 0}, Width: math.Inf(1), Height: 100}
	assert.False(t, inf.Contains(Position{X: 0, Y: 0}))

	negative := Bounds{Center: Position{X: 0, Y: 0}, Width: -10, Height: 100}
	assert.False(t, negative.IsValid())
}

func TestContainsBounds(t *testing.T) {
	outer := Bounds{Center: Position{X: 0, Y: 0}, Width: 400, Height: 400}
	inner := Bounds{Center: Position{X: 50, Y: 50}, Width: 100, Height: 100}
	overlapping := Bounds{Center: Position{X: 190, Y: 0}, Width: 100, Height: 100}

	assert.True(t, outer.ContainsBounds(inner))
	assert.False(t, outer.ContainsBounds(overlapping))
	assert.False(t, inner.ContainsBounds(outer))
	// a rectangle contains itself
	assert.True(t, outer.ContainsBounds(outer))
}

func TestNewBoundsRejectsBadExtents(t *testing.T) {
	_, err := NewBounds(Position{X: 0, Y: 0}, -1, 10)
	require.Error(t, err)

	b, err := NewBounds(Position{X: 0, Y: 0}, 10, 20)
	require.NoError(t, err)
	assert.Equal(t, 200.0, b.Area())
}
