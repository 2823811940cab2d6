package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/valueobjects"
)

func group(id string, cx, cy, w, h float64) entities.Group {
	return entities.Group{
		ID:       id,
		Label:    id,
		Position: valueobjects.Position{X: cx, Y: cy},
		Width:    w,
		Height:   h,
	}
}

func TestDeepestGroupAt(t *testing.T) {
	outer := group("outer", 0, 0, 200, 200)
	inner := group("inner", 0, 0, 100, 100)
	apart := group("apart", 500, 500, 50, 50)

	tests := []struct {
		name   string
		point  valueobjects.Position
		groups []entities.Group
		wantID string
	}{
		{
			name:   "picks smallest containing group",
			point:  valueobjects.Position{X: 10, Y: 10},
			groups: []entities.Group{outer, inner, apart},
			wantID: "inner",
		},
		{
			name:   "order of candidates does not matter",
			point:  valueobjects.Position{X: 10, Y: 10},
			groups: []entities.Group{inner, apart, outer},
			wantID: "inner",
		},
		{
			name:   "falls back to outer when point outside inner",
			point:  valueobjects.Position{X: 80, Y: 80},
			groups: []entities.Group{outer, inner},
			wantID: "outer",
		},
		{
			name:   "boundary point counts as inside",
			point:  valueobjects.Position{X: 50, Y: 50},
			groups: []entities.Group{inner},
			wantID: "inner",
		},
		{
			name:   "no containing group",
			point:  valueobjects.Position{X: 1000, Y: 1000},
			groups: []entities.Group{outer, inner, apart},
			wantID: "",
		},
		{
			name:   "empty candidate list",
			point:  valueobjects.Position{X: 0, Y: 0},
			groups: nil,
			wantID: "",
		},
	}

	resolver := NewMembershipResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.DeepestGroupAt(tt.point, tt.groups)
			if tt.wantID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestDeepestGroupAtTieBreaksBySliceOrder(t *testing.T) {
	first := group("first", 0, 0, 100, 100)
	second := group("second", 0, 0, 100, 100)

	resolver := NewMembershipResolver()
	got := resolver.DeepestGroupAt(valueobjects.Position{X: 0, Y: 0}, []entities.Group{first, second})

	require.NotNil(t, got)
	assert.Equal(t, "first", got.ID)
}

func TestDeepestGroupAtSkipsMalformedBounds(t *testing.T) {
	broken := group("broken", 0, 0, math.NaN(), 100)
	sound := group("sound", 0, 0, 200, 200)

	resolver := NewMembershipResolver()
	got := resolver.DeepestGroupAt(valueobjects.Position{X: 0, Y: 0}, []entities.Group{broken, sound})

	require.NotNil(t, got)
	assert.Equal(t, "sound", got.ID)
}

func TestParentGroupForBounds(t *testing.T) {
	outer := group("outer", 0, 0, 400, 400)
	inner := group("inner", 0, 0, 200, 200)

	rect := entities.Group{
		ID:       "fresh",
		Position: valueobjects.Position{X: 0, Y: 0},
		Width:    50,
		Height:   50,
	}.Bounds()

	tests := []struct {
		name      string
		rect      valueobjects.Bounds
		groups    []entities.Group
		excludeID string
		wantID    string
	}{
		{
			name:   "nests inside the smallest container",
			rect:   rect,
			groups: []entities.Group{outer, inner},
			wantID: "inner",
		},
		{
			name:      "excluded id is never its own parent",
			rect:      inner.Bounds(),
			groups:    []entities.Group{outer, inner},
			excludeID: "inner",
			wantID:    "outer",
		},
		{
			name:   "partial overlap is not containment",
			rect:   group("wide", 190, 0, 100, 50).Bounds(),
			groups: []entities.Group{inner},
			wantID: "",
		},
		{
			name:   "no candidates",
			rect:   rect,
			groups: nil,
			wantID: "",
		},
	}

	resolver := NewMembershipResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolver.ParentGroupForBounds(tt.rect, tt.groups, tt.excludeID)
			if tt.wantID == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestResolverDoesNotAliasInput(t *testing.T) {
	groups := []entities.Group{group("only", 0, 0, 100, 100)}

	resolver := NewMembershipResolver()
	got := resolver.DeepestGroupAt(valueobjects.Position{X: 0, Y: 0}, groups)

	require.NotNil(t, got)
	got.Label = "renamed"
	assert.Equal(t, "only", groups[0].Label)
}
