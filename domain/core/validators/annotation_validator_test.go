package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"topocanvas/domain/config"
	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/valueobjects"
	"topocanvas/pkg/errors"
)

func newValidator() *AnnotationValidator {
	cfg := config.DefaultDomainConfig()
	cfg.AllowEmptyLabels = false
	return NewAnnotationValidator(cfg)
}

func TestValidateGroup(t *testing.T) {
	tests := []struct {
		name     string
		group    entities.Group
		wantCode string
	}{
		{
			name:  "valid group",
			group: entities.Group{ID: "g1", Label: "dmz", Width: 300, Height: 200},
		},
		{
			name:     "empty label rejected",
			group:    entities.Group{ID: "g1", Label: "  ", Width: 300, Height: 200},
			wantCode: "LABEL_REQUIRED",
		},
		{
			name:     "label too long",
			group:    entities.Group{ID: "g1", Label: strings.Repeat("x", 201), Width: 300, Height: 200},
			wantCode: "LABEL_TOO_LONG",
		},
		{
			name:     "extents below minimum",
			group:    entities.Group{ID: "g1", Label: "dmz", Width: 5, Height: 5},
			wantCode: "GROUP_TOO_SMALL",
		},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateGroup(tt.group)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr := errors.GetAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestValidateGroupTooManyMembers(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxMembersPerGroup = 2
	v := NewAnnotationValidator(cfg)

	g := entities.Group{
		ID:      "g1",
		Label:   "dmz",
		Width:   300,
		Height:  200,
		Members: []string{"a", "b", "c"},
	}

	err := v.ValidateGroup(g)
	require.Error(t, err)
	assert.Equal(t, "TOO_MANY_MEMBERS", errors.GetAppError(err).Code)
}

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    entities.FreeText
		wantErr bool
	}{
		{
			name: "valid text",
			text: entities.FreeText{ID: "t1", Text: "note"},
		},
		{
			name:    "blank text rejected",
			text:    entities.FreeText{ID: "t1", Text: "   "},
			wantErr: true,
		},
		{
			name:    "text too long",
			text:    entities.FreeText{ID: "t1", Text: strings.Repeat("x", 10001)},
			wantErr: true,
		},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateText(tt.text)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateShape(t *testing.T) {
	end := valueobjects.Position{X: 50, Y: 50}
	tests := []struct {
		name    string
		shape   entities.FreeShape
		wantErr bool
	}{
		{
			name:  "valid rectangle",
			shape: entities.FreeShape{ID: "s1", Shape: entities.ShapeRectangle, Width: 100, Height: 60},
		},
		{
			name:  "valid line",
			shape: entities.FreeShape{ID: "s2", Shape: entities.ShapeLine, EndPosition: &end},
		},
		{
			name:    "line without end position",
			shape:   entities.FreeShape{ID: "s3", Shape: entities.ShapeLine},
			wantErr: true,
		},
		{
			name:    "unknown shape kind",
			shape:   entities.FreeShape{ID: "s4", Shape: entities.ShapeKind("hexagon")},
			wantErr: true,
		},
		{
			name:    "negative extents",
			shape:   entities.FreeShape{ID: "s5", Shape: entities.ShapeCircle, Width: -1},
			wantErr: true,
		},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateShape(tt.shape)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMembership(t *testing.T) {
	nodes := []entities.Node{
		{ID: "root", Kind: entities.KindGroup},
		{ID: "mid", Kind: entities.KindGroup, ParentID: "root"},
		{ID: "leaf", Kind: entities.KindGroup, ParentID: "mid"},
		{ID: "r1", Kind: entities.KindTopology, ParentID: "leaf"},
	}

	tests := []struct {
		name      string
		childID   string
		parentID  string
		wantCycle bool
		wantErr   bool
	}{
		{
			name:     "move to root is always allowed",
			childID:  "mid",
			parentID: "",
		},
		{
			name:     "valid reparent",
			childID:  "r1",
			parentID: "root",
		},
		{
			name:      "direct cycle",
			childID:   "mid",
			parentID:  "mid",
			wantCycle: true,
		},
		{
			name:      "transitive cycle",
			childID:   "root",
			parentID:  "leaf",
			wantCycle: true,
		},
		{
			name:     "unknown parent",
			childID:  "r1",
			parentID: "ghost",
			wantErr:  true,
		},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateMembership(nodes, tt.childID, tt.parentID)
			switch {
			case tt.wantCycle:
				require.Error(t, err)
				assert.Equal(t, errors.ErrGroupCycle, err)
			case tt.wantErr:
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMembershipDepthLimit(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	cfg.MaxGroupNesting = 2
	v := NewAnnotationValidator(cfg)

	nodes := []entities.Node{
		{ID: "a", Kind: entities.KindGroup},
		{ID: "b", Kind: entities.KindGroup, ParentID: "a"},
		{ID: "c", Kind: entities.KindGroup, ParentID: "b"},
	}

	err := v.ValidateMembership(nodes, "x", "c")
	require.Error(t, err)
	assert.Equal(t, "NESTING_TOO_DEEP", errors.GetAppError(err).Code)
}

func TestValidateForest(t *testing.T) {
	tests := []struct {
		name    string
		nodes   []entities.Node
		wantErr bool
	}{
		{
			name: "valid forest",
			nodes: []entities.Node{
				{ID: "root", Kind: entities.KindGroup, Members: []string{"r1"}},
				{ID: "r1", Kind: entities.KindTopology, ParentID: "root"},
			},
		},
		{
			name: "dangling parent",
			nodes: []entities.Node{
				{ID: "r1", Kind: entities.KindTopology, ParentID: "ghost"},
			},
			wantErr: true,
		},
		{
			name: "dangling member",
			nodes: []entities.Node{
				{ID: "root", Kind: entities.KindGroup, Members: []string{"ghost"}},
			},
			wantErr: true,
		},
		{
			name: "two-node cycle",
			nodes: []entities.Node{
				{ID: "a", Kind: entities.KindGroup, ParentID: "b"},
				{ID: "b", Kind: entities.KindGroup, ParentID: "a"},
			},
			wantErr: true,
		},
	}

	v := newValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateForest(tt.nodes)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
