package services

import (
	"topocanvas/domain/core/entities"
	"topocanvas/domain/core/valueobjects"
)

// MembershipResolver answers the geometric containment queries used for
// drop-to-group reparenting and placement of new annotations. Both
// queries are pure; candidates with malformed bounds are skipped rather
// than reported, and nil means "no container" (root placement).
type MembershipResolver struct{}

// NewMembershipResolver creates a resolver
func NewMembershipResolver() MembershipResolver {
	return MembershipResolver{}
}

// DeepestGroupAt returns the group whose bounds contain the point and
// whose area is smallest, i.e. the most deeply nested container. Ties
// are broken by slice order: the first declared candidate wins.
func (MembershipResolver) DeepestGroupAt(p valueobjects.Position, groups []entities.Group) *entities.Group {
	var best *entities.Group
	var bestArea float64

	for i := range groups {
		b := groups[i].Bounds()
		if !b.Contains(p) {
			continue
		}
		area := b.Area()
		if best == nil || area < bestArea {
			g := groups[i]
			best = &g
			bestArea = area
		}
	}

	return best
}

// ParentGroupForBounds returns the smallest group, excluding excludeID,
// whose bounds fully contain rect. Used to auto-nest a freshly created
// group inside an existing one; excludeID prevents self-containment.
func (MembershipResolver) ParentGroupForBounds(rect valueobjects.Bounds, groups []entities.Group, excludeID string) *entities.Group {
	var best *entities.Group
	var bestArea float64

	for i := range groups {
		if groups[i].ID == excludeID {
			continue
		}
		b := groups[i].Bounds()
		if !b.ContainsBounds(rect) {
			continue
		}
		area := b.Area()
		if best == nil || area < bestArea {
			g := groups[i]
			best = &g
			bestArea = area
		}
	}

	return best
}
