package valueobjects

import pkgerrors "topocanvas/pkg/errors"

// Bounds represents an axis-aligned rectangle described by its center
// and full extents. Group containment queries operate on these.
type Bounds struct {
	Center Position `json:"center" yaml:"center"`
	Width  float64  `json:"width" yaml:"width"`
	Height float64  `json:"height" yaml:"height"`
}

// NewBounds creates bounds with validation
func NewBounds(center Position, width, height float64) (Bounds, error) {
	b := Bounds{Center: center, Width: width, Height: height}
	if !b.IsValid() {
		return Bounds{}, pkgerrors.NewValidationError("invalid bounds: extents must be finite and non-negative")
	}
	return b, nil
}

// IsValid checks that the center is finite and the extents are finite
// and non-negative. Containment queries skip invalid candidates rather
// than failing.
func (b Bounds) IsValid() bool {
	return b.Center.IsValid() &&
		isFinite(b.Width) && b.Width >= 0 &&
		isFinite(b.Height) && b.Height >= 0
}

// Min returns the top-left corner
func (b Bounds) Min() Position {
	return Position{X: b.Center.X - b.Width/2, Y: b.Center.Y - b.Height/2}
}

// Max returns the bottom-right corner
func (b Bounds) Max() Position {
	return Position{X: b.Center.X + b.Width/2, Y: b.Center.Y + b.Height/2}
}

// Area returns the rectangle area
func (b Bounds) Area() float64 {
	return b.Width * b.Height
}

// Contains reports whether the point lies inside the rectangle,
// boundary included
func (b Bounds) Contains(p Position) bool {
	if !b.IsValid() || !p.IsValid() {
		return false
	}
	min, max := b.Min(), b.Max()
	return p.X >= min.X && p.X <= max.X && p.Y >= min.Y && p.Y <= max.Y
}

// ContainsBounds reports whether other lies entirely inside the rectangle
func (b Bounds) ContainsBounds(other Bounds) bool {
	if !b.IsValid() || !other.IsValid() {
		return false
	}
	return b.Contains(other.Min()) && b.Contains(other.Max())
}
