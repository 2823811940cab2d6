package valueobjects

import pkgerrors "topocanvas/pkg/errors"

// LatLng holds geographic coordinates for nodes placed on a map layer
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// NewLatLng creates geographic coordinates with range validation
func NewLatLng(lat, lng float64) (LatLng, error) {
	if !isFinite(lat) || !isFinite(lng) || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return LatLng{}, pkgerrors.NewValidationError("invalid geographic coordinates")
	}
	return LatLng{Lat: lat, Lng: lng}, nil
}

// Equals checks if two coordinate pairs are equal
func (g LatLng) Equals(other LatLng) bool {
	return g.Lat == other.Lat && g.Lng == other.Lng
}
