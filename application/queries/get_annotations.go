package queries

// GetAnnotationsQuery asks for the typed annotation views projected
// from the current node set
type GetAnnotationsQuery struct{}

// Validate validates the query
func (q GetAnnotationsQuery) Validate() error {
	return nil
}
