package config

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// History constraints
	UndoStackDepth int

	// Annotation constraints
	MaxMembersPerGroup int
	MaxGroupNesting    int
	MaxLabelLength     int
	MaxTextLength      int

	// Geometry constraints
	MinGroupWidth  float64
	MinGroupHeight float64
	DefaultWidth   float64
	DefaultHeight  float64

	// Validation settings
	AllowEmptyLabels  bool
	AllowNestedGroups bool
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		UndoStackDepth: 100,

		MaxMembersPerGroup: 500,
		MaxGroupNesting:    10,
		MaxLabelLength:     200,
		MaxTextLength:      10000,

		MinGroupWidth:  20,
		MinGroupHeight: 20,
		DefaultWidth:   200,
		DefaultHeight:  150,

		AllowEmptyLabels:  true,
		AllowNestedGroups: true,
	}
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	cfg := DefaultDomainConfig()

	// More permissive for development
	cfg.MaxMembersPerGroup = 5000
	cfg.MaxGroupNesting = 50

	return cfg
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.UndoStackDepth <= 0 {
		c.UndoStackDepth = DefaultDomainConfig().UndoStackDepth
	}
	return nil
}
