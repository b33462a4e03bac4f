package cache

// Keyer builds cache keys for the values the pipeline stores.
type Keyer interface {
	// LayoutKey is the key of a computed layout.
	LayoutKey(catalogHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key of an artifact derived from a layout, such as
	// a rendered lattice trace.
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string

	// WallKey is the key under which the last good layout of a wall is kept.
	WallKey(wall string) string
}

// LayoutKeyOpts lists every input that changes a layout.
type LayoutKeyOpts struct {
	Pattern     string     `json:"pattern"`
	Proportion  int        `json:"proportion"`
	UnitLength  float64    `json:"unit_length"`
	GroutWidth  float64    `json:"grout_width"`
	Scale       float64    `json:"scale"`
	Placement   string     `json:"placement,omitempty"`
	Offset      [2]float64 `json:"offset"`
	SurfaceHash string     `json:"surface_hash"`
}

// ArtifactKeyOpts selects an artifact of a layout.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(catalogHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", catalogHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, opts)
}

// WallKey implements [Keyer].
func (DefaultKeyer) WallKey(wall string) string {
	return "wall:" + wall
}
