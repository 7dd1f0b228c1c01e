package cache

// Keyer builds cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey identifies a layout computed from an expression.
	LayoutKey(expression string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered format of a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds every option that changes a computed layout.
type LayoutKeyOpts struct {
	VizType       string `json:"viz_type"`
	GroupProducts bool   `json:"group_products"`
	Center        bool   `json:"center"`
	Detailed      bool   `json:"detailed"`
	Style         string `json:"style"`
}

// ArtifactKeyOpts holds every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format    string  `json:"format"`
	Style     string  `json:"style"`
	Labels    bool    `json:"labels"`
	Scale     float64 `json:"scale"`
	PNGEngine string  `json:"png_engine"`
}

// DefaultKeyer hashes the key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(expression string, opts LayoutKeyOpts) string {
	return hashKey("layout", expression, opts)
}

// ArtifactKey returns "artifact:<format>:<sha256>".
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, layoutHash, opts)
}
