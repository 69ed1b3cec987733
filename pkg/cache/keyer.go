package cache

// Keyer generates cache keys for the different caching concerns.
// Keys are namespaced by concern so that HTTP responses, dependency
// graphs, and rendered artifacts never collide in a shared backend.
type Keyer interface {
	// HTTPKey generates a key for HTTP response caching.
	HTTPKey(namespace, key string) string

	// GraphKey generates a key for dependency graph caching.
	GraphKey(remote, ref string, opts GraphKeyOpts) string

	// ArtifactKey generates a key for rendered artifact caching.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// GraphKeyOpts are the parameters that affect dependency graph identity.
// Two graph requests with different options must produce different keys.
type GraphKeyOpts struct {
	PackageID string `json:"package_id,omitempty"` // Binary whose requirements seed the graph
	Revision  string `json:"revision,omitempty"`   // Recipe revision, empty means latest
}

// ArtifactKeyOpts are the parameters that affect rendered artifact identity.
type ArtifactKeyOpts struct {
	Format string `json:"format"` // Output format: "dot" or "svg"
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard key generator.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP response caching.
// The namespace identifies the API client (e.g., "conan:conancenter:").
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// GraphKey generates a key for dependency graph caching.
// The options are hashed into the key so that different package IDs or
// revisions never share an entry.
func (k *DefaultKeyer) GraphKey(remote, ref string, opts GraphKeyOpts) string {
	return hashKey("graph", remote, ref, opts)
}

// ArtifactKey generates a key for rendered artifact caching.
// The graphHash should be a content hash of the graph being rendered.
func (k *DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}
