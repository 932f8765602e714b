package cache

// keyVersion is bumped whenever the stored entry layout changes.
const keyVersion = "v1"

// Keyer builds cache keys.
type Keyer interface {
	// SequenceKey identifies a sequence by engine name and parameters. params must
	// not include the step count.
	SequenceKey(engine string, params any) string
	// GraphKey identifies a rendered transition graph.
	GraphKey(params any, format string) string
}

// DefaultKeyer hashes JSON-encoded parameters.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// SequenceKey returns "seq:<engine>:<hash>".
func (DefaultKeyer) SequenceKey(engine string, params any) string {
	return hashKey("seq:"+engine, keyVersion, params)
}

// GraphKey returns "graph:<hash>".
func (DefaultKeyer) GraphKey(params any, format string) string {
	return hashKey("graph", keyVersion, params, format)
}
