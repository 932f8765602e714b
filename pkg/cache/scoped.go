package cache

// ScopedKeyer prefixes every key of an inner Keyer. The HTTP server uses it to
// keep its entries apart from CLI entries sharing a Redis or MongoDB instance.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "server:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) SequenceKey(engine string, params any) string {
	return k.prefix + k.inner.SequenceKey(engine, params)
}

func (k *ScopedKeyer) GraphKey(params any, format string) string {
	return k.prefix + k.inner.GraphKey(params, format)
}
