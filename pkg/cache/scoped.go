package cache

// ScopedKeyer prefixes the keys of another [Keyer]. Deployments sharing one
// Redis or MongoDB backend set a namespace so their entries never collide:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "team-a:")
//	keyer.SelfKey(fp) // "team-a:self:<fp>"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or a [DefaultKeyer] when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return ScopedKeyer{inner: inner, prefix: prefix}
}

func (k ScopedKeyer) CompareKey(fingerprintA, fingerprintB string, opts CompareKeyOpts) string {
	return k.prefix + k.inner.CompareKey(fingerprintA, fingerprintB, opts)
}

func (k ScopedKeyer) SelfKey(fingerprint string) string {
	return k.prefix + k.inner.SelfKey(fingerprint)
}
