package capability

// Factory is an interpreter factory registered for a capability. Its concrete
// signature is owned by the interpreter that defines the capability.
type Factory = any

// Provider maps capability identifiers to interpreter factories. A Provider is
// immutable once built; With and Merge return new providers.
type Provider struct {
	entries map[ID]Factory
}

// Empty is the provider with no registered capabilities.
var Empty = Provider{}

// NewProvider builds a provider from a registration table.
func NewProvider(entries map[ID]Factory) Provider {
	if len(entries) == 0 {
		return Empty
	}
	p := Provider{entries: make(map[ID]Factory, len(entries))}
	for id, f := range entries {
		if !id.Valid() || f == nil {
			continue
		}
		p.entries[id] = f
	}
	return p
}

// With returns a copy of p with f registered under id.
func (p Provider) With(id ID, f Factory) Provider {
	out := Provider{entries: make(map[ID]Factory, len(p.entries)+1)}
	for k, v := range p.entries {
		out.entries[k] = v
	}
	if id.Valid() && f != nil {
		out.entries[id] = f
	}
	return out
}

// Merge combines providers left to right; later providers win on conflicts.
func Merge(providers ...Provider) Provider {
	out := Provider{entries: make(map[ID]Factory)}
	for _, p := range providers {
		for k, v := range p.entries {
			out.entries[k] = v
		}
	}
	return out
}

// Lookup returns the factory registered for id.
func (p Provider) Lookup(id ID) (Factory, bool) {
	f, ok := p.entries[id]
	return f, ok
}

// Has reports whether a factory is registered for id.
func (p Provider) Has(id ID) bool {
	_, ok := p.entries[id]
	return ok
}

// Len returns the number of registered capabilities.
func (p Provider) Len() int {
	return len(p.entries)
}

// Find looks up id and asserts the factory to F. A factory registered with a
// different type is reported as absent.
func Find[F any](p Provider, id ID) (F, bool) {
	var zero F
	raw, ok := p.entries[id]
	if !ok {
		return zero, false
	}
	f, ok := raw.(F)
	if !ok {
		return zero, false
	}
	return f, true
}
