package interp

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"shapekit/internal/ast"
)

// DefaultCacheSize bounds the number of memoised declaration and lazy
// expansions kept by one interpreter.
const DefaultCacheSize = 1024

// memo caches compiled interpreters by node fingerprint. It belongs to the
// interpreter instance; nodes themselves never cache.
type memo[V any] struct {
	cache *lru.Cache[ast.Digest, V]
}

func newMemo[V any](size int) (*memo[V], error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[ast.Digest, V](size)
	if err != nil {
		return nil, fmt.Errorf("interp: memo cache: %w", err)
	}
	return &memo[V]{cache: cache}, nil
}

// load returns the cached value for node or builds and stores it.
func (m *memo[V]) load(node ast.AST, build func() V) V {
	key := ast.Fingerprint(node)
	if v, ok := m.cache.Get(key); ok {
		return v
	}
	v := build()
	m.cache.Add(key, v)
	return v
}

// Len reports the number of cached entries.
func (m *memo[V]) Len() int {
	return m.cache.Len()
}
