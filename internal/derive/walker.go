package derive

import "shapekit/internal/ast"

// walker carries the Lazy nodes currently being forced by one traversal.
// Re-entering one of them without passing through a struct field or tuple
// component would never terminate, so such visits are cut short.
type walker struct {
	active map[*ast.Lazy]struct{}
}

func newWalker() *walker {
	return &walker{active: make(map[*ast.Lazy]struct{})}
}

// force evaluates l unless it is already on the stack. The returned release
// func must be called once the forced node has been consumed.
func (w *walker) force(l *ast.Lazy) (ast.AST, func(), bool) {
	if _, busy := w.active[l]; busy {
		return nil, func() {}, false
	}
	w.active[l] = struct{}{}
	return l.Force(), func() { delete(w.active, l) }, true
}
