package schemafile

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/unicode/norm"

	"shapekit/internal/ast"
	"shapekit/internal/capability"
	"shapekit/internal/trace"
)

var (
	// ErrUnknownType is returned for a name that no definition declares.
	ErrUnknownType = errors.New("unknown type")
	// ErrInvalidSpec wraps malformed type expressions.
	ErrInvalidSpec = errors.New("invalid type spec")
)

// Schema is a loaded document: one declaration per named definition.
type Schema struct {
	Path  string
	Root  string
	decls map[string]*ast.TypeAliasDeclaration
	names []string
}

// Names returns the definition names in sorted order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Lookup returns the declaration of name.
func (s *Schema) Lookup(name string) (*ast.TypeAliasDeclaration, error) {
	d, ok := s.decls[norm.NFC.String(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return d, nil
}

// Resolve returns the declaration of name, or of the root when name is empty.
func (s *Schema) Resolve(name string) (*ast.TypeAliasDeclaration, error) {
	if name == "" {
		if s.Root == "" {
			return nil, fmt.Errorf("%s: no root type and no --type given", s.Path)
		}
		name = s.Root
	}
	return s.Lookup(name)
}

// LoadFile reads and builds the schema document at path.
func LoadFile(ctx context.Context, path string) (*Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return Parse(ctx, path, data)
}

// Parse builds a schema from TOML text. name is used in error messages.
func Parse(ctx context.Context, name string, data []byte) (*Schema, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeLoad, "schema:"+name, trace.ParentFromContext(ctx))

	var doc Document
	meta, err := toml.Decode(string(data), &doc)
	if err != nil {
		span.Fail().End(err.Error())
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", name, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		err := fmt.Errorf("%s: %w: unknown keys %s", name, ErrInvalidSpec, strings.Join(keys, ", "))
		span.Fail().End(err.Error())
		return nil, err
	}
	s, err := build(name, &doc, tracer, span.ID())
	if err != nil {
		span.Fail().End(err.Error())
		return nil, err
	}
	span.WithExtra("types", fmt.Sprint(len(s.names))).End("")
	return s, nil
}

type builder struct {
	schema  *Schema
	refs    map[string]*ast.Lazy
	symbols map[string]*ast.Symbol
	errs    []error
}

func build(name string, doc *Document, tracer trace.Tracer, parent uint64) (*Schema, error) {
	s := &Schema{
		Path:  name,
		Root:  norm.NFC.String(doc.Root),
		decls: make(map[string]*ast.TypeAliasDeclaration, len(doc.Types)),
	}
	b := &builder{
		schema:  s,
		refs:    make(map[string]*ast.Lazy, len(doc.Types)),
		symbols: make(map[string]*ast.Symbol),
	}
	specs := make(map[string]TypeSpec, len(doc.Types))
	for raw, spec := range doc.Types {
		n := norm.NFC.String(raw)
		specs[n] = spec
		s.names = append(s.names, n)
	}
	sort.Strings(s.names)
	// Declarations exist before any body is built so refs resolve in any order.
	for _, n := range s.names {
		n := n
		decl := ast.Declare(ast.NewSymbol(n), capability.Empty)
		decl.Config = n
		s.decls[n] = decl
		b.refs[n] = ast.NewLazy(func() ast.AST { return s.decls[n] })
	}
	for _, n := range s.names {
		spec := specs[n]
		s.decls[n].Type = b.typeOf(&spec, "types."+n)
		trace.Point(tracer, trace.ScopeNode, n, spec.Kind, parent)
	}
	if s.Root != "" {
		if _, ok := s.decls[s.Root]; !ok {
			b.fail("root", "%w: %q", ErrUnknownType, s.Root)
		}
	}
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("%s: %w", name, errors.Join(b.errs...))
	}
	return s, nil
}

func (b *builder) fail(path, format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf("%s: "+format, append([]any{path}, args...)...))
}

func (b *builder) typeOf(spec *TypeSpec, path string) ast.AST {
	kind := strings.ToLower(strings.TrimSpace(spec.Kind))
	if kw, ok := keywords[kind]; ok {
		return kw
	}
	switch kind {
	case "null":
		return ast.NewLiteralType(ast.NullLiteral())
	case "literal":
		return b.literal(spec, path)
	case "ref":
		ref, ok := b.refs[norm.NFC.String(spec.Name)]
		if !ok {
			b.fail(path, "%w: %q", ErrUnknownType, spec.Name)
			return ast.NeverKeyword
		}
		return ref
	case "struct":
		fields := make([]ast.Field, len(spec.Fields))
		for i := range spec.Fields {
			f := &spec.Fields[i]
			value := b.typeOf(&f.Type, fmt.Sprintf("%s.fields[%d].type", path, i))
			fields[i] = ast.NewField(ast.StringKey(norm.NFC.String(f.Key)), value, f.Optional, f.Readonly)
		}
		sigs := make([]ast.IndexSignature, len(spec.Index))
		for i := range spec.Index {
			sig := &spec.Index[i]
			sub := fmt.Sprintf("%s.index[%d]", path, i)
			var key ast.IndexKeyKind
			switch sig.Key {
			case "", "string":
				key = ast.IndexString
			case "symbol":
				key = ast.IndexSymbol
			default:
				b.fail(sub, "%w: index key %q (expected string|symbol)", ErrInvalidSpec, sig.Key)
			}
			sigs[i] = ast.NewIndexSignature(key, b.typeOf(&sig.Type, sub+".type"), sig.Readonly)
		}
		return ast.NewStruct(fields, sigs)
	case "tuple":
		comps := make([]ast.Component, len(spec.Elements))
		for i := range spec.Elements {
			el := &spec.Elements[i]
			comps[i] = ast.NewComponent(b.typeOf(&el.Type, fmt.Sprintf("%s.elements[%d].type", path, i)), el.Optional)
		}
		var rest ast.AST
		if spec.Rest != nil {
			rest = b.typeOf(spec.Rest, path+".rest")
		}
		return ast.NewTuple(comps, rest, spec.Readonly)
	case "union":
		members := make([]ast.AST, len(spec.Members))
		for i := range spec.Members {
			members[i] = b.typeOf(&spec.Members[i], fmt.Sprintf("%s.members[%d]", path, i))
		}
		return ast.NewUnion(members...)
	}
	b.fail(path, "%w: unknown kind %q", ErrInvalidSpec, spec.Kind)
	return ast.NeverKeyword
}

func (b *builder) literal(spec *TypeSpec, path string) ast.AST {
	switch {
	case spec.BigInt != "":
		n, ok := new(big.Int).SetString(spec.BigInt, 10)
		if !ok {
			b.fail(path, "%w: bigint %q", ErrInvalidSpec, spec.BigInt)
			return ast.NeverKeyword
		}
		return ast.NewLiteralType(ast.BigIntLiteral(n))
	case spec.Symbol != "":
		sym, ok := b.symbols[spec.Symbol]
		if !ok {
			sym = ast.NewSymbol(spec.Symbol)
			b.symbols[spec.Symbol] = sym
		}
		return ast.NewLiteralType(ast.SymbolLiteral(sym))
	}
	switch v := spec.Value.(type) {
	case string:
		return ast.NewLiteralType(ast.StringLiteral(norm.NFC.String(v)))
	case int64:
		if int64(float64(v)) != v {
			b.fail(path, "%w: integer %d is not exactly representable as a number", ErrInvalidSpec, v)
			return ast.NeverKeyword
		}
		return ast.NewLiteralType(ast.NumberLiteral(float64(v)))
	case float64:
		return ast.NewLiteralType(ast.NumberLiteral(v))
	case bool:
		return ast.NewLiteralType(ast.BooleanLiteral(v))
	case nil:
		b.fail(path, "%w: literal without value", ErrInvalidSpec)
	default:
		b.fail(path, "%w: unsupported literal %T", ErrInvalidSpec, v)
	}
	return ast.NeverKeyword
}

var keywords = map[string]ast.AST{
	"undefined": ast.UndefinedKeyword,
	"never":     ast.NeverKeyword,
	"unknown":   ast.UnknownKeyword,
	"any":       ast.AnyKeyword,
	"string":    ast.StringKeyword,
	"number":    ast.NumberKeyword,
	"boolean":   ast.BooleanKeyword,
	"bigint":    ast.BigIntKeyword,
	"symbol":    ast.SymbolKeyword,
}
