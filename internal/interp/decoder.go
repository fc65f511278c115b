package interp

import (
	"sort"

	"shapekit/internal/ast"
	"shapekit/internal/capability"
	"shapekit/internal/result"
)

// Decoder validates and normalises a value against a type.
type Decoder func(value any) Result

// DecoderFactory is the provider entry for capability.Decoder.
type DecoderFactory func(params []Decoder) Decoder

// FromGuard lifts a guard into a decoder that fails with a type mismatch
// naming expected.
func FromGuard(g Guard, expected string) Decoder {
	return func(v any) Result {
		if g(v) {
			return result.Succeed[Issue](v)
		}
		return result.Fail[Issue, any](newIssue(CodeTypeMismatch, "expected %s, got %s", expected, describe(v)))
	}
}

// Decoders compiles AST nodes into decoders. Struct decoders drop keys the
// type does not declare and report them as warnings; union decoders try
// members in their stored order.
type Decoders struct {
	memo    *memo[Decoder]
	guards  *Guards
	printer *Printer
}

// NewDecoders returns a decoder compiler. guards backs declarations whose
// provider only supplies a guard.
func NewDecoders(size int, guards *Guards) (*Decoders, error) {
	m, err := newMemo[Decoder](size)
	if err != nil {
		return nil, err
	}
	if guards == nil {
		if guards, err = NewGuards(size); err != nil {
			return nil, err
		}
	}
	return &Decoders{memo: m, guards: guards, printer: NewPrinter()}, nil
}

// Compile builds a decoder for node.
func (d *Decoders) Compile(node ast.AST) Decoder {
	switch n := node.(type) {
	case *ast.TypeAliasDeclaration:
		return d.memo.load(n, func() Decoder { return d.declaration(n) })
	case *ast.LiteralType, *ast.Keyword:
		if n.Kind() == ast.KindNever {
			return func(v any) Result {
				return result.Fail[Issue, any](newIssue(CodeNever, "no value inhabits never, got %s", describe(v)))
			}
		}
		return FromGuard(d.guards.Compile(n), d.printer.Print(n))
	case *ast.Struct:
		return d.structDecoder(n)
	case *ast.Tuple:
		return d.tupleDecoder(n)
	case *ast.Union:
		return d.unionDecoder(n)
	case *ast.Lazy:
		return func(v any) Result {
			return d.memo.load(n, func() Decoder { return d.Compile(n.Force()) })(v)
		}
	}
	return func(v any) Result {
		return result.Fail[Issue, any](newIssue(CodeTypeMismatch, "unsupported node %T", node))
	}
}

func (d *Decoders) declaration(decl *ast.TypeAliasDeclaration) Decoder {
	if factory, ok := capability.Find[DecoderFactory](decl.Provider, capability.Decoder); ok {
		params := make([]Decoder, len(decl.TypeParameters))
		for i, p := range decl.TypeParameters {
			params[i] = d.Compile(p)
		}
		return factory(params)
	}
	if decl.Provider.Has(capability.Guard) {
		return FromGuard(d.guards.Compile(decl), d.printer.Print(decl))
	}
	return d.Compile(decl.Type)
}

func (d *Decoders) structDecoder(s *ast.Struct) Decoder {
	type fieldDecoder struct {
		key      ast.Key
		name     string
		optional bool
		decode   Decoder
	}
	fields := make([]fieldDecoder, 0, len(s.Fields))
	for _, f := range s.Fields {
		name, ok := recordKey(f.Key)
		if !ok {
			continue
		}
		fields = append(fields, fieldDecoder{key: f.Key, name: name, optional: f.Optional, decode: d.Compile(f.Value)})
	}
	sigs := stringSignatures(s)
	sigDecoders := make([]Decoder, len(sigs))
	for i, sig := range sigs {
		sigDecoders[i] = d.Compile(sig.Value)
	}
	known := fieldKeys(s)
	return func(v any) Result {
		rec, ok := asRecord(v)
		if !ok {
			return result.Fail[Issue, any](newIssue(CodeTypeMismatch, "expected object, got %s", describe(v)))
		}
		slots := make([]slotResult, 0, len(rec)+len(fields))
		for _, f := range fields {
			value, present := rec[f.name]
			if !present {
				if !f.optional {
					slots = append(slots, result.Fail[Issue, slot](Issue{Path: []ast.Key{f.key}, Code: CodeMissingKey, Message: "required key is missing"}))
				}
				continue
			}
			if f.optional && IsUndefined(value) {
				slots = append(slots, result.Succeed[Issue](slot{name: f.name, value: value, keep: true}))
				continue
			}
			slots = append(slots, kept(f.name, at(f.key, f.decode(value))))
		}
		rest := make([]string, 0, len(rec))
		for key := range rec {
			if _, isField := known[key]; !isField {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			if len(sigDecoders) == 0 {
				slots = append(slots, result.Warn[Issue](slot{name: key}, Issue{Path: []ast.Key{ast.StringKey(key)}, Code: CodeUnexpectedKey, Message: "key is not declared and was dropped"}))
				continue
			}
			r := result.Succeed[Issue](rec[key])
			for _, sd := range sigDecoders {
				r = result.FlatMap[Issue, any, any](r, sd)
			}
			slots = append(slots, kept(key, at(ast.StringKey(key), r)))
		}
		return result.Map(result.Join(slots), func(ss []slot) any {
			out := make(map[string]any, len(ss))
			for _, sl := range ss {
				if sl.keep {
					out[sl.name] = sl.value
				}
			}
			return out
		})
	}
}

func (d *Decoders) tupleDecoder(t *ast.Tuple) Decoder {
	comps := make([]Decoder, len(t.Components))
	for i, c := range t.Components {
		comps[i] = d.Compile(c.Value)
	}
	var rest Decoder
	if t.Rest != nil {
		rest = d.Compile(t.Rest)
	}
	components := t.Components
	return func(v any) Result {
		arr, ok := asArray(v)
		if !ok {
			return result.Fail[Issue, any](newIssue(CodeTypeMismatch, "expected array, got %s", describe(v)))
		}
		slots := make([]slotResult, 0, max(len(arr), len(components)))
		for i, c := range components {
			key := ast.IndexKey(i)
			if i >= len(arr) {
				if !c.Optional {
					slots = append(slots, result.Fail[Issue, slot](Issue{Path: []ast.Key{key}, Code: CodeMissingIndex, Message: "required element is missing"}))
				}
				continue
			}
			if c.Optional && IsUndefined(arr[i]) {
				slots = append(slots, result.Succeed[Issue](slot{value: arr[i], keep: true}))
				continue
			}
			slots = append(slots, kept("", at(key, comps[i](arr[i]))))
		}
		for i := len(components); i < len(arr); i++ {
			key := ast.IndexKey(i)
			if rest == nil {
				slots = append(slots, result.Warn[Issue](slot{}, Issue{Path: []ast.Key{key}, Code: CodeUnexpectedIndex, Message: "element beyond tuple length was dropped"}))
				continue
			}
			slots = append(slots, kept("", at(key, rest(arr[i]))))
		}
		return result.Map(result.Join(slots), func(ss []slot) any {
			out := make([]any, 0, len(ss))
			for _, sl := range ss {
				if sl.keep {
					out = append(out, sl.value)
				}
			}
			return out
		})
	}
}

func (d *Decoders) unionDecoder(u *ast.Union) Decoder {
	members := make([]Decoder, len(u.Members))
	for i, m := range u.Members {
		members[i] = d.Compile(m)
	}
	return func(v any) Result {
		all := []Issue{newIssue(CodeNoMatch, "no member accepted %s", describe(v))}
		var fallback *Result
		for _, m := range members {
			r := m(v)
			switch r.Outcome() {
			case result.OutcomeSuccess:
				return r
			case result.OutcomeWarning:
				if fallback == nil {
					fallback = &r
				}
			default:
				all = append(all, r.Errors()...)
			}
		}
		if fallback != nil {
			return *fallback
		}
		return result.FailAll[Issue, any](all)
	}
}

// slot is one decoded struct entry or tuple element. Dropped input carries
// keep=false so its warning still joins the outcome.
type slot struct {
	name  string
	value any
	keep  bool
}

type slotResult = result.Result[Issue, slot]

func kept(name string, r Result) slotResult {
	return result.Map(r, func(v any) slot { return slot{name: name, value: v, keep: true} })
}

// at re-roots the issues of r under key.
func at(key ast.Key, r Result) Result {
	switch r.Outcome() {
	case result.OutcomeWarning:
		v, _ := r.Value()
		return result.WarnAll[Issue, any](v, under(key, r.Errors()))
	case result.OutcomeFailure:
		return result.FailAll[Issue, any](under(key, r.Errors()))
	}
	return r
}
