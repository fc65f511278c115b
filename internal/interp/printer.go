package interp

import (
	"regexp"
	"strconv"
	"strings"

	"shapekit/internal/ast"
	"shapekit/internal/capability"
)

// PrinterFactory is the provider entry for capability.Printer. It receives
// the rendered type parameters.
type PrinterFactory func(params []string) string

// Printer renders nodes as type expressions.
type Printer struct {
	// ExpandDeclarations prints the body of declarations without a printer
	// capability instead of their name.
	ExpandDeclarations bool
}

// NewPrinter returns a printer that names declarations.
func NewPrinter() *Printer {
	return &Printer{}
}

// Print renders node. A Lazy reached again while it is being printed is
// rendered as <recursive>.
func (p *Printer) Print(node ast.AST) string {
	var sb strings.Builder
	p.write(&sb, node, make(map[*ast.Lazy]struct{}))
	return sb.String()
}

var identRE = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// FormatKey renders a property key as it would appear in a type literal.
func FormatKey(k ast.Key) string {
	switch k.Kind() {
	case ast.KeyIndex:
		return k.String()
	case ast.KeySymbol:
		return "[" + k.String() + "]"
	}
	if identRE.MatchString(k.String()) {
		return k.String()
	}
	return strconv.Quote(k.String())
}

func keywordName(kind ast.Kind) string {
	switch kind {
	case ast.KindUndefined:
		return "undefined"
	case ast.KindNever:
		return "never"
	case ast.KindUnknown:
		return "unknown"
	case ast.KindAny:
		return "any"
	case ast.KindString:
		return "string"
	case ast.KindNumber:
		return "number"
	case ast.KindBoolean:
		return "boolean"
	case ast.KindBigInt:
		return "bigint"
	case ast.KindSymbol:
		return "symbol"
	}
	return kind.String()
}

func (p *Printer) write(sb *strings.Builder, node ast.AST, active map[*ast.Lazy]struct{}) {
	switch n := node.(type) {
	case nil:
		sb.WriteString("?")
	case *ast.Keyword:
		sb.WriteString(keywordName(n.Kind()))
	case *ast.LiteralType:
		sb.WriteString(n.Literal.String())
	case *ast.TypeAliasDeclaration:
		p.writeDeclaration(sb, n, active)
	case *ast.Struct:
		p.writeStruct(sb, n, active)
	case *ast.Tuple:
		p.writeTuple(sb, n, active)
	case *ast.Union:
		for i, m := range n.Members {
			if i > 0 {
				sb.WriteString(" | ")
			}
			p.write(sb, m, active)
		}
	case *ast.Lazy:
		if _, busy := active[n]; busy {
			sb.WriteString("<recursive>")
			return
		}
		active[n] = struct{}{}
		p.write(sb, n.Force(), active)
		delete(active, n)
	}
}

func (p *Printer) writeDeclaration(sb *strings.Builder, d *ast.TypeAliasDeclaration, active map[*ast.Lazy]struct{}) {
	params := make([]string, len(d.TypeParameters))
	for i, tp := range d.TypeParameters {
		var inner strings.Builder
		p.write(&inner, tp, active)
		params[i] = inner.String()
	}
	if factory, ok := capability.Find[PrinterFactory](d.Provider, capability.Printer); ok {
		sb.WriteString(factory(params))
		return
	}
	name := d.Name()
	if p.ExpandDeclarations || name == "" {
		p.write(sb, d.Type, active)
		return
	}
	sb.WriteString(name)
	if len(params) > 0 {
		sb.WriteString("<")
		sb.WriteString(strings.Join(params, ", "))
		sb.WriteString(">")
	}
}

func (p *Printer) writeStruct(sb *strings.Builder, s *ast.Struct, active map[*ast.Lazy]struct{}) {
	if len(s.Fields) == 0 && len(s.IndexSignatures) == 0 {
		sb.WriteString("{}")
		return
	}
	sb.WriteString("{ ")
	first := true
	sep := func() {
		if !first {
			sb.WriteString("; ")
		}
		first = false
	}
	for _, f := range s.Fields {
		sep()
		if f.Readonly {
			sb.WriteString("readonly ")
		}
		sb.WriteString(FormatKey(f.Key))
		if f.Optional {
			sb.WriteString("?")
		}
		sb.WriteString(": ")
		p.write(sb, f.Value, active)
	}
	for _, sig := range s.IndexSignatures {
		sep()
		if sig.Readonly {
			sb.WriteString("readonly ")
		}
		sb.WriteString("[x: ")
		sb.WriteString(sig.Key.String())
		sb.WriteString("]: ")
		p.write(sb, sig.Value, active)
	}
	sb.WriteString(" }")
}

func (p *Printer) writeTuple(sb *strings.Builder, t *ast.Tuple, active map[*ast.Lazy]struct{}) {
	if t.Readonly {
		sb.WriteString("readonly ")
	}
	sb.WriteString("[")
	for i, c := range t.Components {
		if i > 0 {
			sb.WriteString(", ")
		}
		p.write(sb, c.Value, active)
		if c.Optional {
			sb.WriteString("?")
		}
	}
	if t.Rest != nil {
		if len(t.Components) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
		if _, isUnion := t.Rest.(*ast.Union); isUnion {
			sb.WriteString("(")
			p.write(sb, t.Rest, active)
			sb.WriteString(")")
		} else {
			p.write(sb, t.Rest, active)
		}
		sb.WriteString("[]")
	}
	sb.WriteString("]")
}
