package schemafile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shapekit/internal/ast"
	"shapekit/internal/derive"
)

const userSchema = `
root = "User"

[types.User]
kind = "struct"
fields = [
  { key = "id", type = { kind = "number" }, readonly = true },
  { key = "name", type = { kind = "string" } },
  { key = "role", type = { kind = "ref", name = "Role" }, optional = true },
  { key = "tags", type = { kind = "tuple", rest = { kind = "string" } } },
]
index = [{ key = "string", type = { kind = "unknown" } }]

[types.Role]
kind = "union"
members = [
  { kind = "literal", value = "admin" },
  { kind = "literal", value = "user" },
  { kind = "null" },
]

[types.Node]
kind = "struct"
fields = [
  { key = "value", type = { kind = "number" } },
  { key = "next", type = { kind = "ref", name = "Node" }, optional = true },
]

[types.Pair]
kind = "tuple"
readonly = true
elements = [
  { type = { kind = "literal", bigint = "123456789012345678901234567890" } },
  { type = { kind = "literal", symbol = "tag" }, optional = true },
]
`

func TestParseBuildsDeclarations(t *testing.T) {
	s, err := Parse(context.Background(), "user.toml", []byte(userSchema))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	names := s.Names()
	want := []string{"Node", "Pair", "Role", "User"}
	if len(names) != len(want) {
		t.Fatalf("names = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}

	user, err := s.Resolve("")
	if err != nil {
		t.Fatalf("Resolve root: %v", err)
	}
	if user.Name() != "User" || user.Config != "User" {
		t.Fatalf("root = %s (config %v)", user.Name(), user.Config)
	}
	body, ok := user.Type.(*ast.Struct)
	if !ok || len(body.Fields) != 4 || len(body.IndexSignatures) != 1 {
		t.Fatalf("User body = %#v", user.Type)
	}
	id, _ := body.FieldByKey(ast.StringKey("id"))
	if !id.Readonly || id.Value != ast.NumberKeyword {
		t.Fatalf("id field = %+v", id)
	}
	role, _ := body.FieldByKey(ast.StringKey("role"))
	if _, isLazy := role.Value.(*ast.Lazy); !isLazy || !role.Optional {
		t.Fatalf("role should be an optional reference, got %+v", role)
	}

	roleDecl, err := s.Lookup("Role")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	u, ok := roleDecl.Type.(*ast.Union)
	if !ok || len(u.Members) != 3 {
		t.Fatalf("Role = %#v", roleDecl.Type)
	}
}

func TestParseRecursiveReference(t *testing.T) {
	s, err := Parse(context.Background(), "node.toml", []byte(userSchema))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	node, err := s.Lookup("Node")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	keys := derive.KeyOf(node)
	if len(keys) != 2 {
		t.Fatalf("keys = %v", keys)
	}
	next, _ := node.Type.(*ast.Struct).FieldByKey(ast.StringKey("next"))
	forced := next.Value.(*ast.Lazy).Force()
	if forced != ast.AST(node) {
		t.Fatalf("reference should resolve to the declaration itself")
	}
}

func TestParseLiterals(t *testing.T) {
	s, err := Parse(context.Background(), "pair.toml", []byte(userSchema))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	pair, _ := s.Lookup("Pair")
	tup := pair.Type.(*ast.Tuple)
	if !tup.Readonly || len(tup.Components) != 2 || !tup.Components[1].Optional {
		t.Fatalf("Pair = %+v", tup)
	}
	big, ok := tup.Components[0].Value.(*ast.LiteralType).Literal.BigInt()
	if !ok || big.String() != "123456789012345678901234567890" {
		t.Fatalf("bigint literal = %v", big)
	}
	if _, ok := tup.Components[1].Value.(*ast.LiteralType).Literal.Symbol(); !ok {
		t.Fatalf("expected symbol literal")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		data string
		want error
	}{
		{"unknown ref", "[types.A]\nkind = \"ref\"\nname = \"B\"\n", ErrUnknownType},
		{"unknown root", "root = \"Missing\"\n[types.A]\nkind = \"string\"\n", ErrUnknownType},
		{"unknown kind", "[types.A]\nkind = \"map\"\n", ErrInvalidSpec},
		{"bad index key", "[types.A]\nkind = \"struct\"\nindex = [{ key = \"number\", type = { kind = \"string\" } }]\n", ErrInvalidSpec},
		{"bad bigint", "[types.A]\nkind = \"literal\"\nbigint = \"12x\"\n", ErrInvalidSpec},
		{"undecoded key", "[types.A]\nkind = \"string\"\ncolour = \"red\"\n", ErrInvalidSpec},
		{"inexact integer", "[types.A]\nkind = \"literal\"\nvalue = 9007199254740993\n", ErrInvalidSpec},
	}
	for _, tc := range cases {
		_, err := Parse(context.Background(), tc.name, []byte(tc.data))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: err = %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestParseExactIntegerLiteral(t *testing.T) {
	s, err := Parse(context.Background(), "int.toml", []byte("[types.A]\nkind = \"literal\"\nvalue = 9007199254740992\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	a, err := s.Lookup("A")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	lit := a.Type.(*ast.LiteralType).Literal
	if n, ok := lit.Number(); !ok || n != 9007199254740992 {
		t.Fatalf("literal = %v", lit)
	}
}

func TestResolveWithoutRoot(t *testing.T) {
	s, err := Parse(context.Background(), "a.toml", []byte("[types.A]\nkind = \"string\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := s.Resolve(""); err == nil {
		t.Fatal("expected error without root")
	}
	if _, err := s.Resolve("B"); !errors.Is(err, ErrUnknownType) {
		t.Fatalf("err = %v", err)
	}
	if d, err := s.Resolve("A"); err != nil || d.Type != ast.StringKeyword {
		t.Fatalf("Resolve(A) = %v, %v", d, err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.toml")
	if err := os.WriteFile(path, []byte(userSchema), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s, err := LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if s.Path != path || s.Root != "User" {
		t.Fatalf("schema = %+v", s)
	}
	if _, err := LoadFile(context.Background(), path+".missing"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
