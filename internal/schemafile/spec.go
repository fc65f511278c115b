package schemafile

// Document is the TOML shape of a schema document.
type Document struct {
	Root  string              `toml:"root"`
	Types map[string]TypeSpec `toml:"types"`
}

// TypeSpec describes one type expression.
type TypeSpec struct {
	Kind     string        `toml:"kind"`
	Name     string        `toml:"name"`   // kind = "ref"
	Value    any           `toml:"value"`  // kind = "literal"
	BigInt   string        `toml:"bigint"` // kind = "literal", big integer value
	Symbol   string        `toml:"symbol"` // kind = "literal", unique symbol description
	Fields   []FieldSpec   `toml:"fields"`
	Index    []IndexSpec   `toml:"index"`
	Elements []ElementSpec `toml:"elements"`
	Rest     *TypeSpec     `toml:"rest"`
	Readonly bool          `toml:"readonly"`
	Members  []TypeSpec    `toml:"members"`
}

// FieldSpec describes a struct field.
type FieldSpec struct {
	Key      string   `toml:"key"`
	Type     TypeSpec `toml:"type"`
	Optional bool     `toml:"optional"`
	Readonly bool     `toml:"readonly"`
}

// IndexSpec describes an index signature; Key is "string" or "symbol".
type IndexSpec struct {
	Key      string   `toml:"key"`
	Type     TypeSpec `toml:"type"`
	Readonly bool     `toml:"readonly"`
}

// ElementSpec describes a tuple component.
type ElementSpec struct {
	Type     TypeSpec `toml:"type"`
	Optional bool     `toml:"optional"`
}
