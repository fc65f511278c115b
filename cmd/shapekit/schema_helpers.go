package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/unicode/norm"

	"shapekit/internal/ast"
	"shapekit/internal/schemafile"
)

func addTypeFlag(cmd *cobra.Command) {
	cmd.Flags().String("type", "", "definition to use (default: the document root)")
}

// loadSchema reads the schema document at path.
func loadSchema(cmd *cobra.Command, path string) (*schemafile.Schema, error) {
	var schema *schemafile.Schema
	err := current.timer.Measure("load", func() error {
		var loadErr error
		schema, loadErr = schemafile.LoadFile(cmd.Context(), path)
		return loadErr
	})
	return schema, err
}

// loadTarget reads the schema at path and resolves the --type definition,
// falling back to the document root.
func loadTarget(cmd *cobra.Command, path string) (*ast.TypeAliasDeclaration, error) {
	typeName, err := cmd.Flags().GetString("type")
	if err != nil {
		return nil, fmt.Errorf("failed to get type flag: %w", err)
	}
	schema, err := loadSchema(cmd, path)
	if err != nil {
		return nil, err
	}
	return schema.Resolve(typeName)
}

// parseKey reads a property key from the command line. "[N]" names the
// tuple position N; anything else is a string key.
func parseKey(raw string) (ast.Key, error) {
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") && len(raw) > 2 {
		idx, err := strconv.Atoi(raw[1 : len(raw)-1])
		if err != nil || idx < 0 {
			return ast.Key{}, fmt.Errorf("invalid index key %q", raw)
		}
		return ast.IndexKey(idx), nil
	}
	return ast.StringKey(norm.NFC.String(raw)), nil
}

func parseKeys(raw []string) ([]ast.Key, error) {
	keys := make([]ast.Key, 0, len(raw))
	for _, r := range raw {
		k, err := parseKey(r)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}
