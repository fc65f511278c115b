package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"shapekit/internal/ast"
	"shapekit/internal/derive"
	"shapekit/internal/interp"
	"shapekit/internal/trace"
	"shapekit/internal/ui"
)

var keyofCmd = &cobra.Command{
	Use:   "keyof <schema.toml>",
	Short: "List the keys always present on values of a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decl, err := loadTarget(cmd, args[0])
		if err != nil {
			return err
		}
		span := deriveSpan(cmd, "keyof", decl)
		keys := derive.KeyOf(decl)
		span.WithExtra("keys", fmt.Sprint(len(keys))).End("")
		rendered := make([]string, len(keys))
		for i, k := range keys {
			rendered[i] = interp.FormatKey(k)
		}
		if len(rendered) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "never")
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rendered, " | "))
		return nil
	},
}

var fieldsCmd = &cobra.Command{
	Use:   "fields <schema.toml>",
	Short: "Show the fields common to every value of a type",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decl, err := loadTarget(cmd, args[0])
		if err != nil {
			return err
		}
		span := deriveSpan(cmd, "fields", decl)
		fields := derive.Fields(decl)
		span.WithExtra("fields", fmt.Sprint(len(fields))).End("")
		fmt.Fprint(cmd.OutOrStdout(), fieldTable(fields, current.colored).Render())
		return nil
	},
}

var pickCmd = &cobra.Command{
	Use:   "pick <schema.toml> <key>...",
	Short: "Build a struct from the selected fields",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFilter(cmd, "pick", args, derive.Pick)
	},
}

var omitCmd = &cobra.Command{
	Use:   "omit <schema.toml> <key>...",
	Short: "Build a struct without the selected fields",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFilter(cmd, "omit", args, derive.Omit)
	},
}

var partialCmd = &cobra.Command{
	Use:   "partial <schema.toml>",
	Short: "Print the type with every property made optional",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		decl, err := loadTarget(cmd, args[0])
		if err != nil {
			return err
		}
		span := deriveSpan(cmd, "partial", decl)
		derived := derive.Partial(decl.Type)
		span.End("")
		fmt.Fprintln(cmd.OutOrStdout(), interp.NewPrinter().Print(derived))
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{keyofCmd, fieldsCmd, pickCmd, omitCmd, partialCmd} {
		addTypeFlag(cmd)
	}
}

// deriveSpan opens a derive-scope span under the command span.
func deriveSpan(cmd *cobra.Command, op string, decl *ast.TypeAliasDeclaration) *trace.Span {
	ctx := cmd.Context()
	return trace.Begin(trace.FromContext(ctx), trace.ScopeDerive, op+":"+decl.Name(), trace.ParentFromContext(ctx))
}

func runFilter(cmd *cobra.Command, op string, args []string, filter func(ast.AST, ...ast.Key) *ast.Struct) error {
	keys, err := parseKeys(args[1:])
	if err != nil {
		return err
	}
	decl, err := loadTarget(cmd, args[0])
	if err != nil {
		return err
	}
	span := deriveSpan(cmd, op, decl)
	if err := checkPositions(decl, keys); err != nil {
		span.Fail().End(err.Error())
		return err
	}
	derived := filter(decl, keys...)
	span.WithExtra("fields", fmt.Sprint(len(derived.Fields))).End("")
	fmt.Fprintln(cmd.OutOrStdout(), interp.NewPrinter().Print(derived))
	return nil
}

// checkPositions rejects index keys past the last positional field of target.
func checkPositions(target ast.AST, keys []ast.Key) error {
	positions := 0
	for _, f := range derive.Fields(target) {
		if _, ok := f.Key.Index(); ok {
			positions++
		}
	}
	for _, k := range keys {
		if _, ok := k.Index(); !ok {
			continue
		}
		idx, err := derive.IndexOf(k)
		if err != nil {
			return err
		}
		if idx >= positions {
			return fmt.Errorf("key [%d] is out of range: type has %d positions", idx, positions)
		}
	}
	return nil
}

func fieldTable(fields []ast.Field, styled bool) ui.Table {
	printer := interp.NewPrinter()
	table := ui.Table{
		Header: []string{"KEY", "TYPE", "FLAGS"},
		Rows:   make([][]string, 0, len(fields)),
		Styled: styled,
	}
	for _, f := range fields {
		var flags []string
		if f.Optional {
			flags = append(flags, "optional")
		}
		if f.Readonly {
			flags = append(flags, "readonly")
		}
		table.Rows = append(table.Rows, []string{
			interp.FormatKey(f.Key),
			printer.Print(f.Value),
			strings.Join(flags, ","),
		})
	}
	return table
}
