package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"shapekit/internal/interp"
)

var printCmd = &cobra.Command{
	Use:   "print <schema.toml>",
	Short: "Print definitions as type expressions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		all, err := cmd.Flags().GetBool("all")
		if err != nil {
			return fmt.Errorf("failed to get all flag: %w", err)
		}
		printer := interp.NewPrinter()
		out := cmd.OutOrStdout()
		if !all {
			decl, err := loadTarget(cmd, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "type %s = %s\n", decl.Name(), printer.Print(decl.Type))
			return nil
		}

		schema, err := loadSchema(cmd, args[0])
		if err != nil {
			return err
		}
		for _, name := range schema.Names() {
			decl, err := schema.Lookup(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "type %s = %s\n", name, printer.Print(decl.Type))
		}
		return nil
	},
}

func init() {
	addTypeFlag(printCmd)
	printCmd.Flags().Bool("all", false, "print every definition in the document")
}
