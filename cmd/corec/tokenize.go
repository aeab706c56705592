package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"corec/internal/diag"
	"corec/internal/lexer"
	"corec/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokenize <file>",
		Short: "print the token stream for a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			content, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			fs := source.NewFileSet()
			file := fs.Add(path, content, 0)
			bag := diag.NewBag(0)
			toks := lexer.New(file, content, bag).Tokenize()
			for _, t := range toks {
				pos := fs.Position(file, t.Span.Start)
				fmt.Fprintf(cmd.OutOrStdout(), "%4d:%-3d %-14s %s\n", pos.Line, pos.Col, t.Kind, t.Text)
			}
			if bag.HasErrors() {
				noColor, _ := cmd.Flags().GetBool("no-color")
				(&diag.Renderer{Files: fs, NoColor: noColor}).RenderAll(cmd.ErrOrStderr(), bag)
				return fmt.Errorf("tokenize: %d error(s)", bag.Len())
			}
			return nil
		},
	}
}
