// Command corec is the CLI front end for the compiler core: it wires
// internal/lexer, internal/parser, internal/buildpipeline and
// internal/emit into runnable subcommands (spec.md §6, grounded in the
// teacher's cmd/surge).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "corec",
		Short:         "corec compiles the core language to MIR",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("no-color", false, "disable colored diagnostic output")
	root.PersistentFlags().Bool("trace", false, "print per-phase compile timings")
	root.AddCommand(newBuildCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newTokenizeCmd())
	root.AddCommand(newVersionCmd())
	return root
}
