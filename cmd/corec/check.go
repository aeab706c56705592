package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"corec/internal/buildpipeline"
	"corec/internal/diag"
	"corec/internal/source"
	"corec/internal/trace"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "compile a file and report diagnostics without writing MIR",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckOrBuild(cmd, args[0], false, "")
		},
	}
}

func runCheckOrBuild(cmd *cobra.Command, path string, lower bool, outPath string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	wantTrace, _ := cmd.Flags().GetBool("trace")

	fs := source.NewFileSet()
	file := fs.Add(path, content, 0)

	var tr trace.Tracer = trace.Nop()
	if wantTrace {
		tr = trace.New(64)
	}

	res := buildpipeline.CompileFile(fs, file, tr)

	if wantTrace {
		trace.WriteReport(cmd.ErrOrStderr(), tr)
	}

	if res.Diags.Len() > 0 {
		rend := &diag.Renderer{Files: fs, NoColor: noColor}
		rend.RenderAll(cmd.ErrOrStderr(), res.Diags)
	}
	if !res.Ok() {
		return fmt.Errorf("%s: %d error(s)", path, countErrors(res.Diags))
	}
	if lower && res.Module != nil && outPath != "" {
		if err := writeModule(outPath, res); err != nil {
			return err
		}
	}
	return nil
}

func countErrors(b *diag.Bag) int {
	n := 0
	for _, d := range b.Items() {
		if d.Severity >= diag.SevError {
			n++
		}
	}
	return n
}
