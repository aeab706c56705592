package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"corec/internal/buildpipeline"
	"corec/internal/emit"
	"corec/internal/project"
	"corec/internal/source"
	"corec/internal/trace"
)

func newBuildCmd() *cobra.Command {
	var (
		outPath  string
		mirc     bool
		projPath string
		jobs     int
		useUI    bool
	)
	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "lower a file (or a corec.toml project) to MIR",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if projPath != "" {
				return runProjectBuild(cmd, projPath, jobs, mirc, useUI)
			}
			if len(args) != 1 {
				return fmt.Errorf("build: expected exactly one file, or --project")
			}
			return runSingleBuild(cmd, args[0], outPath, mirc)
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output path (default: <file>.mir or .mirc)")
	cmd.Flags().BoolVar(&mirc, "emit-mirc", false, "emit a binary .mirc snapshot instead of text")
	cmd.Flags().StringVar(&projPath, "project", "", "build every source listed in a corec.toml manifest")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "max concurrent translation units in --project mode (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&useUI, "ui", false, "show a live multi-file progress view (project mode, TTY only)")
	return cmd
}

func runSingleBuild(cmd *cobra.Command, path, outPath string, mirc bool) error {
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
		buildpipeline.RenderDiagnostics(fs, res, noColor, func(f string, a ...any) {
			fmt.Fprintf(cmd.ErrOrStderr(), f, a...)
		})
	}
	if !res.Ok() {
		return fmt.Errorf("%s: %d error(s)", path, countErrors(res.Diags))
	}

	if outPath == "" {
		outPath = defaultOutPath(path, mirc)
	}
	if err := writeModuleOut(outPath, res, mirc); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", path, outPath)
	return nil
}

func defaultOutPath(srcPath string, mirc bool) string {
	base := strings.TrimSuffix(srcPath, filepath.Ext(srcPath))
	if mirc {
		return base + ".mirc"
	}
	return base + ".mir"
}

func writeModuleOut(outPath string, res *buildpipeline.Result, mirc bool) error {
	if mirc {
		return emit.WriteSnapshot(outPath, res.Module)
	}
	return emit.WriteText(outPath, res.Module, res.Prog.Types)
}

// writeModule writes res's module in text form. runCheckOrBuild calls it
// only when lower is true and an output path is given, which the check
// command never passes.
func writeModule(outPath string, res *buildpipeline.Result) error {
	return emit.WriteText(outPath, res.Module, res.Prog.Types)
}

func runProjectBuild(cmd *cobra.Command, projPath string, jobs int, mirc, useUI bool) error {
	m, err := project.Load(projPath)
	if err != nil {
		return err
	}
	noColor, _ := cmd.Flags().GetBool("no-color")
	wantTrace, _ := cmd.Flags().GetBool("trace")

	if useUI {
		if isTerminal(os.Stdout) {
			return runProjectUI(cmd, m, jobs, mirc)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "corec: --ui requested but stdout is not a terminal, falling back to plain output")
	}

	type outcome struct {
		path string
		res  *buildpipeline.Result
		fs   *source.FileSet
		err  error
	}
	outcomes := make([]outcome, len(m.Sources))

	g := new(errgroup.Group)
	if jobs > 0 {
		g.SetLimit(jobs)
	}
	for i, srcPath := range m.Sources {
		i, srcPath := i, srcPath
		g.Go(func() error {
			content, err := os.ReadFile(srcPath)
			if err != nil {
				outcomes[i] = outcome{path: srcPath, err: err}
				return nil
			}
			fs := source.NewFileSet()
			file := fs.Add(srcPath, content, 0)
			var tr trace.Tracer = trace.Nop()
			if wantTrace {
				tr = trace.New(64)
			}
			res := buildpipeline.CompileFile(fs, file, tr)
			outcomes[i] = outcome{path: srcPath, res: res, fs: fs}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", o.path, o.err)
			failed++
			continue
		}
		if o.res.Diags.Len() > 0 {
			buildpipeline.RenderDiagnostics(o.fs, o.res, noColor, func(f string, a ...any) {
				fmt.Fprintf(cmd.ErrOrStderr(), f, a...)
			})
		}
		if !o.res.Ok() {
			failed++
			continue
		}
		out := defaultOutPath(o.path, mirc)
		if err := writeModuleOut(out, o.res, mirc); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", o.path, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", o.path, out)
	}
	if failed > 0 {
		return fmt.Errorf("%s: %d of %d translation unit(s) failed", m.Name, failed, len(m.Sources))
	}
	return nil
}
