package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"corec/internal/buildpipeline"
	"corec/internal/project"
	"corec/internal/source"
	"corec/internal/trace"
	"corec/internal/ui"
)

// isTerminal reports whether f is attached to an interactive terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// runProjectUI builds every source in m concurrently, same as
// runProjectBuild, but drives a bubbletea progress view instead of
// printing plain lines as files finish.
func runProjectUI(cmd *cobra.Command, m *project.Manifest, jobs int, mirc bool) error {
	events := make(chan ui.Event, len(m.Sources))
	type outcome struct {
		path string
		res  *buildpipeline.Result
		fs   *source.FileSet
		err  error
	}
	outcomes := make([]outcome, len(m.Sources))

	done := make(chan error, 1)
	go func() {
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
					events <- ui.Event{Path: srcPath, Status: "error"}
					return nil
				}
				fs := source.NewFileSet()
				file := fs.Add(srcPath, content, 0)
				res := buildpipeline.CompileFile(fs, file, trace.Nop())
				outcomes[i] = outcome{path: srcPath, res: res, fs: fs}
				status := "ok"
				if !res.Ok() {
					status = "error"
				}
				events <- ui.Event{Path: srcPath, Status: status}
				return nil
			})
		}
		_ = g.Wait()
		close(events)
		done <- nil
	}()

	model := ui.NewProgressModel(m.Name, m.Sources, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	if _, err := program.Run(); err != nil {
		return err
	}
	<-done

	noColor, _ := cmd.Flags().GetBool("no-color")
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
		}
	}
	if failed > 0 {
		return fmt.Errorf("%s: %d of %d translation unit(s) failed", m.Name, failed, len(m.Sources))
	}
	return nil
}
