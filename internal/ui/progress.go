// Package ui renders a live multi-file build progress view with
// bubbletea/bubbles/lipgloss (spec.md §6's `--ui` flag, grounded in the
// teacher's internal/ui package). It is deliberately decoupled from
// buildpipeline: callers push plain strings down a channel as each
// translation unit finishes, rather than this package depending on
// buildpipeline's types directly.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Event reports one translation unit's terminal state.
type Event struct {
	Path   string
	Status string // "ok" or "error"
}

type fileItem struct {
	path   string
	status string
}

type doneMsg struct{}
type eventMsg Event

// ProgressModel is a bubbletea model tracking the status of a fixed set of
// files being compiled concurrently.
type ProgressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    int
	total   int
	failed  int
	quit    bool
}

// NewProgressModel builds a ProgressModel for files, fed terminal events
// over the events channel (closed by the caller once every file finishes).
func NewProgressModel(title string, files []string, events <-chan Event) *ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, f := range files {
		items = append(items, fileItem{path: f, status: "queued"})
		index[f] = i
	}
	return &ProgressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
		total:   len(files),
	}
}

func (m *ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listen())
}

func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.apply(Event(msg))
		if m.done >= m.total {
			return m, tea.Quit
		}
		return m, m.listen()
	case doneMsg:
		m.quit = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.quit {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		p, cmd := m.prog.Update(msg)
		m.prog = p.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *ProgressModel) apply(ev Event) {
	idx, ok := m.index[ev.Path]
	if !ok {
		return
	}
	if m.items[idx].status == "queued" || m.items[idx].status == "building" {
		m.done++
		if ev.Status == "error" {
			m.failed++
		}
	}
	m.items[idx].status = ev.Status
}

func (m *ProgressModel) listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *ProgressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s %s (%d/%d)", m.spinner.View(), m.title, m.done, m.total)
	if m.done >= m.total {
		header = fmt.Sprintf("done: %s", m.title)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := m.width - 16
	if nameWidth < 20 {
		nameWidth = 20
	}
	for _, it := range m.items {
		name := truncate(it.path, nameWidth)
		b.WriteString(fmt.Sprintf("  %s %s\n", styleStatus(it.status).Render(fmt.Sprintf("%10s", it.status)), name))
	}

	b.WriteString("\n")
	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	b.WriteString(m.prog.ViewAs(frac))
	b.WriteString("\n")
	return b.String()
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "ok":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	case "building":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	}
}

func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 1 {
		return s[:width]
	}
	return s[:width-1] + "…"
}
