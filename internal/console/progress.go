package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gogpu/fractal"
)

const (
	barPadding  = 2
	barMaxWidth = 60
)

type progressMsg struct {
	phase       fractal.Phase
	done, total int
}

type finishMsg struct{}

// model is the bubbletea model behind the progress display.
type model struct {
	bar     progress.Model
	label   lipgloss.Style
	phase   fractal.Phase
	percent float64
}

func newModel() model {
	return model{
		bar:   progress.New(progress.WithDefaultGradient(), progress.WithWidth(barMaxWidth)),
		label: lipgloss.NewStyle().Foreground(accentFg).Width(8),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-barPadding*2-8, barMaxWidth)
		if m.bar.Width < 10 {
			m.bar.Width = 10
		}
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case progressMsg:
		m.phase = msg.phase
		if msg.total > 0 {
			m.percent = float64(msg.done) / float64(msg.total)
		}
	case finishMsg:
		m.percent = 1
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	pad := strings.Repeat(" ", barPadding)
	return pad + m.label.Render(m.phase.String()) + m.bar.ViewAs(m.percent) + "\n"
}

// Progress shows a progress bar for an engine render. Report is safe to call
// from the engine's worker goroutines.
type Progress struct {
	prog *tea.Program
	errc chan error

	mu        sync.Mutex
	lastPhase fractal.Phase
	lastPct   int
}

// StartProgress starts the progress display on out.
func StartProgress(out io.Writer) *Progress {
	p := &Progress{
		prog:    tea.NewProgram(newModel(), tea.WithOutput(out), tea.WithInput(nil)),
		errc:    make(chan error, 1),
		lastPct: -1,
	}
	go func() {
		_, err := p.prog.Run()
		p.errc <- err
	}()
	return p
}

// Report forwards a progress update. Updates that do not advance the
// whole-percent value of the current phase are dropped.
func (p *Progress) Report(phase fractal.Phase, done, total int) {
	if total <= 0 {
		return
	}
	pct := done * 100 / total

	p.mu.Lock()
	if phase == p.lastPhase && pct <= p.lastPct {
		p.mu.Unlock()
		return
	}
	p.lastPhase, p.lastPct = phase, pct
	p.mu.Unlock()

	p.prog.Send(progressMsg{phase: phase, done: done, total: total})
}

// Finish completes the bar and waits for the display to shut down.
func (p *Progress) Finish() error {
	p.prog.Send(finishMsg{})
	if err := <-p.errc; err != nil {
		return fmt.Errorf("console: progress: %w", err)
	}
	return nil
}
