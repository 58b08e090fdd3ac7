package console

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gogpu/fractal"
)

func TestPrinter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Infof("info %d", 1)
	p.Successf("done")
	p.Summary("selection", []Field{{Name: "fractal", Value: "Julia"}})
	if buf.Len() != 0 {
		t.Fatalf("quiet printer wrote %q", buf.String())
	}

	p.Warnf("careful")
	p.Errorf("broken: %s", "x")
	out := buf.String()
	for _, want := range []string{"warning: careful", "error: broken: x"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
}

func TestPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Summary("selection", []Field{
		{Name: "fractal", Value: "Newton"},
		{Name: "iterations", Value: "256"},
	})

	out := buf.String()
	for _, want := range []string{"selection", "fractal", "Newton", "iterations", "256"} {
		if !strings.Contains(out, want) {
			t.Errorf("summary %q missing %q", out, want)
		}
	}
}

func TestModel_Update(t *testing.T) {
	var m tea.Model = newModel()

	m, cmd := m.Update(progressMsg{phase: fractal.PhasePaint, done: 1, total: 4})
	if cmd != nil {
		t.Error("progress update returned a command")
	}
	got := m.(model)
	if got.phase != fractal.PhasePaint || got.percent != 0.25 {
		t.Errorf("phase = %v, percent = %v", got.phase, got.percent)
	}
	if !strings.Contains(got.View(), "paint") {
		t.Errorf("View() = %q, want phase label", got.View())
	}

	m, cmd = m.Update(finishMsg{})
	if m.(model).percent != 1 {
		t.Errorf("percent after finish = %v, want 1", m.(model).percent)
	}
	if cmd == nil {
		t.Fatal("finish returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("finish command is not tea.Quit")
	}
}

func TestModel_IgnoresEmptyTotal(t *testing.T) {
	var m tea.Model = newModel()
	m, _ = m.Update(progressMsg{phase: fractal.PhaseCompute, done: 0, total: 0})
	if m.(model).percent != 0 {
		t.Errorf("percent = %v, want 0", m.(model).percent)
	}
}
