package spinner

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
)

func TestModelViewShowsMessage(t *testing.T) {
	m := model{spinner: spinner.New(), message: "Crafting demo..."}
	if got := m.View(); !strings.Contains(got, "Crafting demo...") {
		t.Errorf("View() = %q, want message", got)
	}

	m.quitting = true
	if got := m.View(); got != "" {
		t.Errorf("View() after quit = %q, want empty", got)
	}
}

func TestStopWithoutStart(t *testing.T) {
	s := New(&bytes.Buffer{})
	s.Stop()
}

func TestNoneIsInert(t *testing.T) {
	var s None
	s.Start("anything")
	s.Stop()
}
