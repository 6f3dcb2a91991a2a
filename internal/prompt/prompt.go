package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Row is one labeled line of a summary. An empty Value renders as "none".
type Row struct {
	Label string
	Value string
}

// Confirmer asks a yes/no question about a summary.
type Confirmer interface {
	Confirm(title string, rows []Row, question string) (bool, error)
}

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5B8DEF")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B"))
	noneStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
)

// Summary renders rows under title with aligned values.
func Summary(title string, rows []Row) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Label))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(labelStyle.Width(width + 2).Render(r.Label + ":"))
		if r.Value == "" {
			b.WriteString(noneStyle.Render("none"))
		} else {
			b.WriteString(valueStyle.Render(r.Value))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Terminal reads answers line by line from an input stream.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a Terminal prompting on out and reading from in.
func New(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm prints the summary and asks question until it gets a yes or no.
// An empty answer means yes; end of input means no.
func (t *Terminal) Confirm(title string, rows []Row, question string) (bool, error) {
	fmt.Fprintln(t.out, Summary(title, rows))

	for {
		fmt.Fprintf(t.out, "%s %s ", titleStyle.Render(question), labelStyle.Render("(Y/n)"))

		line, err := t.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf("reading answer: %w", err)
		}

		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		case "":
			if err != nil {
				fmt.Fprintln(t.out)
				return false, nil
			}
			return true, nil
		}
		if err != nil {
			fmt.Fprintln(t.out)
			return false, nil
		}
		fmt.Fprintln(t.out, "Please answer yes or no.")
	}
}

// Always is a Confirmer that agrees without asking.
type Always struct{}

func (Always) Confirm(string, []Row, string) (bool, error) { return true, nil }
