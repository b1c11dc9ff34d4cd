package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/logrusorgru/aurora"
	runewidth "github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// TerminalUI writes coloured output to a terminal.
type TerminalUI struct {
	out         io.Writer
	au          aurora.Aurora
	interactive bool
}

// NewTerminalUI creates a TerminalUI on os.Stdout. Colours and the spinner
// are enabled only when stdout is a real terminal.
func NewTerminalUI() *TerminalUI {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	return NewWriterUI(os.Stdout, isTTY)
}

// NewWriterUI creates a TerminalUI on out. When interactive is false colours
// and spinner animation are disabled.
func NewWriterUI(out io.Writer, interactive bool) *TerminalUI {
	return &TerminalUI{
		out:         out,
		au:          aurora.NewAurora(interactive),
		interactive: interactive,
	}
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintln(u.out, line)
}

func (u *TerminalUI) Style(t StyledText) string {
	switch t.Severity {
	case SeveritySuccess:
		return u.au.Green(t.Text).String()
	case SeverityWarn:
		return u.au.Yellow(t.Text).String()
	case SeverityError:
		return u.au.Red(t.Text).String()
	default:
		return t.Text
	}
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Warn(format string, args ...any) {
	u.writeLine(u.au.Yellow(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

// Table renders a bordered table. Column widths are computed from the
// visible width of each cell, so ANSI colour codes from Style are preserved
// without breaking alignment.
func (u *TerminalUI) Table(headers []string, rows [][]string) {
	ncols := len(headers)
	for _, r := range rows {
		if len(r) > ncols {
			ncols = len(r)
		}
	}
	if ncols == 0 {
		return
	}

	cellWidth := func(s string) int {
		return runewidth.StringWidth(ansi.Strip(s))
	}

	widths := make([]int, ncols)
	for i, h := range headers {
		widths[i] = cellWidth(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row); i++ {
			if w := cellWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	pad := func(s string, w int) string {
		visible := cellWidth(s)
		if visible >= w {
			return s
		}
		return s + strings.Repeat(" ", w-visible)
	}

	borderStyle := lipgloss.NewStyle()
	if u.interactive {
		borderStyle = borderStyle.Foreground(lipgloss.Color("240"))
	}
	border := func(s string) string { return borderStyle.Render(s) }

	dashes := make([]string, ncols)
	for i, w := range widths {
		dashes[i] = strings.Repeat("─", w+2)
	}
	topBorder := border("┌" + strings.Join(dashes, "┬") + "┐")
	headerSep := border("├" + strings.Join(dashes, "┼") + "┤")
	botBorder := border("└" + strings.Join(dashes, "┴") + "┘")

	renderRow := func(cells []string) string {
		parts := make([]string, ncols)
		for i := 0; i < ncols; i++ {
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			parts[i] = " " + pad(val, widths[i]) + " "
		}
		return border("│") + strings.Join(parts, border("│")) + border("│")
	}

	u.writeLine(topBorder)
	if len(headers) > 0 {
		u.writeLine(renderRow(headers))
		u.writeLine(headerSep)
	}
	for _, row := range rows {
		u.writeLine(renderRow(row))
	}
	u.writeLine(botBorder)
}

func (u *TerminalUI) Spinner(msg string) func() {
	if !u.interactive {
		u.writeLine(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		// spinner clears the line with \r only; start the next output fresh.
		fmt.Fprintln(u.out)
	}
}
