package render

// Severity classifies the visual weight of a piece of inline text. The
// terminal maps each value to a colour; RecordingUI keeps plain text.
type Severity uint8

const (
	SeverityInfo    Severity = iota // plain
	SeveritySuccess                 // green
	SeverityWarn                    // yellow
	SeverityError                   // red
)

// StyledText pairs a plain string with a Severity annotation.
type StyledText struct {
	Text     string
	Severity Severity
}

// Plain wraps text with SeverityInfo.
func Plain(text string) StyledText {
	return StyledText{Text: text}
}

// UI is the output surface for tokentide commands.
//
// Production code uses TerminalUI; tests use RecordingUI, which captures every
// call so assertions do not depend on ANSI codes or terminal width.
type UI interface {
	// Style returns t coloured according to its Severity. When colours are
	// disabled the plain text is returned unchanged.
	Style(t StyledText) string

	Info(format string, args ...any)
	Success(format string, args ...any)
	Warn(format string, args ...any)

	// Error writes a failure in red. It does not exit or return an error.
	Error(format string, args ...any)

	// Table renders a bordered table with a header row followed by data rows.
	Table(headers []string, rows [][]string)

	// Spinner starts an animated spinner and returns its stop function:
	//
	//	stop := u.Spinner("Searching HONEY ...")
	//	defer stop()
	//
	// On non-terminal outputs only the message is printed.
	Spinner(msg string) func()
}
