package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
)

// Kind selects the symbol and color of a message.
type Kind int

const (
	// Error reports a failure.
	Error Kind = iota
	// Warning reports something the user should look at.
	Warning
	// Activity announces work in progress.
	Activity
	// Success reports completed work.
	Success
	// Info carries supporting detail.
	Info
)

type style struct {
	symbol string
	color  *fcolor.Color
}

var styles = map[Kind]style{
	Error:    {symbol: "✗ ", color: fcolor.New(fcolor.FgRed)},
	Warning:  {symbol: "⚠ ", color: fcolor.New(fcolor.FgYellow)},
	Activity: {symbol: "► ", color: fcolor.New(fcolor.Reset)},
	Success:  {symbol: "✔ ", color: fcolor.New(fcolor.FgGreen)},
	Info:     {symbol: "ℹ ", color: fcolor.New(fcolor.FgBlue)},
}

// Printf writes a message of the given kind followed by a newline.
// format is printed verbatim when args is empty. A nil writer means os.Stdout.
// Continuation lines are indented under the first line's text.
func Printf(writer io.Writer, kind Kind, format string, args ...any) {
	if writer == nil {
		writer = os.Stdout
	}

	text := format
	if len(args) > 0 {
		text = fmt.Sprintf(format, args...)
	}

	s, ok := styles[kind]
	if !ok {
		s = style{color: fcolor.New(fcolor.Reset)}
	}

	_, err := s.color.Fprintf(writer, "%s%s\n", s.symbol, indent(text, len([]rune(s.symbol))))
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: failed to print message: %v\n", err)
	}
}

// Errorf writes an error message.
func Errorf(writer io.Writer, format string, args ...any) {
	Printf(writer, Error, format, args...)
}

// Warningf writes a warning message.
func Warningf(writer io.Writer, format string, args ...any) {
	Printf(writer, Warning, format, args...)
}

// Activityf writes an activity message.
func Activityf(writer io.Writer, format string, args ...any) {
	Printf(writer, Activity, format, args...)
}

// Successf writes a success message.
func Successf(writer io.Writer, format string, args ...any) {
	Printf(writer, Success, format, args...)
}

// Infof writes an informational message.
func Infof(writer io.Writer, format string, args ...any) {
	Printf(writer, Info, format, args...)
}

// indent shifts every non-empty line after the first by width spaces.
func indent(text string, width int) string {
	if width == 0 || !strings.Contains(text, "\n") {
		return text
	}

	pad := strings.Repeat(" ", width)
	lines := strings.Split(text, "\n")

	for i, line := range lines[1:] {
		if line != "" {
			lines[i+1] = pad + line
		}
	}

	return strings.Join(lines, "\n")
}
