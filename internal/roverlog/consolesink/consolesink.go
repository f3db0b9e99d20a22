// Package consolesink renders LogRecords as colorized human-readable lines,
// grounded on the teacher server's use of colorized terminal prefixes for
// module-scoped output (e.g. "[Logger]" tags in the original prototype's
// own console writer) and on github.com/fatih/color for the colorization.
package consolesink

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"roverctl/internal/rovertypes"
)

var levelColor = map[rovertypes.LogLevel]*color.Color{
	rovertypes.LevelDebug: color.New(color.FgHiBlack),
	rovertypes.LevelInfo:  color.New(color.FgCyan),
	rovertypes.LevelWarn:  color.New(color.FgYellow, color.Bold),
	rovertypes.LevelError: color.New(color.FgRed, color.Bold),
}

var moduleColor = color.New(color.FgMagenta)

// Sink writes colorized lines to w (normally os.Stdout).
type Sink struct {
	w io.Writer
}

// New constructs a console sink writing to stdout.
func New() *Sink { return &Sink{w: os.Stdout} }

// Write renders one LogRecord as a single colorized line.
func (s *Sink) Write(rec rovertypes.LogRecord) {
	lc, ok := levelColor[rec.Level]
	if !ok {
		lc = color.New(color.Reset)
	}
	fmt.Fprintf(s.w, "%s %s %s\n",
		rec.Timestamp.Format("15:04:05.000"),
		lc.Sprintf("[%-5s]", rec.Level.String()),
		moduleColor.Sprintf("%-22s", "["+rec.Module+"]")+" "+rec.Message,
	)
}
