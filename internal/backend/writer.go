package backend

import (
	"fmt"
	"strings"
)

// Writer accumulates indented source lines.
type Writer struct {
	buf   strings.Builder
	unit  string
	depth int
}

func NewWriter(unit string, depth int) *Writer {
	if depth < 0 {
		depth = 0
	}
	return &Writer{unit: unit, depth: depth}
}

// Line writes one formatted line at the current depth.
func (w *Writer) Line(format string, args ...any) {
	for i := 0; i < w.depth; i++ {
		w.buf.WriteString(w.unit)
	}
	if len(args) == 0 {
		w.buf.WriteString(format)
	} else {
		fmt.Fprintf(&w.buf, format, args...)
	}
	w.buf.WriteByte('\n')
}

func (w *Writer) Indent() { w.depth++ }

func (w *Writer) Dedent() {
	if w.depth > 0 {
		w.depth--
	}
}

func (w *Writer) Depth() int { return w.depth }

func (w *Writer) String() string { return w.buf.String() }

// Quote renders s as a single-quoted host string literal.
func Quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)
	return "'" + r.Replace(s) + "'"
}

// QuotedList renders names as a comma separated list of quoted strings.
func QuotedList(names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = Quote(n)
	}
	return strings.Join(parts, ", ")
}
