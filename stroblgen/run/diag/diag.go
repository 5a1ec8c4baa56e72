// Package diag models the warnings and errors stroblgen reports against source positions.
package diag

import (
	"fmt"
	"go/token"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"

	detect "github.com/gstrobl17/stroblmocks/stroblgen/run/3_detect"
)

// Domain is the MessageID domain of every stroblgen diagnostic.
const Domain = "stroblgen"

// Severity of a diagnostic.
type Severity int

// Severity values.
const (
	SeverityWarning Severity = iota
	SeverityError
)

// Bag collects diagnostics in report order.
type Bag struct {
	items []Diagnostic
}

// Report appends d.
func (b *Bag) Report(d Diagnostic) {
	b.items = append(b.items, d)
}

// HasErrors reports whether any collected diagnostic is an error.
func (b *Bag) HasErrors() bool {
	for _, d := range b.items {
		if d.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Items returns the collected diagnostics. The slice must not be modified.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Diagnostic is an immutable warning or error attached to a source position.
type Diagnostic struct {
	Severity Severity
	Message  string
	Pos      token.Position
	ID       MessageID
	Hints    []string
}

// FromError converts a hard error into an error diagnostic. MarkerErrors keep their position and ID; hints attached
// with cockroachdb/errors are carried over.
func FromError(err error) Diagnostic {
	d := Diagnostic{
		Severity: SeverityError,
		Message:  err.Error(),
		ID:       MessageID{Domain: Domain, ID: "Error"},
		Hints:    errors.GetAllHints(err),
	}

	var markerErr *detect.MarkerError
	if errors.As(err, &markerErr) {
		d.Pos = markerErr.Pos
		d.ID.ID = errorID(markerErr.Err)
	}

	return d
}

// Warning builds a warning diagnostic.
func Warning(pos token.Position, id, message string) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Message:  message,
		Pos:      pos,
		ID:       MessageID{Domain: Domain, ID: id},
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s [%s]", positionText(d.Pos), d.Severity, d.Message, d.ID)
}

// MessageID identifies the kind of a diagnostic.
type MessageID struct {
	Domain string
	ID     string
}

func (id MessageID) String() string {
	return id.Domain + "." + id.ID
}

// Printer writes diagnostics as they are reported, one per line, followed by any hints.
type Printer struct {
	out      io.Writer
	warning  *color.Color
	errColor *color.Color
	hint     *color.Color
}

// NewPrinter returns a Printer writing to out. Colour follows fatih/color's terminal and NO_COLOR detection unless
// colorize is false.
func NewPrinter(out io.Writer, colorize bool) *Printer {
	printer := &Printer{
		out:      out,
		warning:  color.New(color.FgYellow, color.Bold),
		errColor: color.New(color.FgRed, color.Bold),
		hint:     color.New(color.Faint),
	}

	if !colorize {
		printer.warning.DisableColor()
		printer.errColor.DisableColor()
		printer.hint.DisableColor()
	}

	return printer
}

// Report prints d.
func (p *Printer) Report(d Diagnostic) {
	severity := p.warning
	if d.Severity == SeverityError {
		severity = p.errColor
	}

	_, _ = fmt.Fprintf(p.out, "%s: %s: %s [%s]\n", positionText(d.Pos), severity.Sprint(d.Severity), d.Message, d.ID)

	for _, hint := range d.Hints {
		_, _ = fmt.Fprintf(p.out, "\t%s\n", p.hint.Sprint("hint: "+hint))
	}
}

// Reporter is the channel diagnostics are forwarded to.
type Reporter interface {
	Report(d Diagnostic)
}

// Tee forwards every diagnostic to all reporters.
type Tee []Reporter

// Report forwards d.
func (t Tee) Report(d Diagnostic) {
	for _, reporter := range t {
		reporter.Report(d)
	}
}

// Emit forwards diagnostics to r in order.
func Emit(r Reporter, diagnostics ...Diagnostic) {
	for _, d := range diagnostics {
		r.Report(d)
	}
}

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

func errorID(sentinel error) string {
	switch {
	case errors.Is(sentinel, detect.ErrOnlyWorksDirectlyOnTypeDefinitions):
		return "OnlyWorksDirectlyOnTypeDefinitions"
	case errors.Is(sentinel, detect.ErrOnlyWorksOnStoredProperties):
		return "OnlyWorksOnStoredProperties"
	case errors.Is(sentinel, detect.ErrOnlyWorksOnVariables):
		return "OnlyWorksOnVariables"
	default:
		return "Error"
	}
}

func positionText(pos token.Position) string {
	if !pos.IsValid() {
		if pos.Filename != "" {
			return pos.Filename
		}

		return "-"
	}

	return strings.TrimPrefix(pos.String(), "./")
}
