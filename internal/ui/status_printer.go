package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	statusRowTemplateConstant = "%-10s %s\n"
)

// StatusTone selects the rendering style for a status label.
type StatusTone int

// Supported status tones.
const (
	StatusToneNeutral StatusTone = iota
	StatusToneSuccess
	StatusToneWarning
	StatusToneFailure
)

// StatusPrinter writes labeled status rows, colorized when the writer is a terminal.
type StatusPrinter struct {
	writer       io.Writer
	colorEnabled bool
	successColor *color.Color
	warningColor *color.Color
	failureColor *color.Color
}

// NewStatusPrinter constructs a printer for the provided writer, enabling color only for terminals.
func NewStatusPrinter(writer io.Writer) *StatusPrinter {
	return &StatusPrinter{
		writer:       writer,
		colorEnabled: writerIsTerminal(writer),
		successColor: color.New(color.FgGreen),
		warningColor: color.New(color.FgYellow),
		failureColor: color.New(color.FgRed),
	}
}

// PrintRow renders a single status row with the requested tone.
func (printer *StatusPrinter) PrintRow(tone StatusTone, label string, description string) {
	if printer == nil || printer.writer == nil {
		return
	}

	renderedLabel := label
	if printer.colorEnabled {
		switch tone {
		case StatusToneSuccess:
			renderedLabel = printer.successColor.Sprint(label)
		case StatusToneWarning:
			renderedLabel = printer.warningColor.Sprint(label)
		case StatusToneFailure:
			renderedLabel = printer.failureColor.Sprint(label)
		}
	}

	fmt.Fprintf(printer.writer, statusRowTemplateConstant, renderedLabel, description)
}

// PrintLine writes an uncolored line through the printer's writer.
func (printer *StatusPrinter) PrintLine(message string) {
	if printer == nil || printer.writer == nil {
		return
	}
	fmt.Fprintln(printer.writer, message)
}

func writerIsTerminal(writer io.Writer) bool {
	fileWriter, isFile := writer.(*os.File)
	if !isFile {
		return false
	}
	return isatty.IsTerminal(fileWriter.Fd()) || isatty.IsCygwinTerminal(fileWriter.Fd())
}
