package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/bytedance/sonic"

	"time-picker/internal/config"
)

// Printer writes command results as a table or as JSON
type Printer struct {
	out    io.Writer
	format string
}

// NewPrinter creates a printer for one of the config output formats
func NewPrinter(out io.Writer, format string) *Printer {
	if format == "" {
		format = config.FormatTable
	}
	return &Printer{out: out, format: format}
}

// Print writes v as indented JSON, or calls table with a column-aligned writer
func (p *Printer) Print(v any, table func(w io.Writer)) error {
	if p.format == config.FormatJSON {
		data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		_, err = fmt.Fprintln(p.out, string(data))
		return err
	}

	w := tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0)
	table(w)
	return w.Flush()
}
