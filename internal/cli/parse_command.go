package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"time-picker/internal/api"
	"time-picker/internal/errors"
)

// ParseCommand handles the parse command
type ParseCommand struct {
	api          api.API
	printer      *Printer
	errorHandler *ErrorHandler
}

// NewParseCommand creates a new parse command handler
func NewParseCommand(app *App) *ParseCommand {
	return &ParseCommand{
		api:          app.api,
		printer:      app.printer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the parse command
func (c *ParseCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.NewInvalidInputError("command", "parse", "usage: tp parse \"typed text\"")
	}
	text := strings.Join(args, " ")

	parsed, err := c.api.Parse(ctx, text)
	if err != nil {
		return c.errorHandler.Handle("parse time", err)
	}

	return c.printer.Print(parsed, func(w io.Writer) {
		fmt.Fprintf(w, "Input:\t%s\n", parsed.Input)
		fmt.Fprintf(w, "Value:\t%s\n", orNone(parsed.Value))
		fmt.Fprintf(w, "Display:\t%s\n", orNone(parsed.Display))
	})
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
