package cli

import (
	"context"
	"fmt"
	"io"

	"time-picker/internal/api"
	"time-picker/internal/errors"
)

// FormatCommand handles the format command
type FormatCommand struct {
	api          api.API
	printer      *Printer
	errorHandler *ErrorHandler
}

// NewFormatCommand creates a new format command handler
func NewFormatCommand(app *App) *FormatCommand {
	return &FormatCommand{
		api:          app.api,
		printer:      app.printer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the format command
func (c *FormatCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "format", "usage: tp format HH:mm[:ss]")
	}

	formatted, err := c.api.Format(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("format time", err)
	}

	return c.printer.Print(formatted, func(w io.Writer) {
		fmt.Fprintf(w, "Value:\t%s\n", formatted.Value)
		fmt.Fprintf(w, "Display:\t%s\n", formatted.Display)
		fmt.Fprintf(w, "12-hour:\t%s\n", formatted.Display12)
		fmt.Fprintf(w, "24-hour:\t%s\n", formatted.Display24)
	})
}
