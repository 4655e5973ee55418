package cli

import (
	"context"
	"fmt"
	"io"

	"time-picker/internal/api"
	"time-picker/internal/errors"
)

// ValidateCommand handles the validate command
type ValidateCommand struct {
	api          api.API
	printer      *Printer
	errorHandler *ErrorHandler
}

// NewValidateCommand creates a new validate command handler
func NewValidateCommand(app *App) *ValidateCommand {
	return &ValidateCommand{
		api:          app.api,
		printer:      app.printer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the validate command. A value that is not allowed is
// reported, not returned as an error.
func (c *ValidateCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("command", "validate", "usage: tp validate HH:mm[:ss]")
	}

	report, err := c.api.Validate(ctx, args[0])
	if err != nil {
		return c.errorHandler.Handle("validate time", err)
	}

	return c.printer.Print(report, func(w io.Writer) {
		fmt.Fprintf(w, "Value:\t%s\n", report.Value)
		fmt.Fprintf(w, "Allowed:\t%t\n", report.Allowed)
		for _, p := range report.Problems {
			fmt.Fprintf(w, "Problem:\t%s\n", p.Message)
		}
		if report.Suggestion != "" {
			fmt.Fprintf(w, "Closest option:\t%s\n", report.Suggestion)
		}
	})
}
