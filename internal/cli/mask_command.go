package cli

import (
	"context"
	"fmt"
	"io"

	"time-picker/internal/api"
	"time-picker/internal/errors"
)

// MaskCommand handles the mask command
type MaskCommand struct {
	api          api.API
	printer      *Printer
	errorHandler *ErrorHandler
}

// NewMaskCommand creates a new mask command handler
func NewMaskCommand(app *App) *MaskCommand {
	return &MaskCommand{
		api:          app.api,
		printer:      app.printer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the mask command. Each argument is either text typed one
// character at a time or a key name such as backspace, down or enter.
func (c *MaskCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("command", "mask", "usage: tp mask <keys...>")
	}

	trace, err := c.api.Mask(ctx, args)
	if err != nil {
		return c.errorHandler.Handle("replay keys", err)
	}

	return c.printer.Print(trace, func(w io.Writer) {
		fmt.Fprintln(w, "KEY\tDISPLAY\tVALUE\tOPEN")
		for _, s := range trace.Steps {
			fmt.Fprintf(w, "%s\t%q\t%s\t%t\n", s.Token, s.Display, orNone(s.Value), s.Open)
		}
		fmt.Fprintf(w, "\nValue:\t%s\n", orNone(trace.Value))
		fmt.Fprintf(w, "Changes:\t%d\n", len(trace.Changes))
	})
}
