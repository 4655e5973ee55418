package cli

import (
	"context"
	"fmt"
	"io"

	"time-picker/internal/api"
	"time-picker/internal/errors"
	"time-picker/internal/services"
)

// OptionsCommand handles the options command
type OptionsCommand struct {
	api          api.API
	printer      *Printer
	errorHandler *ErrorHandler
}

// NewOptionsCommand creates a new options command handler
func NewOptionsCommand(app *App) *OptionsCommand {
	return &OptionsCommand{
		api:          app.api,
		printer:      app.printer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the options command
func (c *OptionsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errors.NewInvalidInputError("command", "options", "usage: tp options [current HH:mm]")
	}
	current := ""
	if len(args) == 1 {
		current = args[0]
	}

	list, err := c.api.Options(ctx, current)
	if err != nil {
		return c.errorHandler.Handle("list options", err)
	}

	return c.printer.Print(list, func(w io.Writer) {
		fmt.Fprintln(w, "#\tLABEL\tVALUE\tKIND\tSTATE")
		for _, o := range list.Options {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", o.Index, o.Label, o.Value, o.Kind, optionState(o))
		}
	})
}

func optionState(o *services.OptionEntry) string {
	switch {
	case o.Matched:
		return "selected"
	case o.Active:
		return "active"
	case o.Disabled:
		return "disabled"
	default:
		return ""
	}
}
