package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"time-picker/internal/api"
	"time-picker/internal/errors"
)

// MergeCommand handles the merge command
type MergeCommand struct {
	api          api.API
	printer      *Printer
	errorHandler *ErrorHandler
}

// NewMergeCommand creates a new merge command handler
func NewMergeCommand(app *App) *MergeCommand {
	return &MergeCommand{
		api:          app.api,
		printer:      app.printer,
		errorHandler: NewErrorHandler(),
	}
}

// Execute runs the merge command. Words after the date form the time, so
// "tp merge 2024-01-15 4:00 PM" works without quoting.
func (c *MergeCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("command", "merge", "usage: tp merge <date> <time>")
	}

	merged, err := c.api.Merge(ctx, args[0], strings.Join(args[1:], " "))
	if err != nil {
		return c.errorHandler.Handle("merge date and time", err)
	}

	return c.printer.Print(merged, func(w io.Writer) {
		fmt.Fprintf(w, "Date:\t%s\n", merged.Date)
		fmt.Fprintf(w, "Time:\t%s\n", merged.Time)
		fmt.Fprintf(w, "Result:\t%s\n", merged.Result.Format(time.RFC3339))
	})
}
