package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"time-picker/internal/api"
	"time-picker/internal/config"
)

// App represents the main CLI application
type App struct {
	api      api.API
	config   *config.Config
	printer  *Printer
	registry *CommandRegistry
}

// NewApp creates a new CLI application instance with dependency injection.
// A nil out writes to stdout.
func NewApp(apiInstance api.API, cfg *config.Config, out io.Writer) *App {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if out == nil {
		out = os.Stdout
	}

	app := &App{
		api:     apiInstance,
		config:  cfg,
		printer: NewPrinter(out, cfg.Output.Format),
	}
	app.registry = NewCommandRegistry(app)
	return app
}

// Run executes the CLI application with the given arguments
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", a.registry.GetUsage())
	}

	commandName := args[0]
	commandArgs := args[1:]

	return a.registry.Execute(ctx, commandName, commandArgs)
}
