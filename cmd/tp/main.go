package main

import (
	"fmt"
	"os"

	"time-picker/internal/api"
	"time-picker/internal/cli"
	"time-picker/internal/config"
	"time-picker/internal/logging"
	"time-picker/internal/services"
)

// newAPI wires the services for a loaded configuration
func newAPI(cfg *config.Config) (api.API, error) {
	logging.SetVerbose(cfg.Application.Verbose)
	logger := logging.New("tp").With().Str("env", string(cfg.Application.Environment)).Logger()

	clk, err := NewClockFactory(cfg.Application).CreateClock()
	if err != nil {
		return nil, err
	}

	return api.New(services.NewServiceContainer(clk, logger), cfg.Picker)
}

func main() {
	root := cli.NewRootCommand(newAPI, os.Stdout)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
