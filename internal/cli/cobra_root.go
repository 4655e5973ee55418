package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"time-picker/internal/api"
	"time-picker/internal/config"
)

// commandTimeout bounds a single command run
const commandTimeout = 30 * time.Second

// APIFactory builds the API once configuration is known
type APIFactory func(cfg *config.Config) (api.API, error)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	newAPI APIFactory
	out    io.Writer
	config *config.Config
	app    *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(newAPI APIFactory, out io.Writer) *RootCommand {
	root := &RootCommand{
		newAPI: newAPI,
		out:    out,
	}

	root.cmd = &cobra.Command{
		Use:   "tp",
		Short: "Exercise the time picker engine from the command line",
		Long: `Time Picker (tp) drives the time picker engine without a browser.

EXAMPLES:
  tp parse 4:15pm                          # Type text into a picker and blur it
  tp format 16:15 --use-24-hour            # Render a value string
  tp options 09:30 --min 08:00 --max 12:00 # Show the dropdown for a value
  tp mask 1 1 3 0 p                        # Replay keys through the input mask
  tp merge 2024-01-15 04:00 PM             # Apply a time to a date
  tp validate 12:00 --restricted 12:00     # Check a value against constraints

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Picker Configuration:
    TP_PICKER_USE_24_HOUR                  Use the 24-hour clock (default: false)
    TP_PICKER_ALLOW_SECONDS                Accept and show seconds (default: false)
    TP_PICKER_MASKED                       Mask typed input (default: true)
    TP_PICKER_ALLOW_INVALID_TIME           Keep unparsable text (default: false)
    TP_PICKER_SHOW_NOW                     Offer a "Now" option (default: false)
    TP_PICKER_SHOW_HOUR_OPTIONS            Offer stepped options (default: true)
    TP_PICKER_STEP                         Option step in minutes (default: 60)
    TP_PICKER_MIN, TP_PICKER_MAX           Bounds as HH:mm[:ss]
    TP_PICKER_START_TIME                   Option grid anchor as HH:mm[:ss]
    TP_PICKER_RESTRICTED_TIMES             Comma separated times that cannot be chosen

  Output and Application Configuration:
    TP_OUTPUT_FORMAT                       table or json (default: table)
    TP_APP_VERBOSE                         Enable verbose output (default: false)
    TP_APP_ENV                             development, testing or production
    TP_APP_FIXED_NOW                       RFC 3339 instant used as "now" in testing
    TP_DEBUG                               Write debug logs to stderr`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load configuration and apply flag overrides before any command runs
			return root.setup(cmd.Flags())
		},
	}

	// Add global flags for configuration overrides
	root.addGlobalFlags()

	// Add all subcommands
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// SetArgs replaces the command line arguments, for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// Config returns the configuration of the last run
func (r *RootCommand) Config() *config.Config {
	return r.config
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	// Picker configuration
	flags.Bool("use-24-hour", false, "Use the 24-hour clock (overrides TP_PICKER_USE_24_HOUR)")
	flags.Bool("allow-seconds", false, "Accept and show seconds (overrides TP_PICKER_ALLOW_SECONDS)")
	flags.Bool("masked", true, "Mask typed input (overrides TP_PICKER_MASKED)")
	flags.Bool("allow-invalid-time", false, "Keep unparsable text (overrides TP_PICKER_ALLOW_INVALID_TIME)")
	flags.Bool("show-now", false, "Offer a Now option (overrides TP_PICKER_SHOW_NOW)")
	flags.Bool("show-hour-options", true, "Offer stepped options (overrides TP_PICKER_SHOW_HOUR_OPTIONS)")
	flags.Int("step", 0, "Option step in minutes (overrides TP_PICKER_STEP)")
	flags.String("min", "", "Earliest allowed time (overrides TP_PICKER_MIN)")
	flags.String("max", "", "Latest allowed time (overrides TP_PICKER_MAX)")
	flags.String("start-time", "", "Option grid anchor (overrides TP_PICKER_START_TIME)")
	flags.StringSlice("restricted", nil, "Times that cannot be chosen (overrides TP_PICKER_RESTRICTED_TIMES)")

	// Output and application configuration
	flags.StringP("output", "o", "", "Output format: table or json (overrides TP_OUTPUT_FORMAT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides TP_APP_VERBOSE)")
	flags.String("config", "", "YAML configuration file")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	run := func(handler func(app *App) Command) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
			defer cancel()

			return handler(r.app).Execute(ctx, args)
		}
	}

	parseCmd := &cobra.Command{
		Use:   "parse [text]",
		Short: "Type text into a picker and report the value",
		Long: `Type text into a fresh picker, blur it and report the committed value
and the text left in the input.

Examples:
  tp parse 1111                  # 11:11 AM
  tp parse 4:15pm --masked=false # unmasked input with a marker`,
		Args: cobra.MinimumNArgs(1),
		RunE: run(func(app *App) Command { return NewParseCommand(app) }),
	}

	formatCmd := &cobra.Command{
		Use:   "format HH:mm[:ss]",
		Short: "Render a value string",
		Args:  cobra.ExactArgs(1),
		RunE:  run(func(app *App) Command { return NewFormatCommand(app) }),
	}

	optionsCmd := &cobra.Command{
		Use:   "options [current]",
		Short: "List the dropdown options",
		Long: `List the options a dropdown shows, marking the option equal to the
current value as selected or the closest one as active.`,
		Args: cobra.MaximumNArgs(1),
		RunE: run(func(app *App) Command { return NewOptionsCommand(app) }),
	}

	maskCmd := &cobra.Command{
		Use:   "mask <keys...>",
		Short: "Replay keys through the input mask",
		Long: `Replay keys through a picker and show the input after each one.

Arguments are typed character by character unless they name a key:
  backspace, delete, shift+backspace, shift+delete, up, down, home, end,
  enter, tab, escape, focus, click, blur

The picker is blurred at the end unless the last argument is blur.`,
		Args: cobra.MinimumNArgs(1),
		RunE: run(func(app *App) Command { return NewMaskCommand(app) }),
	}

	mergeCmd := &cobra.Command{
		Use:   "merge <date> <time>",
		Short: "Apply a time string to a date",
		Long: `Apply a 12-hour or 24-hour time string to a date.

The date is YYYY-MM-DD, an RFC 3339 timestamp or "today".`,
		Args: cobra.MinimumNArgs(2),
		RunE: run(func(app *App) Command { return NewMergeCommand(app) }),
	}

	validateCmd := &cobra.Command{
		Use:   "validate HH:mm[:ss]",
		Short: "Check a value against min, max and restricted times",
		Args:  cobra.ExactArgs(1),
		RunE:  run(func(app *App) Command { return NewValidateCommand(app) }),
	}

	r.cmd.AddCommand(
		parseCmd,
		formatCmd,
		optionsCmd,
		maskCmd,
		mergeCmd,
		validateCmd,
	)
}

// setup loads configuration with flag overrides and builds the application
func (r *RootCommand) setup(flags *pflag.FlagSet) error {
	if r.newAPI == nil {
		return fmt.Errorf("api factory not initialized")
	}

	loader := config.NewLoader()
	if file, _ := flags.GetString("config"); file != "" {
		loader.WithFile(file)
	}

	cfg, err := loader.LoadWithOverrides(getOverridesFromFlags(flags))
	if err != nil {
		return NewErrorHandler().Handle("load configuration", err)
	}

	apiInstance, err := r.newAPI(cfg)
	if err != nil {
		return NewErrorHandler().Handle("configure picker", err)
	}

	r.config = cfg
	r.app = NewApp(apiInstance, cfg, r.out)
	return nil
}

// getOverridesFromFlags collects the flags that were set explicitly
func getOverridesFromFlags(flags *pflag.FlagSet) *config.ConfigOverrides {
	overrides := &config.ConfigOverrides{}

	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	// Picker configuration
	overrides.Use24Hour = boolFlag("use-24-hour")
	overrides.AllowSeconds = boolFlag("allow-seconds")
	overrides.Masked = boolFlag("masked")
	overrides.AllowInvalidTime = boolFlag("allow-invalid-time")
	overrides.ShowNow = boolFlag("show-now")
	overrides.ShowHourOptions = boolFlag("show-hour-options")
	overrides.Min = stringFlag("min")
	overrides.Max = stringFlag("max")
	overrides.StartTime = stringFlag("start-time")
	if flags.Changed("step") {
		step, _ := flags.GetInt("step")
		overrides.Step = &step
	}
	if flags.Changed("restricted") {
		restricted, _ := flags.GetStringSlice("restricted")
		overrides.RestrictedTimes = &restricted
	}

	// Output and application configuration
	overrides.OutputFormat = stringFlag("output")
	overrides.Verbose = boolFlag("verbose")

	return overrides
}
