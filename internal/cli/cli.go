package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/lootgraph/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// stringList is a repeatable string flag.
type stringList []string

func (s *stringList) String() string {
	return strings.Join(*s, ",")
}

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

// Parse processes command-line arguments on top of the LOOTGRAPH_*
// environment defaults. It returns a populated Config, a boolean indicating
// if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	defaults, err := app.ConfigFromEnv()
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	flagSet := flag.NewFlagSet("lootgraph", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, `
lootgraph - Resolves game loot tables into a queryable group graph.

Usage:
  lootgraph [options] [DATA_PATH...]

Arguments:
  DATA_PATH
    Loot files (.xml, .hcl, .yaml, .yml) or directories containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	dataFlag := flagSet.String("data", "", "Path to a loot file or directory.")
	dFlag := flagSet.String("d", "", "Path to a loot file or directory (shorthand).")
	logFormatFlag := flagSet.String("log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	var ignored stringList
	flagSet.Var(&ignored, "ignore-container", "Container name to leave out of the model. Repeatable.")
	sqliteFlag := flagSet.String("sqlite-out", defaults.SQLiteOut, "Write the resolved model to this SQLite file.")
	publishURLFlag := flagSet.String("publish-url", defaults.PublishURL, "Socket.io server that receives the loot snapshot.")
	publishNSFlag := flagSet.String("publish-namespace", defaults.PublishNamespace, "Socket.io namespace for the snapshot.")
	publishTimeoutFlag := flagSet.Duration("publish-timeout", defaults.PublishTimeout, "Connection timeout for publishing.")
	healthPortFlag := flagSet.Int("healthcheck-port", defaults.HealthcheckPort, "Port for the HTTP health, metrics and lookup server. 0 is disabled.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	switch {
	case *dataFlag != "":
		paths = []string{*dataFlag}
	case *dFlag != "":
		paths = []string{*dFlag}
	case flagSet.NArg() > 0:
		paths = flagSet.Args()
	default:
		paths = defaults.DataPaths
	}
	slog.Debug("Data paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No data path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg, err := app.NewConfig(app.Config{
		DataPaths:         paths,
		IgnoredContainers: append(defaults.IgnoredContainers, ignored...),
		LogFormat:         strings.ToLower(*logFormatFlag),
		LogLevel:          strings.ToLower(*logLevelFlag),
		HealthcheckPort:   *healthPortFlag,
		SQLiteOut:         *sqliteFlag,
		PublishURL:        *publishURLFlag,
		PublishNamespace:  *publishNSFlag,
		PublishTimeout:    *publishTimeoutFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
