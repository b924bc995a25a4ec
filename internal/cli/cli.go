package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/carloslema/lwtnn/internal/app"
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

// multiFlag collects every occurrence of a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("lwtnn-test-graph", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
lwtnn-test-graph - Build a neural network graph and evaluate it on dummy inputs.

Usage:
  lwtnn-test-graph [options] [CONFIG_PATH...]

Arguments:
  CONFIG_PATH
    Path to a .hcl or .json graph file, a directory of them, or '-' for stdin.
    Without a path the built-in dummy graph is used.

Options:
`)
		flagSet.PrintDefaults()
	}

	var configFlags multiFlag
	flagSet.Var(&configFlags, "config", "Path to a graph file or directory. May be repeated.")
	flagSet.Var(&configFlags, "c", "Path to a graph file or directory (shorthand).")
	nodeFlag := flagSet.Int("node", app.NodeLast, "Node to evaluate. -1 evaluates the last node built.")
	emitFlag := flagSet.Bool("emit-config", false, "Write the active configuration as HCL and exit.")
	servePortFlag := flagSet.Int("serve-port", 0, "Serve /health and /compute on this port instead of evaluating once. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append([]string(configFlags), flagSet.Args()...)
	slog.Debug("Configuration paths determined.", "paths", paths)

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPaths: paths,
		Node:        *nodeFlag,
		EmitConfig:  *emitFlag,
		ServePort:   *servePortFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
