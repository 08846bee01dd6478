package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/graphsolver/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("graphsolver", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
GraphSolver - Synthesizes typed dataflow programs by parallel best-first search.

Usage:
  graphsolver [options] [PROBLEM_PATH]

Arguments:
  PROBLEM_PATH
    Path to a .hcl or .yaml problem file, or a directory of .hcl files.

Options:
`)
		flagSet.PrintDefaults()
	}

	problemFlag := flagSet.String("problem", "", "Path to the problem file or directory.")
	pFlag := flagSet.String("p", "", "Path to the problem file or directory (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check and stats server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Number of concurrent search workers. 0 uses the problem's setting or the CPU count.")
	maxSolutionsFlag := flagSet.Int("max-solutions", 0, "Stop after this many solutions. 0 uses the problem's setting.")
	maxProcessedFlag := flagSet.Int("max-processed", 0, "Stop after expanding this many graphs. 0 uses the problem's setting.")
	timeoutFlag := flagSet.Duration("timeout", 0, "Stop the search after this long, e.g. '30s'. 0 uses the problem's setting.")
	progressIntervalFlag := flagSet.Duration("progress-interval", 0, "How often to report progress. 0 means every second.")
	progressURLFlag := flagSet.String("progress-url", "", "Socket.IO server URL to stream progress to, e.g. 'http://localhost:3000/socket.io/'.")
	topFlag := flagSet.Int("top", 0, "Number of solutions to print. 0 means 10.")
	formatFlag := flagSet.String("format", "table", "Solutions output format. Options: 'table' or 'markdown'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *problemFlag != "" {
		path = *problemFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Problem path determined.", "path", path)

	if path == "" {
		slog.Debug("No problem path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	format := strings.ToLower(*formatFlag)
	if format != "table" && format != "markdown" {
		return nil, false, &ExitError{Code: 2, Message: "invalid format: must be 'table' or 'markdown'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ProblemPath:      path,
		LogFormat:        logFormat,
		LogLevel:         logLevel,
		HealthcheckPort:  *healthPortFlag,
		Workers:          *workersFlag,
		MaxSolutions:     *maxSolutionsFlag,
		MaxProcessed:     *maxProcessedFlag,
		Timeout:          *timeoutFlag,
		ProgressInterval: *progressIntervalFlag,
		ProgressURL:      *progressURLFlag,
		TopN:             *topFlag,
		Markdown:         format == "markdown",
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
