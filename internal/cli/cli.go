package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/specialistvlad/statgridgo/internal/app"
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

// mutationFlag is a repeatable `name=value` flag. All mutation flags share
// one slice so their relative command-line order is kept.
type mutationFlag struct {
	op        app.MutationOp
	mutations *[]app.Mutation
}

func (f *mutationFlag) String() string {
	if f.mutations == nil {
		return ""
	}
	var parts []string
	for _, m := range *f.mutations {
		if m.Op == f.op {
			parts = append(parts, fmt.Sprintf("%s=%g", m.Name, m.Value))
		}
	}
	return strings.Join(parts, ",")
}

func (f *mutationFlag) Set(raw string) error {
	m, err := parseMutation(f.op, raw)
	if err != nil {
		return err
	}
	*f.mutations = append(*f.mutations, m)
	return nil
}

func parseMutation(op app.MutationOp, raw string) (app.Mutation, error) {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return app.Mutation{}, fmt.Errorf("expected name=value, got %q", raw)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return app.Mutation{}, fmt.Errorf("invalid number in %q: %w", raw, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return app.Mutation{}, fmt.Errorf("value in %q must be finite", raw)
	}
	return app.Mutation{Op: op, Name: name, Value: v}, nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("statgrid", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
statgrid - evaluate a stat dependency graph and apply changes to it.

Usage:
  statgrid [options] GRAPH_PATH...

Arguments:
  GRAPH_PATH
    Path to a single .hcl file or a directory containing .hcl files.

Examples:
  statgrid -set gold=10 -add income=5 economy.hcl
  statgrid -preview -modify bld_12__workers=1 graphs/

Options:
`)
		flagSet.PrintDefaults()
	}

	var mutations []app.Mutation
	flagSet.Var(&mutationFlag{op: app.OpSet, mutations: &mutations}, "set", "Set an independent stat: name=value. Repeatable.")
	flagSet.Var(&mutationFlag{op: app.OpModify, mutations: &mutations}, "modify", "Add a delta to an independent stat: name=delta. Repeatable.")
	flagSet.Var(&mutationFlag{op: app.OpAdd, mutations: &mutations}, "add", "Add a delta to a parameter's additive part: name=delta. Repeatable.")
	previewFlag := flagSet.Bool("preview", false, "Apply mutations to a hypothetical copy and print only what would change.")
	maxDepthFlag := flagSet.Int("max-depth", 0, "Maximum cascade depth. 0 uses the engine default.")
	graphFlag := flagSet.String("graph", "", "Path to the graph file or directory.")
	gFlag := flagSet.String("g", "", "Path to the graph file or directory (shorthand).")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Serve /health and /stats on this port until interrupted. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "json", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	mirrorURLFlag := flagSet.String("mirror-url", "", "socket.io server to mirror every stat change to.")
	mirrorNSFlag := flagSet.String("mirror-namespace", "", "socket.io namespace for the mirror. Defaults to '/'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var paths []string
	switch {
	case *graphFlag != "":
		paths = append(paths, *graphFlag)
	case *gFlag != "":
		paths = append(paths, *gFlag)
	}
	paths = append(paths, flagSet.Args()...)
	slog.Debug("Graph paths determined.", "paths", paths)

	if len(paths) == 0 {
		slog.Debug("No graph path provided, printing usage and exiting.")
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
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *previewFlag && len(mutations) == 0 {
		return nil, false, &ExitError{Code: 2, Message: "-preview needs at least one of -set, -modify or -add"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		GraphPaths:      paths,
		Mutations:       mutations,
		Preview:         *previewFlag,
		MaxDepth:        *maxDepthFlag,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
		MirrorURL:       *mirrorURLFlag,
		MirrorNamespace: *mirrorNSFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
