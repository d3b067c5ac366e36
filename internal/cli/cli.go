package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vk/bundlecfg/internal/app"
)

// Environment variables consulted for flags that were not given explicitly.
const (
	EnvLogLevel  = "BUNDLECFG_LOG_LEVEL"
	EnvLogFormat = "BUNDLECFG_LOG_FORMAT"
	EnvFormat    = "BUNDLECFG_FORMAT"
	EnvColor     = "BUNDLECFG_COLOR"
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
	flagSet := flag.NewFlagSet("bundlecfg", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
bundlecfg - Validate and resolve bundler build configurations.

Usage:
  bundlecfg [options] CONFIG_PATH

Arguments:
  CONFIG_PATH
    Path to a .hcl, .yaml or .yml build file, or a directory holding one.
    Equivalent to -config or -c; giving different paths is an error.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to the build file.")
	cFlag := flagSet.String("c", "", "Path to the build file (shorthand).")
	formatFlag := flagSet.String("format", "text", "Report format. Options: 'text', 'json' or 'yaml'.")
	matchFlag := flagSet.String("match", "", "Comma-separated files to look up against the resolved rules.")
	colorFlag := flagSet.String("color", "auto", "Colorize text reports. Options: 'auto', 'always' or 'never'.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	envFileFlag := flagSet.String("env-file", ".env", "Dotenv file providing BUNDLECFG_* defaults. A missing file is ignored.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	env, err := readEnvFile(*envFileFlag)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	fromEnv := func(flagName, envName string, current string) string {
		if explicit[flagName] {
			return current
		}
		if v := lookupEnv(env, envName); v != "" {
			return v
		}
		return current
	}

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one CONFIG_PATH, got %d", flagSet.NArg())}
	}
	path, err := pickConfigPath(*configFlag, *cFlag, flagSet.Arg(0))
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Config path determined.", "path", path)

	if path == "" {
		slog.Debug("No config path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(fromEnv("log-format", EnvLogFormat, *logFormatFlag))
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(fromEnv("log-level", EnvLogLevel, *logLevelFlag))
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	var matches []string
	for _, m := range strings.Split(*matchFlag, ",") {
		if m = strings.TrimSpace(m); m != "" {
			matches = append(matches, m)
		}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath: path,
		Matches:    matches,
		Format:     strings.ToLower(fromEnv("format", EnvFormat, *formatFlag)),
		Color:      strings.ToLower(fromEnv("color", EnvColor, *colorFlag)),
		LogFormat:  logFormat,
		LogLevel:   logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// readEnvFile reads dotenv pairs without touching the process environment.
func readEnvFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	env, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return env, nil
}

// lookupEnv prefers the process environment over the env file.
func lookupEnv(fileEnv map[string]string, key string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fileEnv[key]
}

// pickConfigPath returns the one build file path named by -config, -c or the
// positional argument. Repeating the same path is allowed.
func pickConfigPath(sources ...string) (string, error) {
	path := ""
	for _, p := range sources {
		if p == "" {
			continue
		}
		if path != "" && p != path {
			return "", fmt.Errorf("conflicting config paths %q and %q", path, p)
		}
		path = p
	}
	return path, nil
}
