package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/bundlecfg/internal/app"
)

func TestParse(t *testing.T) {
	t.Parallel()

	noEnv := "-env-file=" + filepath.Join(t.TempDir(), "absent.env")

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				noEnv,
				"-config", "/test/build.hcl",
				"--format=json",
				"--match=src/app.elm, src/app.css,,",
				"--color=always",
				"--log-level=debug",
				"--log-format=json",
			},
			expectedConfig: &app.Config{
				ConfigPath: "/test/build.hcl",
				Matches:    []string{"src/app.elm", "src/app.css"},
				Format:     "json",
				Color:      "always",
				LogLevel:   "debug",
				LogFormat:  "json",
			},
		},
		{
			name: "Shorthand flag and defaults",
			args: []string{noEnv, "-c", "/short/build.yaml"},
			expectedConfig: &app.Config{
				ConfigPath: "/short/build.yaml",
				Format:     "text",
				Color:      "auto",
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name: "Positional argument for path",
			args: []string{noEnv, "/positional/build.hcl"},
			expectedConfig: &app.Config{
				ConfigPath: "/positional/build.hcl",
				Format:     "text",
				Color:      "auto",
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name: "Same path through -config and positional is accepted",
			args: []string{noEnv, "-config", "/same/build.hcl", "/same/build.hcl"},
			expectedConfig: &app.Config{
				ConfigPath: "/same/build.hcl",
				Format:     "text",
				Color:      "auto",
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:       "No path triggers clean exit with usage",
			args:       []string{noEnv},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{name: "Invalid log level returns an error", args: []string{noEnv, "--log-level=foo", "/path.hcl"}, expectErr: true},
		{name: "Invalid log format returns an error", args: []string{noEnv, "--log-format=yaml", "/path.hcl"}, expectErr: true},
		{name: "Invalid report format returns an error", args: []string{noEnv, "--format=toml", "/path.hcl"}, expectErr: true},
		{name: "Invalid color returns an error", args: []string{noEnv, "--color=rainbow", "/path.hcl"}, expectErr: true},
		{name: "Unknown flag returns an error", args: []string{"--nope"}, expectErr: true},
		{name: "Conflicting -config and -c return an error", args: []string{noEnv, "-config", "/a.hcl", "-c", "/b.hcl"}, expectErr: true},
		{name: "Conflicting -config and positional path return an error", args: []string{noEnv, "-config", "/a.hcl", "/b.hcl"}, expectErr: true},
		{name: "Conflicting -c and positional path return an error", args: []string{noEnv, "-c", "/a.hcl", "/b.hcl"}, expectErr: true},
		{name: "Two positional paths return an error", args: []string{noEnv, "/a.hcl", "/b.hcl"}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			appConfig, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				exitErr, isExitError := err.(*ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, appConfig); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}
			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}

func TestParse_EnvFileDefaults(t *testing.T) {
	t.Parallel()

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BUNDLECFG_FORMAT=yaml\nBUNDLECFG_LOG_LEVEL=warn\n"), 0600))

	cfg, _, err := Parse([]string{"-env-file", envFile, "--log-level=error", "build.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)

	require.Equal(t, "yaml", cfg.Format, "env file supplies unset flags")
	require.Equal(t, "error", cfg.LogLevel, "explicit flags win over the env file")
}

func TestParse_ProcessEnvWinsOverEnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("BUNDLECFG_FORMAT=yaml\n"), 0600))
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvColor, "never")

	cfg, _, err := Parse([]string{"-env-file", envFile, "build.hcl"}, &bytes.Buffer{})
	require.NoError(t, err)

	require.Equal(t, "json", cfg.Format)
	require.Equal(t, "never", cfg.Color)
}

func TestParse_UnreadableEnvFile(t *testing.T) {
	t.Parallel()

	// A directory cannot be read as a dotenv file.
	_, _, err := Parse([]string{"-env-file", t.TempDir(), "build.hcl"}, &bytes.Buffer{})

	require.Error(t, err)
	_, isExitError := err.(*ExitError)
	require.True(t, isExitError)
}
