package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/bundlecfg/internal/report"
	"github.com/vk/bundlecfg/internal/resolver"
)

const buildHCL = `
entry "app" {
  sources = ["./src/index.js"]
}
output {
  path     = "dist"
  filename = "[name].js"
}
rule {
  test    = "\\.css$"
  exclude = ["node_modules"]
  use     = ["style-loader", "css-loader"]
}
rule {
  test    = "\\.html$"
  exclude = ["node_modules"]
  loader  = "file-loader?name=[name].[ext]"
}
rule {
  test    = "\\.elm$"
  exclude = ["elm-stuff", "node_modules"]
  loader  = "elm-webpack-loader?verbose=true&warn=true"
}
no_parse = ["\\.elm$"]
dev_server {
  stats = { color = true }
}
`

const buildYAML = `
entries:
  app: [./src/index.js]
output:
  path: dist
  filename: "[name].js"
rules:
  - test: '\.css$'
    exclude: node_modules
    use: [style-loader, css-loader]
  - test: '\.html$'
    exclude: node_modules
    loader: file-loader?name=[name].[ext]
  - test: '\.elm$'
    exclude: [elm-stuff, node_modules]
    loader: elm-webpack-loader?verbose=true&warn=true
no_parse: '\.elm$'
dev_server:
  stats:
    color: true
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func newTestApp(t *testing.T, cfg Config) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	appConfig, err := NewConfig(cfg)
	require.NoError(t, err)
	out, logs := &bytes.Buffer{}, &bytes.Buffer{}
	a, err := NewApp(out, logs, appConfig, nil)
	require.NoError(t, err)
	return a, out, logs
}

func TestApp_HCLAndYAMLResolveIdentically(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	hclApp, _, _ := newTestApp(t, Config{ConfigPath: writeFile(t, dir, "build.hcl", buildHCL)})
	yamlApp, _, _ := newTestApp(t, Config{ConfigPath: writeFile(t, dir, "build.yml", buildYAML)})

	fromHCL, err := hclApp.Resolve(context.Background())
	require.NoError(t, err)
	fromYAML, err := yamlApp.Resolve(context.Background())
	require.NoError(t, err)

	opts := cmp.Options{
		cmp.AllowUnexported(resolver.ResolvedConfig{}),
		cmp.Comparer(func(a, b *regexp.Regexp) bool { return a.String() == b.String() }),
	}
	if diff := cmp.Diff(fromHCL, fromYAML, opts); diff != "" {
		t.Errorf("HCL and YAML configs differ (-hcl +yaml):\n%s", diff)
	}

	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"app": filepath.Join(absDir, "dist", "app.js")}, fromHCL.OutputFiles())
}

func TestApp_Run_JSONWithMatches(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	a, out, logs := newTestApp(t, Config{
		ConfigPath: writeFile(t, dir, "build.hcl", buildHCL),
		Matches:    []string{"src/Main.elm", "src/style.css", "node_modules/x/index.html"},
		Format:     "json",
		LogLevel:   "debug",
		LogFormat:  "text",
	})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)

	var v report.View
	require.NoError(t, json.Unmarshal(out.Bytes(), &v))
	require.Len(t, v.Matches, 3)
	require.Equal(t, 2, *v.Matches[0].Rule)
	require.True(t, v.Matches[0].NoParse)
	require.Equal(t, 0, *v.Matches[1].Rule)
	require.Nil(t, v.Matches[2].Rule)

	require.Contains(t, logs.String(), "Configuration resolved.")
	require.Contains(t, logs.String(), "HCL loader started.")
}

func TestApp_Run_Text(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a, out, _ := newTestApp(t, Config{ConfigPath: writeFile(t, dir, "build.yaml", buildYAML), Color: "never"})

	require.NoError(t, a.Run(context.Background()))
	require.Contains(t, out.String(), "Rules")
	require.Contains(t, out.String(), "stats.color  true")
}

func TestApp_Run_ResolutionErrorIsTyped(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := `
entries:
  app: a.js
  admin: b.js
output:
  filename: bundle.js
`
	a, out, _ := newTestApp(t, Config{ConfigPath: writeFile(t, dir, "build.yaml", src)})

	err := a.Run(context.Background())

	var outErr *resolver.AmbiguousOutputError
	require.True(t, errors.As(err, &outErr), "expected AmbiguousOutputError, got %v", err)
	require.Empty(t, out.String(), "nothing is reported for a failed resolution")
}

func TestApp_Run_DuplicateYAMLEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := "entries:\n  app: a.js\n  app: b.js\n"
	a, _, _ := newTestApp(t, Config{ConfigPath: writeFile(t, dir, "build.yaml", src)})

	_, err := a.Resolve(context.Background())

	var entryErr *resolver.InvalidEntryError
	require.True(t, errors.As(err, &entryErr), "expected InvalidEntryError, got %v", err)
}

func TestApp_LoadError(t *testing.T) {
	t.Parallel()

	a, _, _ := newTestApp(t, Config{ConfigPath: filepath.Join(t.TempDir(), "missing.hcl")})

	err := a.Run(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load configuration")
}

func TestNewApp_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	appConfig, err := NewConfig(Config{ConfigPath: "webpack.config.js"})
	require.NoError(t, err)

	_, err = NewApp(&bytes.Buffer{}, &bytes.Buffer{}, appConfig, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported build file extension")
}

func TestNewConfig(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		in        Config
		want      *Config
		expectErr bool
	}{
		{name: "defaults", in: Config{ConfigPath: "b.hcl"}, want: &Config{ConfigPath: "b.hcl", Format: "text", Color: "auto"}},
		{name: "missing path", in: Config{}, expectErr: true},
		{name: "bad format", in: Config{ConfigPath: "b.hcl", Format: "toml"}, expectErr: true},
		{name: "bad color", in: Config{ConfigPath: "b.hcl", Color: "sometimes"}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewConfig(tc.in)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestNewApp_DirectoryConfigPath(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "bundlecfg.yaml", buildYAML)
	a, _, _ := newTestApp(t, Config{ConfigPath: dir})

	cfg, err := a.Resolve(context.Background())
	require.NoError(t, err)
	require.Len(t, cfg.Rules(), 3)
}
