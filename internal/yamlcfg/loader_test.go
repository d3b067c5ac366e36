package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vk/bundlecfg/internal/config"
)

const sampleYAML = `
entries:
  app:
    - ./src/index.js
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

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "build.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0600))

	// --- Act ---
	raw, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	absDir, err := filepath.Abs(dir)
	require.NoError(t, err)

	want := &config.Raw{
		BaseDir: absDir,
		Entries: []config.RawEntry{{Name: "app", Sources: []string{"./src/index.js"}}},
		Output:  config.RawOutput{Path: "dist", Filename: "[name].js"},
		Rules: []config.RawRule{
			{Test: `\.css$`, Exclude: []string{"node_modules"}, Use: []string{"style-loader", "css-loader"}},
			{Test: `\.html$`, Exclude: []string{"node_modules"}, Loader: "file-loader?name=[name].[ext]"},
			{Test: `\.elm$`, Exclude: []string{"elm-stuff", "node_modules"}, Loader: "elm-webpack-loader?verbose=true&warn=true"},
		},
		NoParse:   []string{`\.elm$`},
		DevServer: map[string]any{"stats": map[string]any{"color": true}},
	}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Errorf("Raw mismatch (-want +got):\n%s", diff)
	}
}

func TestLoader_Parse_EntriesKeepOrderAndDuplicates(t *testing.T) {
	t.Parallel()

	src := `
entries:
  vendor: react
  app: [./a.js, ./b.js]
  app: ./c.js
`
	raw, err := NewLoader().Parse(context.Background(), []byte(src), "build.yaml", "/proj")
	require.NoError(t, err)

	want := []config.RawEntry{
		{Name: "vendor", Sources: []string{"react"}},
		{Name: "app", Sources: []string{"./a.js", "./b.js"}},
		{Name: "app", Sources: []string{"./c.js"}},
	}
	require.Equal(t, want, raw.Entries)
	require.Equal(t, "/proj", raw.BaseDir)
}

func TestLoader_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
	}{
		{name: "empty document", src: "   \n"},
		{name: "unknown field", src: "mode: production\n"},
		{name: "entries as list", src: "entries: [a, b]\n"},
		{name: "entry sources as mapping", src: "entries:\n  app:\n    src: a.js\n"},
		{name: "exclude as mapping", src: "rules:\n  - test: x\n    exclude: {a: b}\n"},
		{name: "malformed", src: "entries: [\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			raw, err := NewLoader().Parse(context.Background(), []byte(tc.src), "build.yaml", "")
			require.Nil(t, raw)
			require.Error(t, err)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
