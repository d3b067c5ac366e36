package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vk/bundlecfg/internal/config"
	"github.com/vk/bundlecfg/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// document is the top-level layout of a YAML build file.
type document struct {
	Entries   entryList      `yaml:"entries"`
	Output    output         `yaml:"output"`
	Rules     []rule         `yaml:"rules"`
	NoParse   stringList     `yaml:"no_parse"`
	DevServer map[string]any `yaml:"dev_server"`
}

type output struct {
	Path     string `yaml:"path"`
	Filename string `yaml:"filename"`
}

type rule struct {
	Test    string     `yaml:"test"`
	Exclude stringList `yaml:"exclude"`
	Use     stringList `yaml:"use"`
	Loader  string     `yaml:"loader"`
}

// Load reads and decodes the build file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Raw, error) {
	ctxlog.FromContext(ctx).Debug("YAML loader started.", "path", path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yaml: read %s: %w", path, err)
	}
	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("yaml: resolve directory of %s: %w", path, err)
	}
	return l.Parse(ctx, content, path, baseDir)
}

// Parse decodes YAML source held in memory. filename is used in errors
// only; baseDir becomes the model's BaseDir.
func (l *Loader) Parse(ctx context.Context, src []byte, filename, baseDir string) (*config.Raw, error) {
	logger := ctxlog.FromContext(ctx)
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, fmt.Errorf("yaml: %s: document is empty", filename)
	}

	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("yaml: %s: document is empty", filename)
		}
		return nil, fmt.Errorf("yaml: decode %s: %w", filename, err)
	}

	raw := &config.Raw{
		BaseDir:   baseDir,
		Entries:   []config.RawEntry(doc.Entries),
		Output:    config.RawOutput{Path: doc.Output.Path, Filename: doc.Output.Filename},
		NoParse:   []string(doc.NoParse),
		DevServer: doc.DevServer,
	}
	for _, r := range doc.Rules {
		raw.Rules = append(raw.Rules, config.RawRule{
			Test:    r.Test,
			Exclude: []string(r.Exclude),
			Use:     []string(r.Use),
			Loader:  r.Loader,
		})
	}

	logger.Debug("YAML loading complete.",
		"file", filename,
		"entries", len(raw.Entries),
		"rules", len(raw.Rules),
		"no_parse", len(raw.NoParse),
	)
	return raw, nil
}
