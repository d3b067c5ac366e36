package hcl

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/bundlecfg/internal/config"
	"github.com/vk/bundlecfg/internal/ctxlog"
	"github.com/vk/bundlecfg/internal/schema"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the build file at path. Relative paths in the file are later
// resolved against the file's absolute directory.
func (l *Loader) Load(ctx context.Context, path string) (*config.Raw, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory of %s: %w", path, err)
	}
	return l.decode(ctx, file.Body, path, baseDir)
}

// Parse decodes HCL source held in memory. filename is used in diagnostics
// only; baseDir becomes the model's BaseDir.
func (l *Loader) Parse(ctx context.Context, src []byte, filename, baseDir string) (*config.Raw, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return l.decode(ctx, file.Body, filename, baseDir)
}

func (l *Loader) decode(ctx context.Context, body hcl.Body, filename, baseDir string) (*config.Raw, error) {
	logger := ctxlog.FromContext(ctx)

	var root schema.BuildFile
	if diags := gohcl.DecodeBody(body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	raw, err := l.translate(ctx, &root)
	if err != nil {
		return nil, fmt.Errorf("in %s: %w", filename, err)
	}
	raw.BaseDir = baseDir

	logger.Debug("HCL loading complete.",
		"file", filename,
		"entries", len(raw.Entries),
		"rules", len(raw.Rules),
		"no_parse", len(raw.NoParse),
		"dev_server_options", len(raw.DevServer),
	)
	return raw, nil
}
