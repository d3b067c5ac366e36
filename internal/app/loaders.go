package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/bundlecfg/internal/config"
	"github.com/vk/bundlecfg/internal/hcl"
	"github.com/vk/bundlecfg/internal/yamlcfg"
)

// LoaderFor picks the config.Loader matching the build file's extension.
func LoaderFor(path string) (config.Loader, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlcfg.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported build file extension %q for %s: use .hcl, .yaml or .yml", ext, path)
	}
}
