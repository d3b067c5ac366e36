// Package schema holds the gohcl-tagged structs that describe the layout of
// an HCL build file. It carries no behaviour; the hcl package translates
// these structs into the format-agnostic config.Raw model.
package schema

import "github.com/hashicorp/hcl/v2"

// Entry represents an `entry "<name>"` block.
type Entry struct {
	Name    string   `hcl:"name,label"`
	Sources []string `hcl:"sources"`
}

// Output represents the `output` block.
type Output struct {
	Path     string `hcl:"path,optional"`
	Filename string `hcl:"filename,optional"`
}

// Rule represents a `rule` block. Blocks are kept in file order.
type Rule struct {
	Test    string   `hcl:"test"`
	Exclude []string `hcl:"exclude,optional"`
	Use     []string `hcl:"use,optional"`
	Loader  string   `hcl:"loader,optional"`
}

// DevServer represents the `dev_server` block. Its attributes are free-form
// and evaluated after decoding.
type DevServer struct {
	Body hcl.Body `hcl:",remain"`
}

// BuildFile represents the top-level structure of a build file.
type BuildFile struct {
	Entries   []*Entry   `hcl:"entry,block"`
	Output    *Output    `hcl:"output,block"`
	Rules     []*Rule    `hcl:"rule,block"`
	NoParse   []string   `hcl:"no_parse,optional"`
	DevServer *DevServer `hcl:"dev_server,block"`
}
