package resolver

import (
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// EntryPoint is a validated entry: a unique name and its ordered sources.
type EntryPoint struct {
	Name    string
	Sources []string
}

// OutputSpec is the resolved output directory and filename template.
type OutputSpec struct {
	Path     string
	Filename string
}

// Option is a single key/value carried in a transformer identifier's query.
type Option struct {
	Key   string
	Value string
}

// Transformer is a parsed transformer identifier such as
// "elm-webpack-loader?verbose=true&warn=true".
type Transformer struct {
	// ID is the identifier exactly as declared.
	ID      string
	Name    string
	Options []Option
}

// Option returns the value of the named option.
func (t Transformer) Option(key string) (string, bool) {
	for _, o := range t.Options {
		if o.Key == key {
			return o.Value, true
		}
	}
	return "", false
}

// Rule is a compiled transform rule. Index is its declaration position.
type Rule struct {
	Index        int
	Test         *regexp.Regexp
	Exclude      []*regexp.Regexp
	Transformers []Transformer
}

// Matches reports whether the rule governs file: the test matches and no
// exclusion does. A rule without a test matches nothing.
func (r Rule) Matches(file string) bool {
	if r.Test == nil || !r.Test.MatchString(file) {
		return false
	}
	for _, ex := range r.Exclude {
		if ex.MatchString(file) {
			return false
		}
	}
	return true
}

// TransformerNames returns the pipeline's transformer names in order.
func (r Rule) TransformerNames() []string {
	names := make([]string, len(r.Transformers))
	for i, t := range r.Transformers {
		names[i] = t.Name
	}
	return names
}

func (r Rule) clone() Rule {
	c := Rule{
		Index:        r.Index,
		Test:         r.Test,
		Exclude:      slices.Clone(r.Exclude),
		Transformers: make([]Transformer, len(r.Transformers)),
	}
	for i, t := range r.Transformers {
		t.Options = slices.Clone(t.Options)
		c.Transformers[i] = t
	}
	return c
}

// DevServerOptions maps flattened option keys (e.g. "stats.color") to flags.
type DevServerOptions map[string]bool

// Enabled reports whether key is present and true.
func (o DevServerOptions) Enabled(key string) bool {
	return o[key]
}

// ResolvedConfig is the validated, immutable result of Resolve. All
// accessors return copies.
type ResolvedConfig struct {
	entries   []EntryPoint
	output    OutputSpec
	filenames []string
	rules     []Rule
	noParse   []*regexp.Regexp
	devServer DevServerOptions
}

// Entries returns the entry points in declaration order.
func (c *ResolvedConfig) Entries() []EntryPoint {
	out := make([]EntryPoint, len(c.entries))
	for i, e := range c.entries {
		out[i] = EntryPoint{Name: e.Name, Sources: slices.Clone(e.Sources)}
	}
	return out
}

// Entry looks up an entry point by name.
func (c *ResolvedConfig) Entry(name string) (EntryPoint, bool) {
	for _, e := range c.entries {
		if e.Name == name {
			return EntryPoint{Name: e.Name, Sources: slices.Clone(e.Sources)}, true
		}
	}
	return EntryPoint{}, false
}

// Output returns the resolved output spec.
func (c *ResolvedConfig) Output() OutputSpec {
	return c.output
}

// OutputFilename returns the expanded output filename for the named entry.
func (c *ResolvedConfig) OutputFilename(entry string) (string, error) {
	for i, e := range c.entries {
		if e.Name == entry {
			return c.filenames[i], nil
		}
	}
	return "", fmt.Errorf("unknown entry %q", entry)
}

// OutputFiles maps each entry name to the full path of its emitted file.
func (c *ResolvedConfig) OutputFiles() map[string]string {
	files := make(map[string]string, len(c.entries))
	for i, e := range c.entries {
		files[e.Name] = filepath.Join(c.output.Path, c.filenames[i])
	}
	return files
}

// Rules returns the compiled rules in declaration order.
func (c *ResolvedConfig) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	for i, r := range c.rules {
		out[i] = r.clone()
	}
	return out
}

// Rule returns a copy of the rule declared at index.
func (c *ResolvedConfig) Rule(index int) (Rule, bool) {
	if index < 0 || index >= len(c.rules) {
		return Rule{}, false
	}
	return c.rules[index].clone(), true
}

// Match returns the first rule that governs file.
func (c *ResolvedConfig) Match(file string) (Rule, bool) {
	file = filepath.ToSlash(file)
	for _, r := range c.rules {
		if r.Matches(file) {
			return r.clone(), true
		}
	}
	return Rule{}, false
}

// IsNoParse reports whether file is excluded from dependency inspection.
func (c *ResolvedConfig) IsNoParse(file string) bool {
	file = filepath.ToSlash(file)
	for _, re := range c.noParse {
		if re.MatchString(file) {
			return true
		}
	}
	return false
}

// NoParse returns the no-parse pattern sources.
func (c *ResolvedConfig) NoParse() []string {
	out := make([]string, len(c.noParse))
	for i, re := range c.noParse {
		out[i] = re.String()
	}
	return out
}

// DevServer returns a copy of the dev-server option mapping.
func (c *ResolvedConfig) DevServer() DevServerOptions {
	out := make(DevServerOptions, len(c.devServer))
	for k, v := range c.devServer {
		out[k] = v
	}
	return out
}

func (c *ResolvedConfig) String() string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return fmt.Sprintf("ResolvedConfig{entries=[%s] output=%s rules=%d no_parse=%d}",
		strings.Join(names, ","), filepath.Join(c.output.Path, c.output.Filename), len(c.rules), len(c.noParse))
}
