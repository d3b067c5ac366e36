package config

// Raw is the unvalidated, format-agnostic representation of a build
// configuration as declared by the user. Slice order is declaration order.
type Raw struct {
	// BaseDir is the directory that relative paths are resolved against.
	BaseDir   string
	Entries   []RawEntry
	Output    RawOutput
	Rules     []RawRule
	NoParse   []string
	DevServer map[string]any
}

// RawEntry is a named entry point and its ordered source modules.
type RawEntry struct {
	Name    string
	Sources []string
}

// RawOutput describes where bundles are emitted and how they are named.
type RawOutput struct {
	Path     string
	Filename string
}

// RawRule maps a file pattern to a transformer pipeline.
type RawRule struct {
	Test    string
	Exclude []string
	// Use is the ordered transformer list. Loader is the single-transformer
	// shorthand; a rule sets one or the other.
	Use    []string
	Loader string
}
