package resolver

import "fmt"

// InvalidEntryError reports an entry point with an empty, malformed or
// duplicated name, or with no sources.
type InvalidEntryError struct {
	Name   string
	Index  int
	Reason string
}

func (e *InvalidEntryError) Error() string {
	if e.Index < 0 {
		return "invalid entries: " + e.Reason
	}
	return fmt.Sprintf("invalid entry %q (#%d): %s", e.Name, e.Index, e.Reason)
}

// InvalidPatternError reports a test, exclude or no-parse pattern that does
// not compile as a regular expression.
type InvalidPatternError struct {
	// Field locates the pattern, e.g. "rules[1].exclude[0]" or "no_parse[0]".
	Field   string
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q at %s: %v", e.Pattern, e.Field, e.Err)
}

func (e *InvalidPatternError) Unwrap() error { return e.Err }

// AmbiguousOutputError reports an output filename template that cannot
// produce a distinct file per entry point.
type AmbiguousOutputError struct {
	Filename string
	Reason   string
}

func (e *AmbiguousOutputError) Error() string {
	return fmt.Sprintf("ambiguous output filename %q: %s", e.Filename, e.Reason)
}

// InvalidRuleError reports a transform rule whose transformer pipeline is
// missing or malformed.
type InvalidRuleError struct {
	Index  int
	Reason string
	Err    error
}

func (e *InvalidRuleError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid rule #%d: %s: %v", e.Index, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid rule #%d: %s", e.Index, e.Reason)
}

func (e *InvalidRuleError) Unwrap() error { return e.Err }

// InvalidOptionError reports a dev-server option that is not a flag.
type InvalidOptionError struct {
	Key    string
	Value  any
	Reason string
}

func (e *InvalidOptionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid dev-server option %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("invalid dev-server option %q: expected bool, got %T", e.Key, e.Value)
}
