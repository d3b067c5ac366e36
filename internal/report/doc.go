// Package report renders a ResolvedConfig, and optionally the rules
// governing a set of files, as styled text, JSON or YAML.
package report
