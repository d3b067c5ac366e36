package resolver

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// Placeholders recognised in an output filename template.
const (
	PlaceholderName = "[name]"
	PlaceholderID   = "[id]"
)

// expandOutputFilenames validates the template against the entries and
// returns one expanded filename per entry, in entry order.
func expandOutputFilenames(template string, entries []EntryPoint) ([]string, error) {
	tokens := placeholderPattern.FindAllString(template, -1)
	for _, tok := range tokens {
		if tok != PlaceholderName && tok != PlaceholderID {
			return nil, &AmbiguousOutputError{Filename: template, Reason: "unsupported placeholder " + tok}
		}
	}
	switch {
	case len(tokens) > 1:
		return nil, &AmbiguousOutputError{Filename: template, Reason: "expected exactly one placeholder, found " + itoa(len(tokens))}
	case len(tokens) == 0 && len(entries) > 1:
		return nil, &AmbiguousOutputError{Filename: template, Reason: itoa(len(entries)) + " entries share one filename; add [name] or [id]"}
	}

	names := make([]string, len(entries))
	seen := make(map[string]string, len(entries))
	for i, e := range entries {
		name := strings.ReplaceAll(template, PlaceholderName, e.Name)
		name = strings.ReplaceAll(name, PlaceholderID, itoa(i))
		if other, dup := seen[name]; dup {
			return nil, &AmbiguousOutputError{Filename: template, Reason: "entries " + other + " and " + e.Name + " both resolve to " + name}
		}
		seen[name] = e.Name
		names[i] = name
	}
	return names, nil
}
