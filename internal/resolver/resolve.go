package resolver

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"

	"github.com/vk/bundlecfg/internal/config"
	"github.com/vk/bundlecfg/internal/ctxlog"
)

const (
	// DefaultOutputPath is used when the raw output path is empty.
	DefaultOutputPath = "dist"
	// DefaultOutputFilename is used when the raw output filename is empty.
	DefaultOutputFilename = "[name].js"
)

var entryNamePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)

// Resolve validates raw and returns the normalized, immutable configuration.
// On any validation error the returned config is nil.
func Resolve(ctx context.Context, raw *config.Raw) (*ResolvedConfig, error) {
	logger := ctxlog.FromContext(ctx)
	if raw == nil {
		return nil, errors.New("raw configuration is nil")
	}
	logger.Debug("Resolving configuration.", "base_dir", raw.BaseDir, "entries", len(raw.Entries), "rules", len(raw.Rules))

	entries, err := resolveEntries(raw.BaseDir, raw.Entries)
	if err != nil {
		return nil, err
	}
	logger.Debug("Entries validated.", "count", len(entries))

	output := OutputSpec{
		Path:     resolvePath(raw.BaseDir, raw.Output.Path),
		Filename: raw.Output.Filename,
	}
	if raw.Output.Path == "" {
		output.Path = resolvePath(raw.BaseDir, DefaultOutputPath)
	}
	if output.Filename == "" {
		output.Filename = DefaultOutputFilename
	}
	filenames, err := expandOutputFilenames(output.Filename, entries)
	if err != nil {
		return nil, err
	}
	logger.Debug("Output template validated.", "path", output.Path, "filename", output.Filename)

	rules := make([]Rule, 0, len(raw.Rules))
	for i, rr := range raw.Rules {
		rule, err := compileRule(i, rr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	logger.Debug("Rules compiled.", "count", len(rules))

	noParse, err := compilePatterns("no_parse", raw.NoParse)
	if err != nil {
		return nil, err
	}

	devServer, err := flattenDevServer(raw.DevServer)
	if err != nil {
		return nil, err
	}

	cfg := &ResolvedConfig{
		entries:   entries,
		output:    output,
		filenames: filenames,
		rules:     rules,
		noParse:   noParse,
		devServer: devServer,
	}
	logger.Debug("Configuration resolved.", "config", cfg.String())
	return cfg, nil
}

func resolveEntries(baseDir string, raw []config.RawEntry) ([]EntryPoint, error) {
	if len(raw) == 0 {
		return nil, &InvalidEntryError{Index: -1, Reason: "no entry points declared"}
	}
	seen := make(map[string]int, len(raw))
	entries := make([]EntryPoint, 0, len(raw))
	for i, re := range raw {
		switch {
		case re.Name == "":
			return nil, &InvalidEntryError{Index: i, Reason: "name is empty"}
		case !entryNamePattern.MatchString(re.Name):
			return nil, &InvalidEntryError{Name: re.Name, Index: i, Reason: "name is not a valid identifier"}
		}
		if first, dup := seen[re.Name]; dup {
			return nil, &InvalidEntryError{Name: re.Name, Index: i, Reason: "duplicates entry #" + itoa(first)}
		}
		seen[re.Name] = i

		if len(re.Sources) == 0 {
			return nil, &InvalidEntryError{Name: re.Name, Index: i, Reason: "no sources"}
		}
		sources := make([]string, len(re.Sources))
		for j, src := range re.Sources {
			if src == "" {
				return nil, &InvalidEntryError{Name: re.Name, Index: i, Reason: "source #" + itoa(j) + " is empty"}
			}
			sources[j] = resolvePath(baseDir, src)
		}
		entries = append(entries, EntryPoint{Name: re.Name, Sources: sources})
	}
	return entries, nil
}

func compileRule(index int, rr config.RawRule) (Rule, error) {
	field := "rules[" + itoa(index) + "]"
	if rr.Test == "" {
		return Rule{}, &InvalidPatternError{Field: field + ".test", Err: errors.New("pattern is empty")}
	}
	test, err := regexp.Compile(rr.Test)
	if err != nil {
		return Rule{}, &InvalidPatternError{Field: field + ".test", Pattern: rr.Test, Err: err}
	}
	exclude, err := compilePatterns(field+".exclude", rr.Exclude)
	if err != nil {
		return Rule{}, err
	}

	ids := rr.Use
	switch {
	case len(rr.Use) > 0 && rr.Loader != "":
		return Rule{}, &InvalidRuleError{Index: index, Reason: "both use and loader are set"}
	case rr.Loader != "":
		ids = []string{rr.Loader}
	case len(rr.Use) == 0:
		return Rule{}, &InvalidRuleError{Index: index, Reason: "no transformers declared"}
	}

	transformers := make([]Transformer, len(ids))
	for i, id := range ids {
		t, err := ParseTransformer(id)
		if err != nil {
			return Rule{}, &InvalidRuleError{Index: index, Reason: "transformer #" + itoa(i), Err: err}
		}
		transformers[i] = t
	}

	return Rule{
		Index:        index,
		Test:         test,
		Exclude:      exclude,
		Transformers: transformers,
	}, nil
}

func compilePatterns(field string, patterns []string) ([]*regexp.Regexp, error) {
	if len(patterns) == 0 {
		return nil, nil
	}
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		loc := field + "[" + itoa(i) + "]"
		if p == "" {
			return nil, &InvalidPatternError{Field: loc, Err: errors.New("pattern is empty")}
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, &InvalidPatternError{Field: loc, Pattern: p, Err: err}
		}
		out[i] = re
	}
	return out, nil
}

// resolvePath cleans p and, when it is relative, joins it onto baseDir.
func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return filepath.Clean(p)
	}
	return filepath.Join(baseDir, p)
}
