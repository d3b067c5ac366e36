package report

import (
	"sort"

	"github.com/vk/bundlecfg/internal/resolver"
)

// RuleMatcher answers first-match lookups. Both *resolver.ResolvedConfig and
// *matcher.Matcher satisfy it.
type RuleMatcher interface {
	Match(file string) (resolver.Rule, bool)
}

// View is the serializable snapshot of a resolved configuration.
type View struct {
	Entries   []EntryView     `json:"entries" yaml:"entries"`
	Output    OutputView      `json:"output" yaml:"output"`
	Rules     []RuleView      `json:"rules" yaml:"rules"`
	NoParse   []string        `json:"no_parse,omitempty" yaml:"no_parse,omitempty"`
	DevServer map[string]bool `json:"dev_server,omitempty" yaml:"dev_server,omitempty"`
	Matches   []MatchView     `json:"matches,omitempty" yaml:"matches,omitempty"`
}

type EntryView struct {
	Name    string   `json:"name" yaml:"name"`
	Sources []string `json:"sources" yaml:"sources"`
	File    string   `json:"file" yaml:"file"`
}

type OutputView struct {
	Path     string `json:"path" yaml:"path"`
	Filename string `json:"filename" yaml:"filename"`
}

type RuleView struct {
	Index        int      `json:"index" yaml:"index"`
	Test         string   `json:"test" yaml:"test"`
	Exclude      []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Transformers []string `json:"transformers" yaml:"transformers"`
}

// MatchView reports the rule governing a queried file. Rule is nil when no
// rule matches.
type MatchView struct {
	File         string   `json:"file" yaml:"file"`
	Rule         *int     `json:"rule" yaml:"rule"`
	Transformers []string `json:"transformers,omitempty" yaml:"transformers,omitempty"`
	NoParse      bool     `json:"no_parse" yaml:"no_parse"`
}

// NewView snapshots cfg. When files is non-empty each one is looked up with
// m, which defaults to cfg itself.
func NewView(cfg *resolver.ResolvedConfig, m RuleMatcher, files []string) View {
	if m == nil {
		m = cfg
	}
	outputs := cfg.OutputFiles()

	v := View{
		Output:  OutputView{Path: cfg.Output().Path, Filename: cfg.Output().Filename},
		NoParse: cfg.NoParse(),
	}
	for _, e := range cfg.Entries() {
		v.Entries = append(v.Entries, EntryView{Name: e.Name, Sources: e.Sources, File: outputs[e.Name]})
	}
	for _, r := range cfg.Rules() {
		v.Rules = append(v.Rules, ruleView(r))
	}
	if dev := cfg.DevServer(); len(dev) > 0 {
		v.DevServer = dev
	}
	for _, f := range files {
		mv := MatchView{File: f, NoParse: cfg.IsNoParse(f)}
		if r, ok := m.Match(f); ok {
			idx := r.Index
			mv.Rule = &idx
			mv.Transformers = transformerIDs(r)
		}
		v.Matches = append(v.Matches, mv)
	}
	return v
}

func ruleView(r resolver.Rule) RuleView {
	rv := RuleView{Index: r.Index, Test: r.Test.String(), Transformers: transformerIDs(r)}
	for _, ex := range r.Exclude {
		rv.Exclude = append(rv.Exclude, ex.String())
	}
	return rv
}

func transformerIDs(r resolver.Rule) []string {
	ids := make([]string, len(r.Transformers))
	for i, t := range r.Transformers {
		ids[i] = t.ID
	}
	return ids
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
