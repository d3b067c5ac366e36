package yamlcfg

import (
	"fmt"

	"github.com/vk/bundlecfg/internal/config"
	"gopkg.in/yaml.v3"
)

// stringList accepts either a single scalar or a sequence of scalars.
type stringList []string

func (s *stringList) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			*s = nil
			return nil
		}
		*s = stringList{node.Value}
		return nil
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		*s = items
		return nil
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", node.Line)
	}
}

// entryList decodes the `entries` mapping in document order without
// rejecting repeated keys.
type entryList []config.RawEntry

func (e *entryList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: entries must be a mapping of name to sources", node.Line)
	}
	entries := make(entryList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valNode := node.Content[i], node.Content[i+1]
		if keyNode.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: entry name must be a string", keyNode.Line)
		}
		var sources stringList
		if err := sources.UnmarshalYAML(valNode); err != nil {
			return fmt.Errorf("entry %q: %w", keyNode.Value, err)
		}
		entries = append(entries, config.RawEntry{Name: keyNode.Value, Sources: []string(sources)})
	}
	*e = entries
	return nil
}
