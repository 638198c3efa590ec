package options

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"jselect/internal/domain"
)

// ErrEmptyValue is returned for an entry without value or id
var ErrEmptyValue = errors.New("option without value")

// List is a loaded option set, ready to hand to the engine
type List struct {
	Groups  []*domain.Group
	Options []*domain.Option
}

// entry is one element of an options file: an option, or a group with nested options.
// A plain scalar is shorthand for an option whose value and label are equal.
type entry struct {
	Value    string            `yaml:"value"`
	ID       string            `yaml:"id"`
	Label    string            `yaml:"label"`
	Text     string            `yaml:"text"`
	Selected bool              `yaml:"selected"`
	Disabled bool              `yaml:"disabled"`
	Metadata map[string]string `yaml:"metadata"`
	Group    string            `yaml:"group"`
	Options  []entry           `yaml:"options"`
}

func (e *entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		e.Value, e.Label = node.Value, node.Value
		return nil
	}
	type plain entry
	return node.Decode((*plain)(e))
}

// Load reads an options file. YAML and JSON are both accepted.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read options file: %w", err)
	}
	list, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse options %s: %w", path, err)
	}
	return list, nil
}

// Parse decodes either a sequence of entries or a mapping of value to label.
// Document order is kept in both forms.
func Parse(data []byte) (*List, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	list := &List{}
	if len(doc.Content) == 0 {
		return list, nil
	}
	root := doc.Content[0]

	switch root.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			k, v := root.Content[i], root.Content[i+1]
			list.Options = append(list.Options, &domain.Option{Value: k.Value, Label: v.Value})
		}
	case yaml.SequenceNode:
		var entries []entry
		if err := root.Decode(&entries); err != nil {
			return nil, err
		}
		for i, e := range entries {
			if err := list.add(e, "", i); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("expected a list or a mapping at line %d", root.Line)
	}
	return list, nil
}

func (l *List) add(e entry, group string, pos int) error {
	if e.Group != "" || len(e.Options) > 0 {
		if group != "" {
			return fmt.Errorf("entry %d: groups cannot be nested", pos)
		}
		g := &domain.Group{ID: "group-" + strconv.Itoa(len(l.Groups)+1), Label: e.Group}
		l.Groups = append(l.Groups, g)
		for i, child := range e.Options {
			if err := l.add(child, g.ID, i); err != nil {
				return fmt.Errorf("group %q: %w", e.Group, err)
			}
		}
		return nil
	}

	value := firstNonEmpty(e.Value, e.ID)
	if value == "" {
		return fmt.Errorf("entry %d: %w", pos, ErrEmptyValue)
	}
	l.Options = append(l.Options, &domain.Option{
		Value:    value,
		Label:    firstNonEmpty(e.Label, e.Text, value),
		Group:    group,
		Selected: e.Selected,
		Disabled: e.Disabled,
		Metadata: e.Metadata,
	})
	return nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
