package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Toggle is a boolean setting. It accepts YAML booleans as well as the
// quoted strings "true"/"false" used by older policy files, and is parsed
// once when the configuration is loaded.
type Toggle bool

// Enabled returns the toggle as a plain bool.
func (t Toggle) Enabled() bool {
	return bool(t)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Toggle) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: toggle must be a scalar", node.Line)
	}
	b, err := strconv.ParseBool(strings.TrimSpace(node.Value))
	if err != nil {
		return fmt.Errorf("line %d: invalid toggle %q", node.Line, node.Value)
	}
	*t = Toggle(b)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (t Toggle) MarshalYAML() (interface{}, error) {
	return bool(t), nil
}
