package chart

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WriteChart writes a chart to a YAML file
func WriteChart(c *Chart, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadChart reads and validates a chart from a YAML file
func ReadChart(path string) (*Chart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Chart
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if c.Version == "" {
		c.Version = Version
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &c, nil
}
