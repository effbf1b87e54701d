package config

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// ParseYAML reads the same settings from YAML. Sections are mappings and
// inline themes live under "themes":
//
//	theme: dark
//	annotate:
//	  stroke_color: "#00FF00"
//	themes:
//	  mine:
//	    Handle: "#112233"
func ParseYAML(r io.Reader) (*Config, error) {
	var doc map[string]any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	cfg := New()
	for _, key := range sortedKeys(doc) {
		switch v := doc[key].(type) {
		case map[string]any:
			if key == "themes" {
				if err := cfg.yamlThemes(v); err != nil {
					return nil, err
				}
				continue
			}
			for _, k := range sortedKeys(v) {
				if err := cfg.set(key, k, scalar(v[k])); err != nil {
					return nil, fmt.Errorf("error in section %s: %w", key, err)
				}
			}
		default:
			if err := cfg.set("", key, scalar(v)); err != nil {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
		}
	}
	return cfg, nil
}

func (c *Config) yamlThemes(themes map[string]any) error {
	for _, name := range sortedKeys(themes) {
		fields, ok := themes[name].(map[string]any)
		if !ok {
			return fmt.Errorf("theme %s: expected a mapping", name)
		}
		t := c.theme(name)
		for _, k := range sortedKeys(fields) {
			if err := t.Set(k, scalar(fields[k])); err != nil {
				return fmt.Errorf("theme %s: %w", name, err)
			}
		}
	}
	return nil
}

func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
