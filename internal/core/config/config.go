// Package config loads the attribute extraction configuration that drives
// the generic payload summarizer.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Attribute kinds.
const (
	KindBool        = "bool"
	KindNumber      = "number"
	KindCategorical = "categorical"
)

// AttributeSpec declares one value to extract and summarize from every
// payload. Keys may be flat names or dotted paths; ValueKey optionally
// unwraps a one-level wrapper mapping.
type AttributeSpec struct {
	Name     string   `mapstructure:"name" json:"name"`
	Keys     []string `mapstructure:"keys" json:"keys"`
	Type     string   `mapstructure:"type" json:"type"`
	ValueKey string   `mapstructure:"value_key" json:"value_key,omitempty"`
}

// Kind normalizes the declared type. Unspecified defaults to boolean;
// anything not boolean or number reads as categorical.
func (a AttributeSpec) Kind() string {
	switch strings.ToLower(a.Type) {
	case "", "bool", "boolean":
		return KindBool
	case "number":
		return KindNumber
	default:
		return KindCategorical
	}
}

// Config is the attribute configuration document.
type Config struct {
	Attributes []AttributeSpec `mapstructure:"attributes" json:"attributes"`
}

// Validate drops entries without a name or keys; they cannot produce a
// summary.
func (c *Config) Validate() {
	valid := c.Attributes[:0]
	for _, a := range c.Attributes {
		if a.Name == "" || len(a.Keys) == 0 {
			continue
		}
		valid = append(valid, a)
	}
	c.Attributes = valid
}

// Load reads the attribute configuration from an explicit file path, JSON
// or YAML by extension. An empty path means no configuration.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext == "" {
		v.SetConfigType("json")
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read attribute config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal attribute config: %w", err)
	}
	cfg.Validate()
	return &cfg, nil
}
