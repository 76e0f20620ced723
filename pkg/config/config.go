// Package config loads the terminal defaults. Base values come from a
// YAML file; a hand-edited HJSON overrides file, when present, is merged
// on top (HJSON tolerates comments and trailing commas, which suits a
// file users tweak between sessions).
package config

import (
	"fmt"
	"os"

	hjson "github.com/hjson/hjson-go/v4"
	"gopkg.in/yaml.v2"
)

// Defaults holds the session assumptions every analysis starts from,
// plus the server address.
type Defaults struct {
	DiscountRate       float64 `yaml:"discount_rate" json:"discount_rate"`               // WACC
	TerminalGrowthRate float64 `yaml:"terminal_growth_rate" json:"terminal_growth_rate"` //
	GrowthRate         float64 `yaml:"growth_rate" json:"growth_rate"`                   // FCF CAGR
	ProjectionYears    int     `yaml:"projection_years" json:"projection_years"`
	RiskFreeRate       float64 `yaml:"risk_free_rate" json:"risk_free_rate"`
	NewsLimit          int     `yaml:"news_limit" json:"news_limit"`
	ListenAddr         string  `yaml:"listen_addr" json:"listen_addr"`
}

// Builtin returns the compiled-in defaults used when no config file
// exists.
func Builtin() Defaults {
	return Defaults{
		DiscountRate:       0.09,
		TerminalGrowthRate: 0.025,
		GrowthRate:         0.05,
		ProjectionYears:    5,
		RiskFreeRate:       0.005,
		NewsLimit:          8,
		ListenAddr:         ":8080",
	}
}

// Load reads YAML defaults from path, falling back to Builtin when the
// file is absent.
func Load(path string) (Defaults, error) {
	cfg := Builtin()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyOverrides merges an HJSON overrides file over cfg. A missing file
// leaves cfg untouched.
func ApplyOverrides(cfg Defaults, path string) (Defaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read overrides %s: %w", path, err)
	}

	var raw map[string]interface{}
	if err := hjson.Unmarshal(data, &raw); err != nil {
		return cfg, fmt.Errorf("failed to parse overrides %s: %w", path, err)
	}

	if v, ok := asFloat(raw["discount_rate"]); ok {
		cfg.DiscountRate = v
	}
	if v, ok := asFloat(raw["terminal_growth_rate"]); ok {
		cfg.TerminalGrowthRate = v
	}
	if v, ok := asFloat(raw["growth_rate"]); ok {
		cfg.GrowthRate = v
	}
	if v, ok := asFloat(raw["projection_years"]); ok {
		cfg.ProjectionYears = int(v)
	}
	if v, ok := asFloat(raw["risk_free_rate"]); ok {
		cfg.RiskFreeRate = v
	}
	if v, ok := asFloat(raw["news_limit"]); ok {
		cfg.NewsLimit = int(v)
	}
	if v, ok := raw["listen_addr"].(string); ok && v != "" {
		cfg.ListenAddr = v
	}

	return cfg, nil
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
