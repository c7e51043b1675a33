// Package config loads the optional project configuration file.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"github.com/foundry-zero/dccheck/internal/report"
	"github.com/foundry-zero/dccheck/internal/semantic"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the top-level configuration.
type Config struct {
	Format   string            `toml:"format" yaml:"format"`
	Strict   bool              `toml:"strict" yaml:"strict"`
	Rules    string            `toml:"rules" yaml:"rules"`
	Disable  []string          `toml:"disable" yaml:"disable"`
	Severity map[string]string `toml:"severity" yaml:"severity"`
	Jobs     int               `toml:"jobs" yaml:"jobs"`
	Color    string            `toml:"color" yaml:"color"`
	CacheDir string            `toml:"cache_dir" yaml:"cache_dir"`
	Exclude  []string          `toml:"exclude" yaml:"exclude"`
}

// Defaults returns the configuration used when no file is found.
func Defaults() *Config {
	return &Config{
		Format: FormatText,
		Color:  ColorAuto,
		Jobs:   runtime.NumCPU(),
	}
}

// applyDefaults fills fields a file left empty.
func (c *Config) applyDefaults() {
	d := Defaults()
	if c.Format == "" {
		c.Format = d.Format
	}
	if c.Color == "" {
		c.Color = d.Color
	}
	if c.Jobs == 0 {
		c.Jobs = d.Jobs
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Format != FormatText && c.Format != FormatJSON {
		return fmt.Errorf("invalid format %q (use text or json)", c.Format)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q (use auto, always or never)", c.Color)
	}
	if c.Jobs < 0 {
		return fmt.Errorf("invalid jobs %d", c.Jobs)
	}
	if _, err := c.RuleFilter(); err != nil {
		return err
	}
	if _, err := c.SeverityOverrides(); err != nil {
		return err
	}
	return nil
}

// RuleFilter returns the enabled rule numbers: the rules selection minus
// the disabled rules. A nil result means every rule is enabled.
func (c *Config) RuleFilter() ([]int, error) {
	enabled, err := ParseRuleFilter(c.Rules)
	if err != nil {
		return nil, fmt.Errorf("invalid rules %q: %w", c.Rules, err)
	}
	for _, n := range enabled {
		if err := checkRule(n); err != nil {
			return nil, err
		}
	}
	if len(c.Disable) == 0 {
		return enabled, nil
	}

	disabled, err := ParseRuleFilter(strings.Join(c.Disable, ","))
	if err != nil {
		return nil, fmt.Errorf("invalid disable list: %w", err)
	}
	if enabled == nil {
		for _, r := range semantic.Rules {
			enabled = append(enabled, r.Number)
		}
	}
	enabled = slices.DeleteFunc(enabled, func(n int) bool {
		return slices.Contains(disabled, n)
	})
	if len(enabled) == 0 {
		return nil, errors.New("every rule is disabled")
	}
	return enabled, nil
}

// SeverityOverrides returns the configured severities keyed by rule ID.
// Keys may be written as rule IDs (DC-07) or bare numbers (7).
func (c *Config) SeverityOverrides() (map[string]report.Severity, error) {
	if len(c.Severity) == 0 {
		return nil, nil
	}
	out := make(map[string]report.Severity, len(c.Severity))
	for key, value := range c.Severity {
		n, err := ruleNumber(key)
		if err != nil {
			return nil, fmt.Errorf("invalid severity key %q: %w", key, err)
		}
		if err := checkRule(n); err != nil {
			return nil, err
		}
		sev, err := report.ParseSeverity(value)
		if err != nil {
			return nil, fmt.Errorf("invalid severity for %s: %w", key, err)
		}
		out[semantic.RuleID(n)] = sev
	}
	return out, nil
}

func checkRule(n int) error {
	if _, ok := semantic.LookupRule(semantic.RuleID(n)); !ok {
		return fmt.Errorf("unknown rule %d", n)
	}
	return nil
}

// ruleNumber parses "7", "07" or "DC-07".
func ruleNumber(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) > 3 && strings.EqualFold(s[:3], "DC-") {
		s = s[3:]
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid rule number %q", s)
	}
	return n, nil
}

// ParseRuleFilter parses a comma-separated list of rule numbers, rule IDs
// or ranges. Examples: "7,8,9", "7-9", "DC-01,5-7".
func ParseRuleFilter(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var rules []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if len(part) > 3 && strings.EqualFold(part[:3], "DC-") {
			part = part[3:]
		}
		if strings.Contains(part, "-") {
			bounds := strings.SplitN(part, "-", 2)
			lo, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
			if err != nil {
				return nil, fmt.Errorf("invalid range start %q", bounds[0])
			}
			hi, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
			if err != nil {
				return nil, fmt.Errorf("invalid range end %q", bounds[1])
			}
			if lo > hi {
				return nil, fmt.Errorf("invalid range %d-%d", lo, hi)
			}
			for i := lo; i <= hi; i++ {
				rules = append(rules, i)
			}
		} else {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid rule number %q", part)
			}
			rules = append(rules, n)
		}
	}
	return rules, nil
}
