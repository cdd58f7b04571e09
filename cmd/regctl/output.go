package main

import (
	"encoding/hex"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/regedit/pkg/types"
)

var (
	keyColor   = lipgloss.Color("#7D56F4")
	typeColor  = lipgloss.Color("#00D7FF")
	mutedColor = lipgloss.Color("#666666")

	keyStyle   = lipgloss.NewStyle().Bold(true).Foreground(keyColor)
	nameStyle  = lipgloss.NewStyle()
	typeStyle  = lipgloss.NewStyle().Foreground(typeColor)
	mutedStyle = lipgloss.NewStyle().Foreground(mutedColor)
)

// styled renders s with st unless color is disabled.
func styled(st lipgloss.Style, s string) string {
	if cfg.NoColor {
		return s
	}
	return st.Render(s)
}

// structured reports whether output goes through printData.
func structured() bool {
	return cfg.Output == outputJSON || cfg.Output == outputYAML
}

// printData writes v in the configured structured format.
func printData(v any) error {
	if cfg.Output == outputYAML {
		return printYAML(v)
	}
	return printJSON(v)
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printYAML outputs data as YAML
func printYAML(v any) error {
	encoder := yaml.NewEncoder(stdout)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// valueRecord is the structured form of a registry value.
type valueRecord struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty"`
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
}

func newValueRecord(name string, t types.RegType, typed bool, v types.Value) valueRecord {
	rec := valueRecord{Name: displayName(name), Kind: v.Kind().String(), Value: dataOf(v)}
	if typed {
		rec.Type = t.String()
	}
	return rec
}

// dataOf converts v for structured output. Binary data is hex encoded.
func dataOf(v types.Value) any {
	if b, ok := v.Bytes(); ok {
		return hex.EncodeToString(b)
	}
	return v.Interface()
}

// displayName labels the default value.
func displayName(name string) string {
	if name == "" {
		return "(Default)"
	}
	return name
}

// formatValue renders v for text output.
func formatValue(v types.Value) string {
	if ss, ok := v.List(); ok {
		return fmt.Sprintf("%q", ss)
	}
	return v.String()
}
