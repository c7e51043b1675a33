package ast

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// LoadModule reads and parses a resolved-module JSON file into a Module.
func LoadModule(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}
	return ParseModule(data)
}

// ParseModule parses resolved-module JSON bytes.
func ParseModule(data []byte) (*Module, error) {
	var mod Module
	if err := json.Unmarshal(data, &mod); err != nil {
		return nil, fmt.Errorf("failed to parse module JSON: %w", err)
	}
	return &mod, nil
}
