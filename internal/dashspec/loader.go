package dashspec

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse decodes a candidate spec from JSON.
func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse spec JSON: %w", err)
	}
	return &s, nil
}

// Load reads and parses a candidate spec from a JSON file.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	return Parse(data)
}
