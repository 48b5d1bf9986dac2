package skeleton

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	Version   int                   `yaml:"version"`
	Skeletons map[string]Descriptor `yaml:"skeletons"`
}

// LoadCatalog loads a skeleton catalog from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skeleton catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("failed to parse skeleton catalog YAML: %w", err)
	}

	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported skeleton catalog version: %d", f.Version)
	}

	c := NewCatalog()
	for id, d := range f.Skeletons {
		desc := d
		c.Register(id, &desc)
	}
	return c, nil
}
