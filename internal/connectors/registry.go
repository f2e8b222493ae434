package connectors

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry holds the specs of all supported connector types, loaded from
// embedded YAML at startup.
type Registry struct {
	specs map[string]*ConnectorSpec
	mu    sync.RWMutex
}

// NewRegistry creates a registry and loads every embedded connector spec.
func NewRegistry() (*Registry, error) {
	r := &Registry{specs: make(map[string]*ConnectorSpec)}

	entries, err := configFiles.ReadDir("config")
	if err != nil {
		return nil, fmt.Errorf("read embedded connector specs: %w", err)
	}

	for _, entry := range entries {
		if err := r.loadSpecFile("config/" + entry.Name()); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// loadSpecFile parses one embedded YAML spec into the registry.
func (r *Registry) loadSpecFile(filename string) error {
	data, err := configFiles.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var spec ConnectorSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", filename, err)
	}
	if spec.Type == "" {
		return fmt.Errorf("connector spec %s has no type", filename)
	}

	r.mu.Lock()
	r.specs[spec.Type] = &spec
	r.mu.Unlock()

	return nil
}

// Get returns the spec for a connector type.
func (r *Registry) Get(connectorType string) (*ConnectorSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	spec, ok := r.specs[connectorType]
	if !ok {
		return nil, fmt.Errorf("unknown connector type: %s", connectorType)
	}
	return spec, nil
}

// List returns all known specs sorted by type for stable responses.
func (r *Registry) List() []*ConnectorSpec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	specs := make([]*ConnectorSpec, 0, len(r.specs))
	for _, spec := range r.specs {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Type < specs[j].Type })
	return specs
}
