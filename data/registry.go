package data

import (
	"errors"
	"fmt"
)

// ScenarioRegistry holds the loaded scenario definitions and provides
// lookup by ID.
type ScenarioRegistry struct {
	scenarios []ScenarioDef
}

// NewScenarioRegistry creates a registry from scenario definitions.
func NewScenarioRegistry(scenarios []ScenarioDef) *ScenarioRegistry {
	return &ScenarioRegistry{scenarios: scenarios}
}

// LoadScenarioRegistry loads and validates the embedded scenarios.json.
func LoadScenarioRegistry() (*ScenarioRegistry, error) {
	scenarios, err := LoadScenarios()
	if err != nil {
		return nil, err
	}
	if len(scenarios) == 0 {
		return nil, errors.New("no scenarios loaded from scenarios.json")
	}

	seen := make(map[string]bool, len(scenarios))
	for i := range scenarios {
		if err := scenarios[i].Validate(); err != nil {
			return nil, err
		}
		if seen[scenarios[i].ID] {
			return nil, fmt.Errorf("duplicate scenario id %q", scenarios[i].ID)
		}
		seen[scenarios[i].ID] = true
	}
	return NewScenarioRegistry(scenarios), nil
}

// MustLoadScenarioRegistry loads the registry, panicking on error.
func MustLoadScenarioRegistry() *ScenarioRegistry {
	registry, err := LoadScenarioRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the scenario with the given ID, or nil if not found.
func (r *ScenarioRegistry) GetByID(id string) *ScenarioDef {
	for i := range r.scenarios {
		if r.scenarios[i].ID == id {
			return &r.scenarios[i]
		}
	}
	return nil
}

// All returns all scenario definitions.
func (r *ScenarioRegistry) All() []ScenarioDef {
	return r.scenarios
}

// IDs returns the scenario IDs in file order.
func (r *ScenarioRegistry) IDs() []string {
	ids := make([]string, len(r.scenarios))
	for i := range r.scenarios {
		ids[i] = r.scenarios[i].ID
	}
	return ids
}

// Count returns the number of loaded scenarios.
func (r *ScenarioRegistry) Count() int {
	return len(r.scenarios)
}
