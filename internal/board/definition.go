package board

import (
	"encoding/json"
	"fmt"
	"os"
)

// Definition is the JSON form of a board registry.
type Definition struct {
	Name       string    `json:"name"`
	Image      string    `json:"image,omitempty"` // default photo file name
	PowerRail  string    `json:"power_rail"`
	GroundRail string    `json:"ground_rail"`
	Pins       []PinSpec `json:"pins"`
}

// Definition returns the registry's JSON form.
func (r *Registry) Definition() *Definition {
	return &Definition{
		Name:       r.name,
		PowerRail:  r.power,
		GroundRail: r.ground,
		Pins:       r.Pins(),
	}
}

// Registry validates the definition and builds an immutable registry.
func (d *Definition) Registry() (*Registry, error) {
	return NewRegistry(d.Name, d.PowerRail, d.GroundRail, d.Pins)
}

// Save writes the board definition to a JSON file.
func (d *Definition) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadDefinition loads a board definition from JSON.
func LoadDefinition(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var d Definition
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse board definition %s: %w", path, err)
	}
	if _, err := d.Registry(); err != nil {
		return nil, fmt.Errorf("invalid board definition: %w", err)
	}
	return &d, nil
}
