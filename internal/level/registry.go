package level

import (
	"errors"
	"fmt"
)

// ErrLevelNotFound is returned when a level ID is not registered.
var ErrLevelNotFound = errors.New("level not found")

// Registry holds loaded level definitions and provides lookup utilities.
type Registry struct {
	levels map[string]*Def
	all    []Def
}

// NewRegistry creates a registry from loaded level definitions.
// Later definitions replace earlier ones with the same ID.
func NewRegistry(levels []Def) *Registry {
	registry := &Registry{
		levels: make(map[string]*Def),
		all:    levels,
	}
	for i := range levels {
		registry.levels[levels[i].ID] = &levels[i]
	}
	return registry
}

// LoadRegistry loads and creates a registry from the embedded level files.
func LoadRegistry() (*Registry, error) {
	levels, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	if len(levels) == 0 {
		return nil, errors.New("no levels embedded")
	}
	return NewRegistry(levels), nil
}

// MustLoadRegistry loads a registry, panicking on error.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the level definition with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *Def {
	return r.levels[id]
}

// Lookup is GetByID with an error for unknown IDs.
func (r *Registry) Lookup(id string) (*Def, error) {
	def := r.levels[id]
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrLevelNotFound, id)
	}
	return def, nil
}

// All returns all level definitions.
func (r *Registry) All() []Def {
	return r.all
}

// Count returns the number of levels in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}
