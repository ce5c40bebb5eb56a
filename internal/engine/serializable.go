package engine

import (
	"fmt"
	"sort"
)

// Serializable is implemented by built-in components that can be stored in a
// scene file. Scripts use the script registry instead.
type Serializable interface {
	Component
	TypeName() string
	Serialize() map[string]any
	Deserialize(data map[string]any)
}

var componentRegistry = map[string]func() Serializable{}

// RegisterComponent registers a built-in component type by name.
func RegisterComponent(name string, factory func() Serializable) {
	if _, exists := componentRegistry[name]; exists {
		panic(fmt.Sprintf("component %q already registered", name))
	}
	componentRegistry[name] = factory
}

// CreateComponent builds a registered component and applies data to it.
// Returns nil for unknown types.
func CreateComponent(name string, data map[string]any) Serializable {
	factory, ok := componentRegistry[name]
	if !ok {
		return nil
	}
	c := factory()
	c.Deserialize(data)
	return c
}

// GetRegisteredComponents returns the sorted names of built-in component types.
func GetRegisteredComponents() []string {
	names := make([]string, 0, len(componentRegistry))
	for name := range componentRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
