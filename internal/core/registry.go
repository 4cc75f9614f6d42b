package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	registry   = make(map[string]*Entity)
	options    = make(map[string]OptionSource)
	registryMu sync.RWMutex
)

// Register adds an entity descriptor to the registry.
// Panics if the name is taken or the descriptor is inconsistent.
func Register(e Entity) {
	if err := e.validate(); err != nil {
		panic(fmt.Sprintf("invalid entity %s: %v", e.Name, err))
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[e.Name]; exists {
		panic(fmt.Sprintf("entity already registered: %s", e.Name))
	}

	def := e
	registry[e.Name] = &def
}

// Get returns an entity descriptor by name.
// Returns false if not found.
func Get(name string) (*Entity, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	e, ok := registry[name]
	return e, ok
}

// All returns all registered entities sorted by name.
func All() []*Entity {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]*Entity, 0, len(registry))
	for _, e := range registry {
		result = append(result, e)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// EntityCount returns the number of registered entities.
func EntityCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(registry)
}

// RegisterOptions adds an option list source.
// Panics if the name is already registered.
func RegisterOptions(src OptionSource) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := options[src.Name]; exists {
		panic(fmt.Sprintf("option list already registered: %s", src.Name))
	}
	options[src.Name] = src
}

// GetOptions returns an option list source by name.
func GetOptions(name string) (OptionSource, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	src, ok := options[name]
	return src, ok
}

// OptionNames returns all registered option list names, sorted.
func OptionNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(options))
	for name := range options {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clear removes all registered entities and option lists.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[string]*Entity)
	options = make(map[string]OptionSource)
}

// validate checks that keys and search columns refer to declared fields.
func (e *Entity) validate() error {
	if e.Name == "" || e.Table == "" {
		return fmt.Errorf("name and table are required")
	}
	if len(e.Fields) == 0 {
		return fmt.Errorf("no fields declared")
	}

	seen := make(map[string]bool, len(e.Fields))
	columns := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		if f.Name == "" || f.Column == "" {
			return fmt.Errorf("field with empty name or column")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field %s", f.Name)
		}
		seen[f.Name] = true
		columns[strings.ToLower(f.Column)] = true
	}

	key, ok := e.Field(e.RecordKey)
	if !ok {
		return fmt.Errorf("record key %q is not a declared field", e.RecordKey)
	}
	if key.WriteOnly {
		return fmt.Errorf("record key %q is write-only", e.RecordKey)
	}
	for _, pk := range e.PrimaryKey {
		if !seen[pk] {
			return fmt.Errorf("primary key %q is not a declared field", pk)
		}
	}
	for _, col := range e.SearchColumns {
		if !columns[strings.ToLower(col)] {
			return fmt.Errorf("search column %q is not a declared column", col)
		}
	}
	for _, c := range e.Confirmations {
		if !seen[c.Matches] {
			return fmt.Errorf("confirmation %q matches undeclared field %q", c.Field, c.Matches)
		}
	}
	return nil
}
