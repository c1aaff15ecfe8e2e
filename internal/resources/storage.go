// Package resources holds the game's global, read-mostly resources
// (room templates, scripts, dialogs) keyed by string path.
// Every Go type gets its own namespace, so a room and a script may share a path.
package resources

import (
	"fmt"
	"reflect"
	"sort"
)

// NotFoundError is returned when no resource of the requested type exists
// under the given name.
type NotFoundError struct {
	Name string
	Type string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resources: %s %q does not exist", e.Type, e.Name)
}

// Storage maps (type, name) pairs to resources.
// Storage is filled once at startup and then only read; it is not safe for
// concurrent writers.
type Storage struct {
	byType map[reflect.Type]map[string]any
}

// NewStorage creates an empty storage.
func NewStorage() *Storage {
	return &Storage{byType: make(map[reflect.Type]map[string]any)}
}

// Put registers a resource of type T under name.
// Panics if a resource of the same type is already registered under that name.
func Put[T any](s *Storage, name string, resource T) {
	t := reflect.TypeFor[T]()
	m, ok := s.byType[t]
	if !ok {
		m = make(map[string]any)
		s.byType[t] = m
	}
	if _, exists := m[name]; exists {
		panic(fmt.Sprintf("resources: duplicate %s %q", t, name))
	}
	m[name] = resource
}

// Get returns the resource of type T registered under name.
func Get[T any](s *Storage, name string) (T, error) {
	var zero T
	t := reflect.TypeFor[T]()
	v, ok := s.byType[t][name]
	if !ok {
		return zero, &NotFoundError{Name: name, Type: t.String()}
	}
	return v.(T), nil
}

// MustGet is like Get but panics when the resource is missing.
// Use it for resources the code itself refers to by constant name.
func MustGet[T any](s *Storage, name string) T {
	v, err := Get[T](s, name)
	if err != nil {
		panic(err)
	}
	return v
}

// Has reports whether a resource of type T exists under name.
func Has[T any](s *Storage, name string) bool {
	_, ok := s.byType[reflect.TypeFor[T]()][name]
	return ok
}

// Names returns the sorted names of all resources of type T.
func Names[T any](s *Storage) []string {
	m := s.byType[reflect.TypeFor[T]()]
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
