// Package scripts is the registry of native scripts. Scripts register
// themselves in init() functions under a resource path, and the asset loader
// publishes every registered script into the game's resource storage.
package scripts

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-overworld/internal/engine"
)

var (
	funcs = make(map[string]engine.Func)
	mu    sync.RWMutex
)

// Register adds a native script under path.
// Panics if a script with the same path is already registered.
func Register(path string, fn engine.Func) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := funcs[path]; exists {
		panic(fmt.Sprintf("scripts: %q already registered", path))
	}
	funcs[path] = fn
}

// List returns the paths of all registered scripts, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]string, 0, len(funcs))
	for path := range funcs {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}

// Lookup returns the script registered under path.
func Lookup(path string) (engine.NamedFunc, error) {
	mu.RLock()
	defer mu.RUnlock()

	fn, ok := funcs[path]
	if !ok {
		return engine.NamedFunc{}, fmt.Errorf("scripts: unknown script %q", path)
	}
	return engine.NamedFunc{Name: path, Fn: fn}, nil
}
