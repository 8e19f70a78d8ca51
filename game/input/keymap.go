// Package input maps raw key identifiers to engine directions.
package input

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/wricardo/prims-maze/game/engine"
)

var ErrUnknownKey = errors.New("unknown key")

// Keymap binds many raw keys to each direction.
type Keymap struct {
	bindings map[string]engine.Direction
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{bindings: make(map[string]engine.Direction)}
}

// DefaultKeymap binds WASD, the arrow keys (browser and short names), the
// canonical direction names and vi keys.
func DefaultKeymap() *Keymap {
	k := NewKeymap()
	k.Bind(engine.Up, "w", "ArrowUp", "up", "k")
	k.Bind(engine.Down, "s", "ArrowDown", "down", "j")
	k.Bind(engine.Left, "a", "ArrowLeft", "left", "h")
	k.Bind(engine.Right, "d", "ArrowRight", "right", "l")
	return k
}

// Bind aliases keys to dir. Rebinding a key replaces its direction.
func (k *Keymap) Bind(dir engine.Direction, keys ...string) {
	for _, key := range keys {
		k.bindings[normalize(key)] = dir
	}
}

// Resolve returns the direction bound to key. Matching ignores case.
func (k *Keymap) Resolve(key string) (engine.Direction, bool) {
	dir, ok := k.bindings[normalize(key)]
	return dir, ok
}

// Parse resolves key and reports unbound keys as ErrUnknownKey.
func (k *Keymap) Parse(key string) (engine.Direction, error) {
	dir, ok := k.Resolve(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return dir, nil
}

// Keys lists every bound key, sorted.
func (k *Keymap) Keys() []string {
	keys := make([]string, 0, len(k.bindings))
	for key := range k.bindings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Bindings groups bound keys by direction name.
func (k *Keymap) Bindings() map[string][]string {
	out := make(map[string][]string, len(engine.Directions))
	for _, key := range k.Keys() {
		dir := k.bindings[key].String()
		out[dir] = append(out[dir], key)
	}
	return out
}

func normalize(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
