package atn

import (
	"sync"

	"github.com/cnf/structhash"
)

// Registry caches deserialized automata. Every distinct table is deserialized
// exactly once; lexers loading the same table share a single ATN.
// A Registry is safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	tables map[string]*ATN
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tables: make(map[string]*ATN)}
}

var defaultRegistry *Registry
var registryOnce sync.Once

// DefaultRegistry returns a process-wide registry, created on first use.
func DefaultRegistry() *Registry {
	registryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Load returns the ATN for a serialized table, deserializing it if it has
// not been loaded before. Errors are not cached.
func (reg *Registry) Load(data []uint16) (*ATN, error) {
	key, err := fingerprint(data)
	if err != nil {
		return nil, err
	}
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if a, ok := reg.tables[key]; ok {
		tracer().Debugf("registry hit for table %s", key)
		return a, nil
	}
	a, err := Deserialize(data)
	if err != nil {
		return nil, err
	}
	reg.tables[key] = a
	return a, nil
}

// LoadBytes is Load for big-endian code units.
func (reg *Registry) LoadBytes(b []byte) (*ATN, error) {
	data, err := unitsFromBytes(b)
	if err != nil {
		return nil, err
	}
	return reg.Load(data)
}

// Len returns the number of tables loaded.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.tables)
}

// tableKey is the structure hashed to identify a serialized table.
type tableKey struct {
	Version int
	Units   []uint16
}

func fingerprint(data []uint16) (string, error) {
	return structhash.Hash(tableKey{Version: SerializedVersion, Units: data}, 1)
}
