package networks

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry manages the networks a client can target
type Registry struct {
	networks map[string]Network
	mu       sync.RWMutex
}

var (
	globalRegistry     *Registry
	globalRegistryOnce sync.Once
)

// NewRegistry creates a registry holding the given networks
func NewRegistry(networks ...Network) *Registry {
	r := &Registry{networks: make(map[string]Network)}
	for _, n := range networks {
		_ = r.Register(n)
	}
	return r
}

// InitGlobalRegistry initializes the global network registry with the built-in networks
func InitGlobalRegistry() *Registry {
	globalRegistryOnce.Do(func() {
		globalRegistry = NewRegistry(Defaults()...)
	})
	return globalRegistry
}

// GetGlobalRegistry returns the global network registry (returns nil if not initialized)
func GetGlobalRegistry() *Registry {
	return globalRegistry
}

// Register registers a network (uses its lowercased name as key)
// If the network already exists it is replaced (idempotent)
func (r *Registry) Register(n Network) error {
	if n.Name == "" {
		return fmt.Errorf("network name is required")
	}
	if n.Passphrase == "" {
		return fmt.Errorf("network %s: passphrase is required", n.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.networks[strings.ToLower(n.Name)] = n
	return nil
}

// Get retrieves a network by name
func (r *Registry) Get(name string) (Network, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, exists := r.networks[strings.ToLower(name)]
	if !exists {
		return Network{}, &UnsupportedNetworkError{Network: name}
	}

	return n, nil
}

// ByPassphrase finds the network signing for passphrase
func (r *Registry) ByPassphrase(passphrase string) (Network, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, n := range r.networks {
		if n.Passphrase == passphrase {
			return n, true
		}
	}
	return Network{}, false
}

// GetSupportedNetworks returns a sorted list of all registered networks
func (r *Registry) GetSupportedNetworks() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.networks))
	for name := range r.networks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsSupported checks if a network is registered
func (r *Registry) IsSupported(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.networks[strings.ToLower(name)]
	return exists
}

// Unregister removes a network (useful for testing)
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.networks, strings.ToLower(name))
}

// ResetGlobalRegistry resets the global registry (useful for testing)
func ResetGlobalRegistry() {
	globalRegistry = nil
	globalRegistryOnce = sync.Once{}
}
