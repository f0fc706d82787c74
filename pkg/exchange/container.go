package exchange

import (
	"fmt"
	"sync"
)

// Container is a thread-safe registry of exchange adapters. It provides
// the lookup surface request-dispatching code resolves adapters through.
type Container struct {
	mu       sync.RWMutex
	adapters map[string]*Adapter
}

// NewContainer creates an empty adapter container.
func NewContainer() *Container {
	return &Container{
		adapters: make(map[string]*Adapter),
	}
}

// Register adds an adapter to the container under its exchange name.
// Registering the same name twice overwrites the earlier adapter.
func (c *Container) Register(a *Adapter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adapters[a.Name()] = a
}

// Get retrieves an adapter by exchange name.
// Returns an error if no adapter is registered under the given name.
func (c *Container) Get(name string) (*Adapter, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	a, exists := c.adapters[name]
	if !exists {
		return nil, fmt.Errorf("exchange %q not found", name)
	}
	return a, nil
}

// Names returns the registered exchange names.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.adapters))
	for name := range c.adapters {
		names = append(names, name)
	}
	return names
}

// Exists reports whether an adapter is registered under the given name.
func (c *Container) Exists(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.adapters[name]
	return exists
}

// Unregister removes an adapter by exchange name.
func (c *Container) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.adapters, name)
}
