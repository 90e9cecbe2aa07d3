// SPDX-License-Identifier: EPL-2.0

package project

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry maps project names to their stores. Stores are created on
// first reference and live until deleted or the process exits.
type Registry struct {
	projects  map[string]*Store
	storeOpts []StoreOption

	mtx *sync.RWMutex
}

// NewRegistry returns an empty registry whose stores are created with opts.
func NewRegistry(opts ...StoreOption) *Registry {
	return &Registry{
		projects:  make(map[string]*Store),
		storeOpts: opts,
		mtx:       &sync.RWMutex{},
	}
}

// GetOrCreate returns the store for name, creating an empty one if needed.
func (r *Registry) GetOrCreate(name string) (*Store, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidProjectName
	}

	r.mtx.RLock()
	s, ok := r.projects[name]
	r.mtx.RUnlock()
	if ok {
		return s, nil
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if s, ok := r.projects[name]; ok {
		return s, nil
	}
	s = NewStore(name, r.storeOpts...)
	r.projects[name] = s

	return s, nil
}

// Lookup returns the store for name without creating it.
func (r *Registry) Lookup(name string) (*Store, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	s, ok := r.projects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}

	return s, nil
}

// Names returns all project names, sorted.
func (r *Registry) Names() []string {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	names := make([]string, 0, len(r.projects))
	for name := range r.projects {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

// Delete drops a project and all its layers. Inserts still in flight on
// the dropped store fail with ErrProjectNotFound.
func (r *Registry) Delete(name string) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	s, ok := r.projects[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProjectNotFound, name)
	}
	delete(r.projects, name)
	s.markDeleted()

	return nil
}
