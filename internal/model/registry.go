package model

import (
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/blockforge/internal/logger"
)

// ErrModelNotFound is returned by loaders for names with no model.
var ErrModelNotFound = errors.New("model: not found")

// Loader produces the model for a block or item name.
type Loader func(name string) (*Model, error)

// Registry is a lazily filled, memoized model cache. Failed lookups are
// remembered too, so a broken asset is loaded and logged only once.
// Safe for concurrent use.
type Registry struct {
	mu     sync.Mutex
	loader Loader
	models map[string]*Model
}

// NewRegistry creates a registry backed by loader. A nil loader makes the
// registry serve only models added with Put.
func NewRegistry(loader Loader) *Registry {
	return &Registry{
		loader: loader,
		models: make(map[string]*Model),
	}
}

// Model returns the model for name, loading it on first use. It returns
// nil when no model exists; callers treat that as an unresolved block.
func (r *Registry) Model(name string) *Model {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.models[name]; ok {
		return m
	}
	var m *Model
	if r.loader != nil {
		var err error
		m, err = r.loader(name)
		switch {
		case errors.Is(err, ErrModelNotFound):
			logger.Debug("no model", zap.String("name", name))
		case err != nil:
			logger.Warn("model load failed", zap.String("name", name), zap.Error(err))
		}
		if err != nil {
			m = nil
		}
	}
	r.models[name] = m
	return m
}

// Put stores a model, replacing any cached entry.
func (r *Registry) Put(name string, m *Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[name] = m
}

// Loaded returns the sorted names that resolved to a model.
func (r *Registry) Loaded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for name, m := range r.models {
		if m != nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Missing returns the sorted names that did not resolve.
func (r *Registry) Missing() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var names []string
	for name, m := range r.models {
		if m == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
