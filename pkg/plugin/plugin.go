// Package plugin installs extensions into an assertion engine.
// Registration is explicit: plugins are handed the engine they
// extend through a PluginContext instead of finding a global one.
package plugin

import (
	"sync"

	"github.com/cockroachdb/errors"

	"digital.vasic.validresult/pkg/assertion"
	"digital.vasic.validresult/pkg/logging"
)

// Plugin defines the interface for extending an assertion engine.
type Plugin interface {
	// Name returns the plugin's unique name.
	Name() string
	// Version returns the plugin's version string.
	Version() string
	// Init installs the plugin into the context's engine.
	Init(ctx *PluginContext) error
}

// PluginContext provides access to framework components during
// initialization.
type PluginContext struct {
	// Engine is the assertion engine being extended.
	Engine assertion.Engine
	// Config holds per-plugin settings keyed by plugin name.
	Config map[string]any
	// Logger receives plugin log output. Nil means discard.
	Logger logging.Logger
}

// Section returns the settings stored under name, or nil.
func (c *PluginContext) Section(name string) map[string]any {
	if c == nil || c.Config == nil {
		return nil
	}
	section, _ := c.Config[name].(map[string]any)
	return section
}

// Log returns the context logger, never nil.
func (c *PluginContext) Log() logging.Logger {
	if c == nil || c.Logger == nil {
		return logging.NullLogger{}
	}
	return c.Logger
}

// Registry manages plugin registration and initialization.
// Plugins are initialized in registration order.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
	loaded  map[string]bool
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		loaded:  make(map[string]bool),
	}
}

// Register adds a plugin to the registry.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return errors.New("plugin cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return errors.New("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return errors.Newf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a registered plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// InitAll initializes all registered plugins that haven't been
// loaded yet. It stops at the first failure.
func (r *Registry) InitAll(ctx *PluginContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		if err := r.initLocked(name, ctx); err != nil {
			return err
		}
	}
	return nil
}

// Init initializes a specific plugin by name.
func (r *Registry) Init(name string, ctx *PluginContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[name]; !ok {
		return errors.Newf("plugin %q not found", name)
	}
	return r.initLocked(name, ctx)
}

func (r *Registry) initLocked(name string, ctx *PluginContext) error {
	if r.loaded[name] {
		return nil
	}
	p := r.plugins[name]
	if err := p.Init(ctx); err != nil {
		return errors.Wrapf(err, "init plugin %q", name)
	}
	r.loaded[name] = true
	ctx.Log().Info("plugin initialized",
		logging.StringField("plugin", name),
		logging.StringField("version", p.Version()),
	)
	return nil
}

// List returns all registered plugin names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// IsLoaded checks if a plugin has been initialized.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded[name]
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
