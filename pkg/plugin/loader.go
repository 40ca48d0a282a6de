package plugin

import (
	"github.com/cockroachdb/errors"

	"digital.vasic.validresult/pkg/assertion"
)

// Loader registers and initializes plugins against one engine.
type Loader struct {
	registry *Registry
}

// NewLoader creates a new plugin loader.
func NewLoader(registry *Registry) *Loader {
	return &Loader{registry: registry}
}

// LoadAndInit registers and initializes a set of plugins.
func (l *Loader) LoadAndInit(plugins []Plugin, ctx *PluginContext) error {
	for _, p := range plugins {
		if err := l.registry.Register(p); err != nil {
			return errors.Wrap(err, "load plugin")
		}
	}
	return l.registry.InitAll(ctx)
}

// LoadOne registers and initializes a single plugin.
func (l *Loader) LoadOne(p Plugin, ctx *PluginContext) error {
	if err := l.registry.Register(p); err != nil {
		return errors.Wrap(err, "load plugin")
	}
	return l.registry.Init(p.Name(), ctx)
}

// Use builds a context for engine and loads the given plugins
// into it. It is the usual one-time bootstrap of a test suite or
// application.
func Use(engine assertion.Engine, plugins ...Plugin) error {
	if engine == nil {
		return errors.New("use plugins: engine is nil")
	}
	return NewLoader(NewRegistry()).LoadAndInit(
		plugins, &PluginContext{Engine: engine},
	)
}
