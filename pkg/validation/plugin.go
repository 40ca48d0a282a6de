package validation

import (
	"github.com/cockroachdb/errors"
	"github.com/mitchellh/mapstructure"

	"digital.vasic.validresult/pkg/logging"
	"digital.vasic.validresult/pkg/plugin"
)

// PluginName is the name of the validation plugin and the key of
// its section in PluginContext.Config.
const PluginName = "validation"

// Version of the validation assertions.
const Version = "1.0.0"

// Plugin installs the validation assertions through the plugin
// registry.
type Plugin struct {
	opts []Option
}

var _ plugin.Plugin = (*Plugin)(nil)

// NewPlugin creates a Plugin. The options apply after the
// configuration section is decoded, so they take precedence.
func NewPlugin(opts ...Option) *Plugin {
	return &Plugin{opts: opts}
}

// Name implements plugin.Plugin.
func (p *Plugin) Name() string { return PluginName }

// Version implements plugin.Plugin.
func (p *Plugin) Version() string { return Version }

// Init decodes the "validation" configuration section and
// registers the assertions into the context engine.
func (p *Plugin) Init(ctx *plugin.PluginContext) error {
	if ctx == nil || ctx.Engine == nil {
		return errors.New("validation plugin needs an engine")
	}

	cfg, err := decodeConfig(ctx.Section(PluginName))
	if err != nil {
		return err
	}

	opts := append([]Option{
		WithConfig(cfg),
		WithLogger(ctx.Log().WithFields(
			logging.StringField("plugin", PluginName),
		)),
	}, p.opts...)
	return Register(ctx.Engine, opts...)
}

// decodeConfig overlays the fields set in section onto
// DefaultConfig.
func decodeConfig(section map[string]any) (Config, error) {
	cfg := DefaultConfig()
	if len(section) == 0 {
		return cfg, nil
	}

	var set Config
	if err := mapstructure.Decode(section, &set); err != nil {
		return cfg, errors.Wrap(err, "decode validation plugin config")
	}
	if _, ok := section["incidental_fields"]; ok {
		cfg.IncidentalFields = set.IncidentalFields
	}
	if _, ok := section["dump_indent"]; ok {
		cfg.DumpIndent = set.DumpIndent
	}
	return cfg, nil
}
