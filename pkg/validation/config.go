package validation

import (
	"digital.vasic.validresult/pkg/logging"
)

// Config holds the settings of the validation assertions. It can
// be decoded from a plugin configuration map.
type Config struct {
	// IncidentalFields are tolerated next to error and value.
	IncidentalFields []string `mapstructure:"incidental_fields" yaml:"incidental_fields"`

	// DumpIndent indents the full result dumps embedded in
	// error assertion failures.
	DumpIndent string `mapstructure:"dump_indent" yaml:"dump_indent"`
}

// DefaultConfig returns the settings used when no option is given.
func DefaultConfig() Config {
	incidental := make([]string, len(DefaultIncidentalFields))
	copy(incidental, DefaultIncidentalFields)
	return Config{
		IncidentalFields: incidental,
		DumpIndent:       "\t",
	}
}

// Option configures Register and the Plugin.
type Option func(*options)

type options struct {
	config Config
	logger logging.Logger
}

func newOptions(opts ...Option) options {
	o := options{
		config: DefaultConfig(),
		logger: logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithIncidentalFields replaces the fields tolerated next to error
// and value.
func WithIncidentalFields(fields ...string) Option {
	return func(o *options) {
		o.config.IncidentalFields = fields
	}
}

// WithDumpIndent sets the indentation of full result dumps.
func WithDumpIndent(indent string) Option {
	return func(o *options) {
		o.config.DumpIndent = indent
	}
}

// WithLogger sets the logger told about registration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
