package assertion

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// definitionFile is the on-disk structure of an assertion
// definition file (YAML or JSON).
type definitionFile struct {
	Version    string      `json:"version" yaml:"version"`
	Assertions []fileEntry `json:"assertions" yaml:"assertions"`
}

// fileEntry is either a full definition or a compact chain
// expression understood by ParseChain.
type fileEntry struct {
	Definition `yaml:",inline"`
	Chain      string `json:"chain,omitempty" yaml:"chain,omitempty"`
}

// LoadDefinitionsFromFile reads assertion definitions from a
// .yaml, .yml or .json file.
func LoadDefinitionsFromFile(path string) ([]Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(
			err, "read definitions file %s", path,
		)
	}

	format := "yaml"
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = "json"
	}

	defs, err := LoadDefinitions(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return defs, nil
}

// LoadDefinitions decodes assertion definitions. format is
// "json" or "yaml".
func LoadDefinitions(data []byte, format string) ([]Definition, error) {
	var file definitionFile

	switch format {
	case "json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(err, "parse definitions")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(err, "parse definitions")
		}
	default:
		return nil, errors.Newf("unsupported definition format %q", format)
	}

	defs := make([]Definition, 0, len(file.Assertions))
	for i, entry := range file.Assertions {
		def := entry.Definition
		if entry.Chain != "" {
			parsed, ok := ParseChain(entry.Chain)
			if !ok {
				return nil, errors.Newf(
					"assertion %d: invalid chain %q", i, entry.Chain,
				)
			}
			parsed.Target = entry.Target
			parsed.Message = entry.Message
			def = parsed
		}
		if def.Type == "" {
			return nil, errors.Newf("assertion %d: type is required", i)
		}
		defs = append(defs, def)
	}

	return defs, nil
}
