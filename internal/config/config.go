// Package config loads the witness tool configuration file.
//
// The file is TOML. Its [metadata] table supplies graph-level metadata that
// convert writes into every witness it exports:
//
//	[metadata]
//	producer = "CBMC 6.4"
//	specification = "CHECK( init(main()), LTL(G ! call(reach_error())) )"
//	architecture = "64bit"
//	sourcecodelang = "C"
//	witness-type = "violation_witness"
//
// Lookup order: an explicit path, then $WITNESS_CONFIG, then
// $XDG_CONFIG_HOME/witness/witness.toml (or ~/.config/witness/witness.toml).
// A missing default file is not an error; a missing explicit file is.
package config

import (
	"errors"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/witness/pkg/errors"
	"github.com/matzehuels/witness/pkg/witness"
)

const (
	appName  = "witness"
	fileName = "witness.toml"

	// EnvPath overrides the default config location.
	EnvPath = "WITNESS_CONFIG"
)

// Metadata is the [metadata] table.
type Metadata struct {
	Producer       string `toml:"producer"`
	Specification  string `toml:"specification"`
	Architecture   string `toml:"architecture"`
	SourceCodeLang string `toml:"sourcecodelang"`
	WitnessType    string `toml:"witness-type"`
}

// Config is the decoded configuration file.
type Config struct {
	Metadata Metadata `toml:"metadata"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

// KeyValues returns the non-empty metadata fields keyed by their witness
// graph key.
func (m Metadata) KeyValues() map[string]string {
	kv := map[string]string{
		witness.KeyProducer:       m.Producer,
		witness.KeySpecification:  m.Specification,
		witness.KeyArchitecture:   m.Architecture,
		witness.KeySourceCodeLang: m.SourceCodeLang,
		witness.KeyWitnessType:    m.WitnessType,
	}
	maps.DeleteFunc(kv, func(_, v string) bool { return v == "" })
	return kv
}

// Apply writes the configured metadata into g, overwriting existing entries.
func (c *Config) Apply(g *witness.Graph) {
	maps.Copy(g.KeyValues, c.Metadata.KeyValues())
}

// Load reads the configuration. An empty path falls back to $WITNESS_CONFIG
// and then the XDG location; if none exists Load returns an empty Config.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = os.Getenv(EnvPath)
		explicit = path != ""
	}
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return &Config{}, nil
		}
		path = filepath.Join(dir, fileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return parse(path, data)
}

func parse(path string, data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path
	return &cfg, nil
}

// configDir returns the config directory using XDG standard (~/.config/witness/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
