package options

import (
	"bytes"
	"os"

	"github.com/mongodb/grip"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// ConfigEnvVar names a config file to load when no path is given
// explicitly.
const ConfigEnvVar = "TES3CONV_CONFIG"

// Config holds defaults read from a TOML file. Command line flags take
// precedence over it.
type Config struct {
	Compact   bool   `toml:"compact"`
	Overwrite bool   `toml:"overwrite"`
	Backup    Backup `toml:"backup"`
	Log       Logger `toml:"log"`
}

func (c *Config) Validate() error {
	catcher := grip.NewBasicCatcher()
	catcher.Wrap(c.Backup.Validate(), "invalid backup options")
	catcher.Wrap(c.Log.Validate(), "invalid log options")

	return catcher.Resolve()
}

// LoadConfig reads the config at path. An empty path falls back to
// $TES3CONV_CONFIG, and when that is unset too the defaults are returned.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(ConfigEnvVar)
	}

	conf := &Config{}
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "reading config")
		}

		dec := toml.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		if err := dec.Decode(conf); err != nil {
			return nil, errors.Wrapf(err, "parsing config '%s'", path)
		}
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config '%s'", path)
	}

	return conf, nil
}
