package config

import (
	"io"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// DefaultConfigPath is where the dumper looks for its config file when no
// --config flag is given. A missing file at this location is not an
// error; the defaults apply.
const DefaultConfigPath = "~/.jtdump.toml"

type Config struct {
	LogLevel string        `mapstructure:"log_level"`
	Buffers  BuffersConfig `mapstructure:"buffers"`
}

type BuffersConfig struct {
	SourceSize    int `mapstructure:"source_size"`
	TokenCapacity int `mapstructure:"token_capacity"`
}

// ReadConfig decodes a TOML config over the defaults, so fields absent
// from the file keep their default values.
func ReadConfig(r io.Reader) (*Config, error) {
	decoder := toml.NewDecoder(r)
	decoder.SetTagName("mapstructure")
	config := DefaultConfig
	if err := decoder.Decode(&config); err != nil {
		return nil, errors.Wrap(err, "error decoding config file")
	}
	return &config, nil
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(p string) (string, error) {
	res, err := homedir.Expand(p)
	if err != nil {
		return "", errors.Wrap(err, "error expanding config path")
	}
	return res, nil
}
