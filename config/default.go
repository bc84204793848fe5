package config

import (
	"bytes"
	"io"
	"os"
	"text/template"

	"github.com/pkg/errors"

	"github.com/c53mike/wuffs/log"
)

var DefaultConfig = Config{
	LogLevel: log.LevelWarn.String(),
	Buffers: BuffersConfig{
		SourceSize:    64 * 1024 * 1024,
		TokenCapacity: 131072,
	},
}

const defaultConfigTemplateText = `# jtdump Config File

# Sets the log level. Can be one of the following values:
# - error
# - warn
# - info
# - debug
# - trace
log_level = "{{.LogLevel}}"

# Configures the reusable decode buffers.
[buffers]
  # Sets the source buffer size in bytes. A JSON number is tokenized
  # whole, so the longest number in the input must fit in this buffer.
  source_size = {{.Buffers.SourceSize}}
  # Sets the token buffer capacity in records.
  token_capacity = {{.Buffers.TokenCapacity}}
`

var defaultConfigTemplate *template.Template

func GenerateDefaultConfigFile() []byte {
	buf := new(bytes.Buffer)
	if err := defaultConfigTemplate.Execute(buf, DefaultConfig); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func ReadConfigFile(path string) (*Config, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "error opening config file for reading")
	}
	defer f.Close()
	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, errors.Wrap(err, "error reading config file")
	}
	return cfg, nil
}

func WriteDefaultConfigFile(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return errors.Wrap(err, "error opening config file for writing")
	}
	defer f.Close()
	rd := bytes.NewReader(GenerateDefaultConfigFile())
	if _, err := io.Copy(f, rd); err != nil {
		return errors.Wrap(err, "error writing config file")
	}
	return nil
}

func init() {
	tmpl, err := template.New("config").Parse(defaultConfigTemplateText)
	if err != nil {
		panic(err)
	}
	defaultConfigTemplate = tmpl
}
