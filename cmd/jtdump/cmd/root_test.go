package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/stretchr/testify/require"

	"github.com/c53mike/wuffs/config"
	"github.com/c53mike/wuffs/errs"
)

// runDump executes the root command against input. The command is a
// package singleton whose flag values survive between executions, so every
// run passes the full flag set; later occurrences override the defaults
// given here.
func runDump(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "jtdump.toml")
	require.NoError(t, config.WriteDefaultConfigFile(cfgPath))

	base := []string{
		"--config", cfgPath,
		"--all-tokens=false",
		"--human-readable=false",
		"--quirks=false",
		"--src-buffer-size", "65536",
		"--token-buffer-size", "256",
		"--log-level", "error",
	}
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(base, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootBinaryRecord(t *testing.T) {
	out, err := runDump(t, "true")
	require.NoError(t, err)

	want := []byte{
		0x00, 0x00, 0x00, 0x00, // pos
		0x00, 0x04, // len
		0x00, 0x00, // link bits
		0x00, 0x00, 0x00, 0x00, // vmajor
		0x04,             // vbc: literal
		0x00, 0x00, 0x08, // vbd: true
	}
	require.Equal(t, want, []byte(out))
}

func TestRootHumanReadable(t *testing.T) {
	out, err := runDump(t, "  null  ", "--human-readable=true", "--all-tokens=true")
	require.NoError(t, err)

	want := "pos=0x00000000  len=0x0002  link=0b00  vbc=0:Filler...........  vbd=0x000000\n" +
		"pos=0x00000002  len=0x0004  link=0b00  vbc=4:Literal..........  vbd=0x000002\n" +
		"pos=0x00000006  len=0x0002  link=0b00  vbc=0:Filler...........  vbd=0x000000\n"
	require.Equal(t, want, out)
}

func TestRootElision(t *testing.T) {
	out, err := runDump(t, "  null  ")
	require.NoError(t, err)
	require.Equal(t, 16, len(out), "filler should be elided without --all-tokens")
}

func TestRootQuirks(t *testing.T) {
	in := "// intro\n[1, inf,]"
	_, err := runDump(t, in)
	require.Error(t, err)

	out, err := runDump(t, in, "--quirks=true", "--human-readable=true")
	require.NoError(t, err)
	require.Contains(t, out, "0:Filler")
	require.Contains(t, out, "5:Number")
}

func TestRootMalformedInput(t *testing.T) {
	_, err := runDump(t, "{")
	require.Error(t, err)
	require.Equal(t, 1, errs.ExitCode(err))
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	_, err := runDump(t, "true", "input.json")
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad argument")
	require.Equal(t, 1, errs.ExitCode(err))
}

func TestRootSmallBuffers(t *testing.T) {
	in := `{"key": ["` + strings.Repeat("v", 80) + `", -1.5e2, true, null]}`
	out, err := runDump(t, in, "--src-buffer-size", "16", "--token-buffer-size", "1")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.Zero(t, len(out)%16)
}

func TestRootDeterministic(t *testing.T) {
	in := `[{"a": 1}, {"b": [2.5, "long string to fragment"]}]`
	args := []string{"--all-tokens=true", "--src-buffer-size", "16", "--token-buffer-size", "2"}

	first, err := runDump(t, in, args...)
	require.NoError(t, err)
	second, err := runDump(t, in, args...)
	require.NoError(t, err)
	require.Equal(t, xxhash.Sum64String(first), xxhash.Sum64String(second))
}

func TestRootExplicitConfigMustExist(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader("true"))
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "nope.toml")})
	require.Error(t, rootCmd.Execute())
}

func TestInitWritesConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "jtdump.toml")
	rootCmd.SetArgs([]string{"init", "--config", cfgPath})
	require.NoError(t, rootCmd.Execute())

	_, err := os.Stat(cfgPath)
	require.NoError(t, err)
	cfg, err := config.ReadConfigFile(cfgPath)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig, *cfg)

	rootCmd.SetArgs([]string{"init", "--config", cfgPath})
	err = rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}
