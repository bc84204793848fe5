package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/c53mike/wuffs/buffer"
	"github.com/c53mike/wuffs/config"
	"github.com/c53mike/wuffs/driver"
	"github.com/c53mike/wuffs/dump"
	"github.com/c53mike/wuffs/errs"
	"github.com/c53mike/wuffs/jsontok"
	"github.com/c53mike/wuffs/log"
	"github.com/c53mike/wuffs/version"
)

var (
	flagAllTokens     bool
	flagHumanReadable bool
	flagQuirks        bool
	flagSrcBufferSize int
	flagTokenCapacity int
	flagConfigPath    string
	flagLogLevel      string
)

var rootCmd = &cobra.Command{
	Use:   "jtdump",
	Short: "Dumps the JSON tokenization of stdin in a debug format.",
	Long: `jtdump reads JSON from stdin and writes one debug record per token to
stdout: fixed 16-byte big-endian records, or one text line per token with
--human-readable. Whitespace and punctuation tokens are elided unless
--all-tokens is given; elided tokens still count toward each record's
cumulative position, so positions always reflect the raw input.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) > 0 {
			return errs.New(errs.KindArgument, `bad argument: use "jtdump < input", not "jtdump input"`)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if cmd.Flags().Changed("log-level") {
			level = flagLogLevel
		}
		logLevel, err := log.NewLevel(level)
		if err != nil {
			return errs.Newf(errs.KindArgument, "invalid log level %q", level)
		}
		log.SetLevel(logLevel)
		lgr := log.WithModule("main")

		srcSize := cfg.Buffers.SourceSize
		if cmd.Flags().Changed("src-buffer-size") {
			srcSize = flagSrcBufferSize
		}
		tokCap := cfg.Buffers.TokenCapacity
		if cmd.Flags().Changed("token-buffer-size") {
			tokCap = flagTokenCapacity
		}

		if !flagHumanReadable && isatty.IsTerminal(os.Stdout.Fd()) {
			lgr.Warn("writing binary records to a terminal", "hint", "use --human-readable")
		}

		src, err := buffer.NewSource(cmd.InOrStdin(), srcSize)
		if err != nil {
			return err
		}
		toks, err := buffer.NewTokens(tokCap)
		if err != nil {
			return err
		}

		var quirks jsontok.Quirks
		if flagQuirks {
			quirks = jsontok.AllQuirks()
		}

		out := bufio.NewWriter(cmd.OutOrStdout())
		drv := driver.New(&driver.Opts{
			Decoder: jsontok.NewDecoder(quirks),
			Source:  src,
			Tokens:  toks,
			Out: dump.NewWriter(out, dump.Options{
				AllTokens:     flagAllTokens,
				HumanReadable: flagHumanReadable,
			}),
		})

		lgr.Debug("starting dump",
			"src_buffer_size", srcSize,
			"token_buffer_size", tokCap,
			"quirks", flagQuirks)
		runErr := drv.Run()
		if err := out.Flush(); err != nil && runErr == nil {
			runErr = errors.Wrap(err, "error writing output")
		}
		lgr.Debug("dump finished", "position", drv.Position())
		return runErr
	},
}

// loadConfig reads the configured file. The default path is allowed to be
// absent; a path given explicitly is not.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := config.ExpandPath(flagConfigPath)
	if err != nil {
		return nil, err
	}
	if !cmd.Flags().Changed("config") {
		if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
			cfg := config.DefaultConfig
			return &cfg, nil
		}
	}
	return config.ReadConfigFile(path)
}

func init() {
	rootCmd.Version = version.UserAgent

	// Registering --help up front keeps the h shorthand free.
	rootCmd.PersistentFlags().Bool("help", false, "help for this command")
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", config.DefaultConfigPath, "Path to the config file.")

	rootCmd.Flags().BoolVarP(&flagAllTokens, "all-tokens", "a", false, "Emit whitespace and punctuation tokens too.")
	rootCmd.Flags().BoolVarP(&flagHumanReadable, "human-readable", "h", false, "Emit one text line per token instead of binary records.")
	rootCmd.Flags().BoolVarP(&flagQuirks, "quirks", "q", false, "Enable all JSON quirks (comments, inf/nan, extra commas and more).")
	rootCmd.Flags().IntVar(&flagSrcBufferSize, "src-buffer-size", config.DefaultConfig.Buffers.SourceSize, "Source buffer size in bytes.")
	rootCmd.Flags().IntVar(&flagTokenCapacity, "token-buffer-size", config.DefaultConfig.Buffers.TokenCapacity, "Token buffer capacity in records.")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", config.DefaultConfig.LogLevel, "Log level: error, warn, info, debug or trace.")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		msg, code := errs.Report(err)
		fmt.Fprintln(os.Stderr, msg)
		os.Exit(code)
	}
}
