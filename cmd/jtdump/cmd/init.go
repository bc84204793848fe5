package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/c53mike/wuffs/config"
	"github.com/c53mike/wuffs/errs"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Writes the default config file.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ExpandPath(flagConfigPath)
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil {
			return errs.Newf(errs.KindArgument, "config file %s already exists", path)
		}
		return config.WriteDefaultConfigFile(path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
