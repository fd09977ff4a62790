package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootCmdConfig struct {
	verbose    bool
	configFile string
	logger     *zap.Logger
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	config := &rootCmdConfig{}
	rootCmd := &cobra.Command{
		Use:   "arbor",
		Short: "arbor is a tool to grow decision trees",
		Long:  `A tool to grow decision trees from your data, cross-validate them, test them, and use them to make predictions`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			err := bindConfig(cmd, config.configFile)
			if err != nil {
				return err
			}
			config.logger, err = newLogger(config.verbose)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if config.logger != nil {
				_ = config.logger.Sync()
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "log the progress of the command to STDERR")
	rootCmd.PersistentFlags().StringVar(&(config.configFile), "config", "", "path to a YML file with values for the flags of the command")
	rootCmd.AddCommand(versionCmd(), growCmd(config), testCmd(config), predictCmd(config), crossValidateCmd(config))
	return rootCmd
}
