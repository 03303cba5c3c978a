package cmd

import (
	"fmt"
	"os"

	"github.com/jensneuse/abstractlogger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// NewRootCommand returns the filefield command with all subcommands attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "filefield",
		Short:         "filefield generates file field schemas and resolves file fields",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "YAML config file providing flag values")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newResolveCommand())
	return rootCmd
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig binds the flags of cmd and merges the config file, if any.
// Flags set on the command line win over config file values.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

func newLogger(verbose bool) (abstractlogger.Logger, error) {
	if !verbose {
		logger, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		return abstractlogger.NewZapLogger(logger, abstractlogger.ErrorLevel), nil
	}

	logger, err := zap.NewDevelopmentConfig().Build()
	if err != nil {
		return nil, err
	}
	return abstractlogger.NewZapLogger(logger, abstractlogger.DebugLevel), nil
}
