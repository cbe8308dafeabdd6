package cmd

import (
	"os"
	"strings"

	"repoyear/internal/config"
	"repoyear/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:          "repoyear",
	Short:        "Contribution calendar from local git repositories",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ~/.config/repoyear/config.toml)")
	flags.CountP("verbose", "v", "Increase log verbosity (repeatable)")
	flags.String("log-format", string(logging.FormatConsole), "Log format: console/structured")

	for _, name := range []string{"config", "verbose", "log-format"} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig 让每个绑定的参数都可以通过 REPOYEAR_* 环境变量设置，例如 REPOYEAR_LOG_FORMAT。
func initConfig() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func loadConfig() (config.Config, error) {
	return config.Load(viper.GetString("config"))
}

func saveConfig(cfg config.Config) error {
	return config.Save(viper.GetString("config"), cfg)
}

func newLogger() (*zap.Logger, error) {
	level := logging.LevelFromVerbosity(viper.GetInt("verbose"))
	return logging.New(level, logging.Format(viper.GetString("log-format")))
}
