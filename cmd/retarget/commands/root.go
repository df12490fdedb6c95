// Package commands provides the CLI commands for the retarget tool.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"retarget/internal/diag"
)

var (
	cfgFile string
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "retarget",
	Short: "Message replacement and polyfill rewriting for JS program trees",
	Long: `retarget runs localization and feature-targeting passes over parsed
program trees:

  retarget rewrite    Replace message definitions with bundle translations
  retarget polyfills  Inject required polyfill libraries and prune satisfied ones
  retarget version    Print version information

Trees are read and written in the s-expression fixture form produced by the
frontend.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./retarget.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(polyfillsCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("retarget")
	}
	viper.SetEnvPrefix("RETARGET")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()

	initLogger()
}

func initLogger() {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if level, err := zap.ParseAtomicLevel(viper.GetString("log-level")); err == nil {
		cfg.Level = level
	}
	var err error
	logger, err = cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
}

// logDiagnostics surfaces collected findings. Disabled-by-default types are
// only visible at debug level.
func logDiagnostics(c *diag.Collector) {
	for _, d := range c.Diagnostics {
		fields := []zap.Field{zap.String("check", d.Type.Key)}
		switch d.Type.Severity {
		case diag.Error:
			logger.Error(d.Message(), fields...)
		case diag.Warning:
			logger.Warn(d.Message(), fields...)
		case diag.Off:
			logger.Debug(d.Message(), fields...)
		}
	}
	if n := len(c.ChangedScopes); n > 0 {
		logger.Debug("structural changes applied", zap.Int("scopes", n))
	}
}

func writeTree(path, rendered string) error {
	if path == "" {
		fmt.Println(rendered)
		return nil
	}
	return os.WriteFile(path, []byte(rendered+"\n"), 0644)
}
