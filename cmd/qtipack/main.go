// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the qtipack CLI.
//
// qtipack reads exam-style documents (HTML, PDF, DOCX, XLSX, plain text),
// recognizes multiple-choice questions, and writes a QTI 2.1 content
// package that learning platforms can import.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the qtipack CLI.
var rootCmd = &cobra.Command{
	Use:   "qtipack",
	Short: "Convert exam documents into QTI 2.1 quiz packages",
	Long: `qtipack converts exam-style documents into a QTI 2.1 quiz package.

Questions are recognized in numbered ("Q1.", "Question 2:"), labeled
("Question:"), or plain interrogative form, followed by lettered choices
("A)", "b.", "(C)"). Correct choices are marked with *, ✓, ✔, the word
"correct", or an "Answer: B" line after the choices.

Use convert for a single file and build for a directory tree.`,
	SilenceUsage: true,
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("config", "", "config file (default: ./qtipack.yaml or ~/.config/qtipack/qtipack.yaml)")
	f.String("log-level", "info", "log level (debug, info, warn, error)")
	f.String("log-format", "text", "log format (text, json)")
	f.Bool("no-color", false, "disable colored summary output")
}

// viperForCmd binds a command's flags, QTIPACK_* environment variables,
// and the config file to a fresh viper instance. Flag names map to config
// keys with dashes replaced by underscores ("output-dir" -> output_dir).
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(configKey(f.Name), f)
	})

	v.SetEnvPrefix("QTIPACK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("qtipack")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "qtipack"))
		}
	}
	setupLogging(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}
	return v
}

func configKey(flag string) string {
	return strings.ReplaceAll(flag, "-", "_")
}

// setupLogging installs the default slog logger from log_level and
// log_format.
func setupLogging(v *viper.Viper) {
	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log_level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log_format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
