package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/quill"
	"github.com/eringen/quill/logger"
	"github.com/eringen/quill/typography"
)

var (
	cfgFile string
	debug   bool

	siteCfg    quill.SiteConfig
	logCleanup func() error
)

var rootCmd = &cobra.Command{
	Use:   "quill",
	Short: "quill - a personal blog with vertical rhythm typography",
	Long: `quill serves a markdown blog over HTTP or builds it into static files.
Every length on the page comes from one typographic rhythm, configured
under "typography" in config.yaml.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if logCleanup != nil {
			return logCleanup()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", quill.EnvOr("QUILL_CONFIG", ""), "config file (default is ./config.yaml, or $QUILL_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd, buildCmd, indexCmd, scaleCmd, newCmd, versionCmd)
}

func initialize() error {
	cfg, err := quill.LoadConfig(cfgFile)
	if err != nil {
		return err
	}
	if debug {
		cfg.Debug = true
	}
	cleanup, err := logger.Setup(logger.Config{File: cfg.LogFile, Debug: cfg.Debug})
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	siteCfg = cfg
	logCleanup = cleanup
	return nil
}

// initTypography sets up the process-wide typography from the loaded config.
func initTypography() (*typography.Typography, error) {
	t, err := typography.Initialize(siteCfg.Typography)
	if err != nil {
		return nil, fmt.Errorf("typography: %w", err)
	}
	return t, nil
}
