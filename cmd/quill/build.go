package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eringen/quill"
)

var buildOut string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the blog into static files",
	RunE: func(cmd *cobra.Command, args []string) error {
		typo, err := initTypography()
		if err != nil {
			return err
		}
		cfg := siteCfg
		if buildOut != "" {
			cfg.OutputDir = buildOut
		}

		src, err := quill.OpenSource(cfg)
		if err != nil {
			return err
		}
		if c, ok := src.(io.Closer); ok {
			defer c.Close()
		}

		stats, err := quill.Build(cmd.Context(), cfg, src, typo)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Built %d posts, %d thumbnails, %d static files into %s\n",
			stats.Posts, stats.Thumbnails, stats.Assets, cfg.OutputDir)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOut, "out", "o", "", "output directory (overrides config)")
}
