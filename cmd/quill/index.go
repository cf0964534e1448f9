package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eringen/quill"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the SQLite content index from the markdown files",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := quill.Reindex(cmd.Context(), siteCfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d posts into %s\n", n, siteCfg.IndexPath)
		return nil
	},
}
