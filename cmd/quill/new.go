package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eringen/quill/scaffold"
)

var newCmd = &cobra.Command{
	Use:     "new <name>",
	Short:   "Create a new quill site",
	Example: "  quill new myblog\n  quill new ~/sites/notes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		data := scaffold.NewData(name, time.Now())
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "Creating new quill site: %s\n\n", name)
		created, err := scaffold.Create(name, data)
		for _, path := range created {
			fmt.Fprintf(out, "  created %s\n", path)
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintln(out, "Done! Next steps:")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  cd %s\n", name)
		fmt.Fprintln(out, "  quill serve --watch")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Edit config.yaml to set your name, bio and typography.")
		return nil
	},
}
