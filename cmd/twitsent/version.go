package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tsawler/twitsent"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version and model key",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "twitsent", version, twitsent.ModelVersion())
	},
}
