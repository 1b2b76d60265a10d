package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eleven-am/squall/pkg/squall"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display Squall version and build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(squall.FullVersionInfo())
	},
}
