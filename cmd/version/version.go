package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/driftloom/photofs/pkg/version"
)

// New creates a new `version` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of photofs",
		Run: func(_ *cobra.Command, args []string) {
			fmt.Printf("photofs version %s\n", version.Version)
		},
	}
}
