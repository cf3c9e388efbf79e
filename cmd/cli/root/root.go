package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the top-level CLI command; subcommand packages attach to it.
var RootCmd = &cobra.Command{
	Use:           "students",
	Short:         "Student records CLI",
	Long:          "Command line interface for the student records API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func GetRoot() *cobra.Command {
	return RootCmd
}
