package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cargows",
		Short:   "Workspace build tool for package.xml + Cargo.toml hybrid packages",
		Version: version,
	}

	cmd.PersistentFlags().String("root", ".", "Workspace root directory")

	cmd.AddCommand(
		newInitCmd(),
		newBuildCmd(),
		newListCmd(),
		newStatusCmd(),
		newDoctorCmd(),
		newRunCmd(),
	)

	return cmd
}
