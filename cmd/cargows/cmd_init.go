package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/config"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a cargows.yaml in the workspace root",
		RunE:  runInit,
	}
	cmd.Flags().String("name", "", "Workspace name")
	cmd.Flags().String("build-base", "", "Build directory relative to the workspace root")
	cmd.Flags().String("install-base", "", "Install directory relative to the workspace root")
	cmd.Flags().Int("jobs", 0, "Default number of parallel build workers")
	cmd.Flags().Bool("yes", false, "Accept defaults without prompting")
	cmd.Flags().Bool("force", false, "Overwrite an existing cargows.yaml")
	return cmd
}

func runInit(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	name, _ := cmd.Flags().GetString("name")
	buildBase, _ := cmd.Flags().GetString("build-base")
	installBase, _ := cmd.Flags().GetString("install-base")
	jobs, _ := cmd.Flags().GetInt("jobs")
	yes, _ := cmd.Flags().GetBool("yes")
	force, _ := cmd.Flags().GetBool("force")

	interactive := !yes && term.IsTerminal(int(os.Stdin.Fd()))

	path := filepath.Join(root, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		if !interactive {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		overwrite, err := promptConfirm(fmt.Sprintf("%s exists. Overwrite?", config.FileName))
		if err != nil {
			return err
		}
		if !overwrite {
			return fmt.Errorf("aborted: %s already exists", path)
		}
	}

	f := config.Default()
	if name == "" {
		name = filepath.Base(absOrSelf(root))
	}
	f.Name = name
	if buildBase != "" {
		f.BuildBase = buildBase
	}
	if installBase != "" {
		f.InstallBase = installBase
	}
	if jobs != 0 {
		f.Jobs = jobs
	}

	if interactive {
		if err := interactiveConfig(f); err != nil {
			return fmt.Errorf("interactive setup: %w", err)
		}
	}

	if err := config.Save(path, f); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Workspace config written to %s\n", path)
	return nil
}

func absOrSelf(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
