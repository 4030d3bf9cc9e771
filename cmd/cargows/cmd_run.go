package main

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [--package <name>] -- <command...>",
		Short: "Run a command from the workspace root or a package directory",
		RunE:  runRun,
	}
	cmd.Flags().String("package", "", "Run in the named package's directory")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	pkgName, _ := cmd.Flags().GetString("package")

	if len(args) == 0 {
		return fmt.Errorf("usage: cargows run [--package <name>] -- <command...>")
	}

	dir := root
	if pkgName != "" {
		ctx, err := workspace.Load(root)
		if err != nil {
			return err
		}
		scan, err := workspace.Scan(ctx)
		if err != nil {
			return err
		}
		dir = ""
		for _, p := range append(scan.Packages, scan.Others...) {
			if p.Name == pkgName {
				dir = p.Dir
				break
			}
		}
		if dir == "" {
			return fmt.Errorf("package %q not found in workspace", pkgName)
		}
	}

	c := exec.Command(args[0], args[1:]...) //nolint:gosec // argv comes from the user's command line
	c.Dir = dir
	c.Stdin = os.Stdin
	c.Stdout = cmd.OutOrStdout()
	c.Stderr = cmd.ErrOrStderr()
	return c.Run()
}
