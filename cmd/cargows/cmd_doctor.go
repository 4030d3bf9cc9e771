package main

import (
	"fmt"

	"github.com/fbkclanna/cargows/internal/cargo"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment for common issues",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	root, _ := cmd.Flags().GetString("root")
	ctx, loadErr := workspace.Load(root)
	exe := cargo.DefaultExecutable
	if loadErr == nil {
		exe = ctx.Config.Cargo
	}

	// Check cargo.
	fmt.Fprintf(out, "Checking %s... ", exe)
	if !cargo.IsInstalled(exe) {
		fmt.Fprintln(out, "NOT FOUND")
		fmt.Fprintln(out, "  cargo is required. Install it from https://rustup.rs/")
		ok = false
	} else {
		ver, err := cargo.Version(exe)
		if err != nil {
			fmt.Fprintln(out, "ERROR")
			ok = false
		} else {
			fmt.Fprintln(out, ver)
		}

		// Check the ament-build subcommand.
		fmt.Fprintf(out, "Checking %s %s... ", exe, cargo.DefaultSubcommand)
		if cargo.HasSubcommand(exe, cargo.DefaultSubcommand) {
			fmt.Fprintln(out, "OK")
		} else {
			fmt.Fprintln(out, "NOT FOUND")
			fmt.Fprintln(out, "  install it with: cargo install cargo-ament-build")
			ok = false
		}
	}

	// Check workspace if in a workspace dir.
	if loadErr != nil {
		fmt.Fprintf(out, "Workspace config: %v\n", loadErr)
		ok = false
	} else {
		scan, err := workspace.Scan(ctx)
		if err != nil {
			fmt.Fprintf(out, "Workspace scan failed: %v\n", err)
			ok = false
		} else {
			fmt.Fprintf(out, "Workspace: %s (%d hybrid packages)\n", ctx.Root, len(scan.Packages))
			for _, w := range scan.Warnings {
				fmt.Fprintf(out, "  Warning: %s\n", w)
			}
		}
	}

	if ok {
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}
