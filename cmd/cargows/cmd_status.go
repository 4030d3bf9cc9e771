package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fbkclanna/cargows/internal/builder"
	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which hybrid packages are built into the install base",
		RunE:  runStatus,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type packageStatus struct {
	Name   string `json:"name"`
	Built  bool   `json:"built"`
	Prefix string `json:"prefix,omitempty"`
}

func runStatus(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	asJSON, _ := cmd.Flags().GetBool("json")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}
	scan, err := workspace.Scan(ctx)
	if err != nil {
		return err
	}

	var statuses []packageStatus
	for _, p := range scan.Packages {
		prefix := ctx.InstallPrefix(p.Name)
		st := packageStatus{Name: p.Name}
		if _, err := os.Stat(builder.MarkerPath(prefix, p.Name)); err == nil {
			st.Built = true
			st.Prefix = prefix
		}
		statuses = append(statuses, st)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	tbl := ui.NewTable(out, "NAME", "BUILT", "PREFIX")
	for _, st := range statuses {
		prefix := st.Prefix
		if prefix == "" {
			prefix = "-"
		}
		tbl.Row(st.Name, st.Built, prefix)
	}
	if err := tbl.Flush(); err != nil {
		return err
	}
	if len(statuses) == 0 {
		_, _ = fmt.Fprintln(out, "No hybrid packages found.")
	}
	return nil
}
