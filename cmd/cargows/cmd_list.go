package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/fbkclanna/cargows/internal/ui"
	"github.com/fbkclanna/cargows/internal/workspace"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List and classify packages in the workspace",
		RunE:  runList,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("all", false, "Include non-hybrid packages")
	return cmd
}

type packageInfo struct {
	Name string   `json:"name"`
	Kind string   `json:"kind"`
	Path string   `json:"path"`
	Deps []string `json:"deps,omitempty"`
}

func runList(cmd *cobra.Command, _ []string) error {
	root, _ := cmd.Flags().GetString("root")
	asJSON, _ := cmd.Flags().GetBool("json")
	all, _ := cmd.Flags().GetBool("all")

	ctx, err := workspace.Load(root)
	if err != nil {
		return err
	}
	scan, err := workspace.Scan(ctx)
	if err != nil {
		return err
	}
	for _, w := range scan.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
	}

	var infos []packageInfo
	for _, p := range scan.Packages {
		infos = append(infos, newPackageInfo(ctx, p))
	}
	if all {
		for _, p := range scan.Others {
			infos = append(infos, newPackageInfo(ctx, p))
		}
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tbl := ui.NewTable(out, "NAME", "KIND", "PATH", "DEPS")
	for _, info := range infos {
		tbl.Row(info.Name, info.Kind, info.Path, strings.Join(info.Deps, ","))
	}
	return tbl.Flush()
}

func newPackageInfo(ctx *workspace.Context, p *workspace.Package) packageInfo {
	path, err := filepath.Rel(ctx.Root, p.Dir)
	if err != nil {
		path = p.Dir
	}
	return packageInfo{Name: p.Name, Kind: string(p.Kind), Path: path, Deps: p.Deps}
}
