package main

import (
	"fmt"
	"io"
	"os/exec"
	"path/filepath"

	"github.com/fbkclanna/cargows/internal/config"
)

// execHook runs a post_build command safely (no shell expansion).
func execHook(pkgDir string, h config.Hook, out io.Writer) error {
	if len(h.Cmd) == 0 {
		return fmt.Errorf("empty cmd")
	}

	dir := pkgDir
	if h.WorkDir != "" {
		dir = filepath.Join(pkgDir, h.WorkDir)
	}

	cmd := exec.Command(h.Cmd[0], h.Cmd[1:]...) //nolint:gosec // argv comes from the workspace config
	cmd.Dir = dir
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}
