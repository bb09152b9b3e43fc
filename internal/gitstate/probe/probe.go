// Package probe detects in-progress merge and rebase operations by the
// marker files git leaves in the control directory.
package probe

import (
	"os"
	"path/filepath"
)

// Probe reports whether a merge or rebase is underway. Both methods take the
// repository's control directory.
//
// The default implementation checks on-disk markers, but the interface allows
// callers with richer knowledge (e.g. a tool driving the operation itself) to
// plug in their own detection.
type Probe interface {
	MergeInProgress(gitDir string) bool
	RebaseInProgress(gitDir string) bool
}

// Markers is the marker-file Probe: MERGE_HEAD for merges, the rebase-apply
// or rebase-merge directory for rebases.
type Markers struct{}

func (Markers) MergeInProgress(gitDir string) bool {
	info, err := os.Stat(filepath.Join(gitDir, "MERGE_HEAD"))
	return err == nil && !info.IsDir()
}

func (Markers) RebaseInProgress(gitDir string) bool {
	for _, dir := range []string{"rebase-apply", "rebase-merge"} {
		if info, err := os.Stat(filepath.Join(gitDir, dir)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}
