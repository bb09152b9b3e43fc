package gitstate

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	rebaseApplyDir = "rebase-apply"
	rebaseMergeDir = "rebase-merge"
	headNameFile   = "head-name"
)

// resolveRebaseBranch reports the branch being rebased, consulting the
// rebase-apply state first and the rebase-merge state second. A missing
// directory or head-name file is not an error; rebase may simply not be in
// progress, or be detectable by other means.
func (r *Reader) resolveRebaseBranch() (string, bool, error) {
	for _, dir := range []string{rebaseApplyDir, rebaseMergeDir} {
		name, ok, err := r.readRebaseHeadName(filepath.Join(r.gitDir, dir))
		if err != nil {
			return "", false, err
		}
		if ok {
			return name, true, nil
		}
	}
	return "", false, nil
}

func (r *Reader) readRebaseHeadName(dir string) (string, bool, error) {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return "", false, nil
	}
	path := filepath.Join(dir, headNameFile)
	if _, err := os.Stat(path); err != nil {
		return "", false, nil
	}
	content, err := r.loader.loadText(path)
	if err != nil {
		return "", false, err
	}
	name := strings.TrimPrefix(strings.TrimSpace(content), refsHeadsPrefix)
	return name, true, nil
}
