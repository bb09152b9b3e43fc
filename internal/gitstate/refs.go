package gitstate

import (
	"bufio"
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	packedRefLinePattern = regexp.MustCompile(`^([0-9a-fA-F]+) (\S+)$`)
	packedRefPeelPattern = regexp.MustCompile(`^\^[0-9a-fA-F]+$`)
)

// resolveRevision finds the commit hash for a local branch: a loose ref file
// wins over a packed-refs entry; absence of both is the normal unborn-branch
// condition, not an error.
func (r *Reader) resolveRevision(branch string) (string, bool, error) {
	for rel, abs := range localBranchFiles(r.refsHeadsDir) {
		if rel != branch {
			continue
		}
		content, err := r.loader.loadText(abs)
		if err != nil {
			return "", false, err
		}
		return strings.TrimSpace(content), true, nil
	}
	return r.findPackedRevision(branch)
}

// localBranchFiles yields (relative, absolute) paths for every file under the
// loose-refs root. Relative paths are slash separated and mirror branch
// names. A missing root yields nothing.
func localBranchFiles(root string) iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			rel, relErr := filepath.Rel(root, path)
			if relErr != nil {
				return nil
			}
			if !yield(filepath.ToSlash(rel), path) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

func (r *Reader) findPackedRevision(branch string) (string, bool, error) {
	path := filepath.Join(r.gitDir, packedRefsFile)
	content, err := r.loader.loadText(path)
	if err != nil {
		var serr *StateError
		if errors.As(err, &serr) && serr.Kind == ErrStructural {
			// No packed-refs file: every ref is loose.
			return "", false, nil
		}
		return "", false, err
	}
	scanner := bufio.NewScanner(strings.NewReader(content))
	for scanner.Scan() {
		if hash, ok := r.findPackedRefLine(scanner.Text(), branch); ok {
			return hash, true, nil
		}
	}
	return "", false, nil
}

// findPackedRefLine matches one packed-refs line against the requested
// branch. Comment lines and the `^<hash>` peel line below an annotated tag
// are never entries; lines matching neither pattern are logged and skipped.
// The ref name is compared by suffix, not equality, so both short and fully
// qualified requests resolve. That also means a ref whose name merely ends in
// the requested branch ("old-master" for "master") matches.
func (r *Reader) findPackedRefLine(line, branch string) (string, bool) {
	if strings.HasPrefix(line, "#") {
		return "", false
	}
	if packedRefPeelPattern.MatchString(line) {
		return "", false
	}
	m := packedRefLinePattern.FindStringSubmatch(line)
	if m == nil {
		if strings.TrimSpace(line) != "" {
			r.log.Info("skipping invalid packed-refs line", slog.String("line", line))
		}
		return "", false
	}
	if strings.HasSuffix(m[2], branch) {
		return m[1], true
	}
	return "", false
}
