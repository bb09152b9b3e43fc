// Package gitstate interprets a git repository's on-disk control metadata:
// the current state (normal, detached, merging, rebasing), the checked-out
// branch, and the current revision. It reads and parses the control files
// itself and never runs the git executable, never writes, and never caches
// between calls, so an uncoordinated external process may mutate the
// repository concurrently without corrupting the reader.
package gitstate

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkoval/gitstate-go/internal/gitstate/probe"
)

const (
	gitDirName     = ".git"
	headFileName   = "HEAD"
	packedRefsFile = "packed-refs"
	gitDirPointer  = "gitdir:"
)

// Reader answers state queries for a single repository. It holds no mutable
// state between calls and is safe for concurrent use; every query re-reads
// from disk.
type Reader struct {
	root         string
	gitDir       string
	refsHeadsDir string
	loader       *fileLoader
	probe        probe.Probe
	log          *slog.Logger
}

// Options configures a Reader. Zero values select the defaults.
type Options struct {
	// Probe detects in-progress merge and rebase operations. Defaults to
	// probe.Markers.
	Probe probe.Probe
	// Logger receives diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// Open prepares a Reader for the repository at root with default options.
func Open(root string) (*Reader, error) {
	return OpenWithOptions(root, Options{})
}

// OpenWithOptions prepares a Reader for the repository at root. It fails with
// a structural *StateError when the control directory or its HEAD file does
// not exist.
func OpenWithOptions(root string, opts Options) (*Reader, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	gitDir, err := controlDir(abs)
	if err != nil {
		return nil, err
	}
	headPath := filepath.Join(gitDir, headFileName)
	if _, err := os.Stat(headPath); err != nil {
		return nil, &StateError{Kind: ErrStructural, Path: headPath, Err: err}
	}
	p := opts.Probe
	if p == nil {
		p = probe.Markers{}
	}
	return &Reader{
		root:         abs,
		gitDir:       gitDir,
		refsHeadsDir: filepath.Join(gitDir, "refs", "heads"),
		loader:       newFileLoader(log),
		probe:        p,
		log:          log,
	}, nil
}

// Root returns the repository root the Reader was opened with.
func (r *Reader) Root() string { return r.root }

// ControlDir returns the resolved control directory.
func (r *Reader) ControlDir() string { return r.gitDir }

// controlDir locates the control directory for root. A .git file containing a
// "gitdir: <path>" pointer (linked worktrees) is followed one level.
func controlDir(root string) (string, error) {
	path := filepath.Join(root, gitDirName)
	info, err := os.Stat(path)
	if err != nil {
		return "", &StateError{Kind: ErrStructural, Path: path, Err: err}
	}
	if info.IsDir() {
		return path, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &StateError{Kind: ErrStructural, Path: path, Err: err}
	}
	content := strings.TrimSpace(string(data))
	if !strings.HasPrefix(content, gitDirPointer) {
		return "", &StateError{Kind: ErrFormat, Path: path, Raw: string(data)}
	}
	target := strings.TrimSpace(strings.TrimPrefix(content, gitDirPointer))
	if !filepath.IsAbs(target) {
		target = filepath.Join(root, target)
	}
	if info, err := os.Stat(target); err != nil || !info.IsDir() {
		return "", &StateError{Kind: ErrStructural, Path: target, Err: err}
	}
	return target, nil
}
