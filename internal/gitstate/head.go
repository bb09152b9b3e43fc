package gitstate

import (
	"log/slog"
	"regexp"
	"strings"
)

const refsHeadsPrefix = "refs/heads/"

// HEAD grammars, tried in order. The pure-hash form must be tried before the
// tolerant branch form so a detached commit is never read as a branch name.
var (
	headBranchPattern = regexp.MustCompile(`^ref: refs/heads/(\S+)$`)
	headCommitPattern = regexp.MustCompile(`^[0-9a-fA-F]+$`)
	// Not a format git writes, but a stray space or slash should not make the
	// whole repository unreadable.
	headBranchWeakPattern = regexp.MustCompile(`^ *(?:ref:)? */?refs/heads/(\S+)$`)
)

type HeadKind int

const (
	HeadBranch HeadKind = iota
	HeadDetached
)

// Head is the parsed HEAD value: either a symbolic reference to a local
// branch or a commit hash (detached). Exactly one of Branch and Hash is set.
type Head struct {
	Kind   HeadKind
	Branch string
	Hash   string
}

// parseHead interprets the raw content of the HEAD file. Surrounding
// whitespace is stripped before matching; hashes of any length are accepted
// so abbreviated forms work too.
func parseHead(raw string, log *slog.Logger) (Head, error) {
	content := strings.TrimSpace(raw)
	if m := headBranchPattern.FindStringSubmatch(content); m != nil {
		return Head{Kind: HeadBranch, Branch: m[1]}, nil
	}
	if headCommitPattern.MatchString(content) {
		return Head{Kind: HeadDetached, Hash: content}, nil
	}
	if m := headBranchWeakPattern.FindStringSubmatch(content); m != nil {
		log.Info("HEAD has non-standard format",
			slog.String("content", content),
			slog.String("branch", m[1]),
		)
		return Head{Kind: HeadBranch, Branch: m[1]}, nil
	}
	return Head{}, &StateError{Kind: ErrFormat, Raw: raw}
}
