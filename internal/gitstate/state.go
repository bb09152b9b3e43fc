package gitstate

import (
	"errors"
	"fmt"
	"path/filepath"
)

type State int

const (
	StateNormal State = iota
	StateDetached
	StateMerging
	StateRebasing
)

func (s State) String() string {
	switch s {
	case StateNormal:
		return "normal"
	case StateDetached:
		return "detached"
	case StateMerging:
		return "merging"
	case StateRebasing:
		return "rebasing"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// BranchInfo names the checked-out branch. FromRebase marks a name recovered
// from rebase metadata while HEAD itself is detached.
type BranchInfo struct {
	Name       string
	FromRebase bool
}

// State classifies the repository. The merge and rebase probes are consulted
// before HEAD is parsed, so an in-progress operation is reported even while
// HEAD content is transiently unparseable.
func (r *Reader) State() (State, error) {
	if r.probe.MergeInProgress(r.gitDir) {
		return StateMerging, nil
	}
	if r.probe.RebaseInProgress(r.gitDir) {
		return StateRebasing, nil
	}
	head, err := r.readHead()
	if err != nil {
		return StateNormal, err
	}
	if head.Kind == HeadDetached {
		return StateDetached, nil
	}
	return StateNormal, nil
}

// CurrentRevision returns the hash of the current revision. ok is false when
// the checked-out branch has no commit yet (freshly initialized repository).
func (r *Reader) CurrentRevision() (revision string, ok bool, err error) {
	head, err := r.readHead()
	if err != nil {
		return "", false, err
	}
	if head.Kind == HeadDetached {
		return head.Hash, true, nil
	}
	return r.resolveRevision(head.Branch)
}

// CurrentBranch returns the checked-out branch, or the branch under rebase
// when HEAD is detached mid-rebase. ok is false for a true detached state.
func (r *Reader) CurrentBranch() (branch BranchInfo, ok bool, err error) {
	head, err := r.readHead()
	if err != nil {
		return BranchInfo{}, false, err
	}
	if head.Kind == HeadBranch {
		return BranchInfo{Name: head.Branch}, true, nil
	}
	if r.probe.RebaseInProgress(r.gitDir) {
		name, ok, err := r.resolveRebaseBranch()
		if err != nil || !ok {
			return BranchInfo{}, false, err
		}
		return BranchInfo{Name: name, FromRebase: true}, true, nil
	}
	return BranchInfo{}, false, nil
}

// Snapshot is a point-in-time view assembled from the three queries. The
// underlying files are read one after another, so fields may disagree when an
// external process mutates the repository mid-sequence.
type Snapshot struct {
	State       State
	Branch      BranchInfo
	HasBranch   bool
	Revision    string
	HasRevision bool
}

func (r *Reader) Snapshot() (Snapshot, error) {
	state, err := r.State()
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{State: state}
	snap.Branch, snap.HasBranch, err = r.CurrentBranch()
	if err != nil {
		return Snapshot{}, err
	}
	snap.Revision, snap.HasRevision, err = r.CurrentRevision()
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (r *Reader) readHead() (Head, error) {
	path := filepath.Join(r.gitDir, headFileName)
	raw, err := r.loader.loadText(path)
	if err != nil {
		return Head{}, err
	}
	head, err := parseHead(raw, r.log)
	if err != nil {
		var serr *StateError
		if errors.As(err, &serr) && serr.Path == "" {
			serr.Path = path
		}
		return Head{}, err
	}
	return head, nil
}
