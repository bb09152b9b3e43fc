package gitstate

import "fmt"

type ErrorKind int

const (
	// ErrStructural means a required control file or directory is missing.
	ErrStructural ErrorKind = iota
	// ErrFormat means a control file matched none of the recognized grammars.
	ErrFormat
	// ErrTransientIO means a read kept failing after the retry budget.
	ErrTransientIO
)

func (k ErrorKind) String() string {
	switch k {
	case ErrStructural:
		return "structural"
	case ErrFormat:
		return "format"
	case ErrTransientIO:
		return "transient-io"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// StateError is a fatal failure while interpreting repository metadata. It
// carries the file path and, for format errors, the offending raw content, so
// the failure can be diagnosed without re-reading the file.
type StateError struct {
	Kind ErrorKind
	Path string
	Raw  string
	Err  error
}

func (e *StateError) Error() string {
	switch {
	case e.Kind == ErrFormat && e.Raw != "":
		return fmt.Sprintf("%s error: %s: invalid content %q", e.Kind, e.Path, e.Raw)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Path)
}

func (e *StateError) Unwrap() error { return e.Err }
