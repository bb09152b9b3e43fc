package gitstate

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
)

// ioRetries bounds how many attempts a single file read gets before the
// failure is escalated.
const ioRetries = 3

// fileLoader reads whole control files as text. The read function is a field
// so tests can simulate transient failures.
type fileLoader struct {
	readFile func(name string) ([]byte, error)
	log      *slog.Logger
}

func newFileLoader(log *slog.Logger) *fileLoader {
	return &fileLoader{readFile: os.ReadFile, log: log}
}

// loadText returns the full content of path. Transient IO failures are
// retried immediately up to ioRetries attempts; a missing file fails at once
// with a structural error. Partial content is never returned.
func (l *fileLoader) loadText(path string) (string, error) {
	var cause error
	for range ioRetries {
		data, err := l.readFile(path)
		if err == nil {
			return string(data), nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return "", &StateError{Kind: ErrStructural, Path: path, Err: err}
		}
		l.log.Info("read failed, retrying", slog.String("path", path), slog.Any("error", err))
		cause = err
	}
	return "", &StateError{Kind: ErrTransientIO, Path: path, Err: cause}
}
