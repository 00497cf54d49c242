// Package pid guards the HTTP service against a second instance on the
// same host.
package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/vitalchart/internal/errors"
)

const (
	fileName = "vitalchart.pid"
	filePerm = 0o600
)

// File is a PID file in a directory.
type File struct {
	path string
}

// New returns the PID file in dir, or in the temp directory when dir is
// empty.
func New(dir string) *File {
	if dir == "" {
		dir = os.TempDir()
	}
	return &File{path: filepath.Join(dir, fileName)}
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Write records the current process ID. It fails with ErrAlreadyRunning
// when the file names a live process. A stale or unreadable file is
// replaced.
func (f *File) Write() error {
	errFactory := errors.New()

	if pid, ok := f.read(); ok && pid != os.Getpid() && alive(pid) {
		return errFactory.WithData(ErrAlreadyRunning, struct {
			PID  int
			Path string
		}{
			PID:  pid,
			Path: f.path,
		})
	}

	if err := os.WriteFile(f.path, []byte(strconv.Itoa(os.Getpid())), filePerm); err != nil {
		return errFactory.Wrap(ErrWriteFailed, err)
	}

	return nil
}

// Remove deletes the PID file. A missing file is not an error.
func (f *File) Remove() error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.New().Wrap(ErrRemoveFailed, err)
	}
	return nil
}

func (f *File) read() (int, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func alive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
