package launcher

import (
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"go-desk/internal/models"
)

var ErrExecutableNotFound = errors.New("rustdesk executable not found")

// DefaultCandidates lists the well-known RustDesk install locations in
// probe order.
func DefaultCandidates() []string {
	candidates := []string{
		`C:\Program Files\RustDesk\rustdesk.exe`,
		`C:\Program Files (x86)\RustDesk\rustdesk.exe`,
	}
	if local := os.Getenv("LOCALAPPDATA"); local != "" {
		candidates = append(candidates, filepath.Join(local, "Programs", "RustDesk", "rustdesk.exe"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "AppData", "Local", "Programs", "RustDesk", "rustdesk.exe"))
	}
	return append(candidates,
		`C:\RustDesk\rustdesk.exe`,
		"/usr/bin/rustdesk",
		"/usr/local/bin/rustdesk",
		"/Applications/RustDesk.app/Contents/MacOS/RustDesk",
	)
}

// Resolve returns the first candidate that is a regular file.
func Resolve(candidates []string) (string, bool) {
	for _, p := range candidates {
		if p == "" {
			continue
		}
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, true
		}
	}
	return "", false
}

// Locate picks the executable at startup. An explicit path must itself be
// a regular file and disables probing; otherwise extra is probed before
// DefaultCandidates.
func Locate(explicit string, extra []string) (string, bool) {
	if explicit != "" {
		return Resolve([]string{explicit})
	}
	return Resolve(slices.Concat(extra, DefaultCandidates()))
}

// StartFunc starts name with args and returns without waiting for it.
type StartFunc func(name string, args ...string) error

// Option configures a Launcher.
type Option func(*Launcher)

// WithStarter replaces the process starter.
func WithStarter(start StartFunc) Option {
	return func(l *Launcher) { l.start = start }
}

// Launcher opens RustDesk against a client. The executable path is fixed
// for the lifetime of the value; empty means it was not found.
type Launcher struct {
	path   string
	logger *slog.Logger
	start  StartFunc
}

func New(path string, logger *slog.Logger, opts ...Option) *Launcher {
	l := &Launcher{
		path:   path,
		logger: logger,
		start:  startDetached,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Args builds the RustDesk command line for c.
func Args(c models.Client) []string {
	args := []string{"--connect", strings.TrimSpace(c.ConnectionID)}
	if c.Password != nil && *c.Password != "" {
		args = append(args, "--password", strings.TrimSpace(*c.Password))
	}
	return args
}

// Launch starts RustDesk for c. Failures are logged and never returned;
// the caller marks the client connected either way.
func (l *Launcher) Launch(c models.Client) {
	if l.path == "" {
		l.logger.Error("automatic connection disabled", "error", ErrExecutableNotFound, "client_id", c.ID)
		return
	}

	if err := l.start(l.path, Args(c)...); err != nil {
		l.logger.Error("failed to open rustdesk", "error", err, "path", l.path, "client_id", c.ID)
		return
	}
	l.logger.Info("rustdesk opened", "connection_id", strings.TrimSpace(c.ConnectionID), "client_id", c.ID)
}

func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child; its exit status is not inspected.
	go func() { _ = cmd.Wait() }()
	return nil
}
