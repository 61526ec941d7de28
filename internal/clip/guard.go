package clip

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/eltomello/autopass/internal/log"
)

// Launcher starts and signals the detached clear helper. The process-based
// implementation lets the clear outlive this short-lived CLI; tests swap in
// a fake.
type Launcher interface {
	Start(delay time.Duration) (pid int, err error)
	Stop(pid int) error
	Alive(pid int) bool
}

// Guard enforces the single-pending-clear rule: arming it cancels whatever
// clear is still outstanding before scheduling its own, so at most one clear
// timer exists at a time. The pending pid lives in a handle file so later
// invocations can find it.
type Guard struct {
	dir      string
	launcher Launcher
}

// NewGuard returns a Guard keeping its handle file under dir.
func NewGuard(dir string, launcher Launcher) *Guard {
	return &Guard{dir: dir, launcher: launcher}
}

// DefaultGuard returns the process-launching Guard under the runtime dir.
func DefaultGuard() *Guard {
	return NewGuard(RuntimeDir(), execLauncher{})
}

// RuntimeDir returns where the handle file lives.
func RuntimeDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "autopass")
	}
	return filepath.Join(os.TempDir(), "autopass")
}

func (g *Guard) handlePath() string {
	return filepath.Join(g.dir, "clear.pid")
}

// Arm supersedes any pending clear and schedules a new one after delay.
func (g *Guard) Arm(ctx context.Context, delay time.Duration) error {
	l := log.FromContext(ctx)

	if pid, ok := g.pending(); ok {
		if err := g.launcher.Stop(pid); err != nil {
			l.Debug("stop pending clear", "pid", pid, "error", err)
		} else {
			l.Debug("superseded pending clear", "pid", pid)
		}
	}

	pid, err := g.launcher.Start(delay)
	if err != nil {
		return fmt.Errorf("start clear helper: %w", err)
	}

	if err := os.MkdirAll(g.dir, 0o700); err != nil {
		return fmt.Errorf("create runtime dir: %w", err)
	}
	if err := os.WriteFile(g.handlePath(), []byte(strconv.Itoa(pid)), 0o600); err != nil {
		return fmt.Errorf("write clear handle: %w", err)
	}

	l.Debug("armed clipboard clear", "pid", pid, "delay", delay)
	return nil
}

// Disarm cancels a pending clear, if any, and drops the handle file.
func (g *Guard) Disarm(ctx context.Context) {
	if pid, ok := g.pending(); ok {
		if err := g.launcher.Stop(pid); err != nil {
			log.FromContext(ctx).Debug("stop pending clear", "pid", pid, "error", err)
		}
	}
	os.Remove(g.handlePath())
}

// pending reads the handle file and reports the pid of a still-living clear
// helper. Stale or garbled handles count as no pending clear.
func (g *Guard) pending() (int, bool) {
	data, err := os.ReadFile(g.handlePath())
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	if !g.launcher.Alive(pid) {
		return 0, false
	}
	return pid, true
}

// execLauncher re-executes this binary as a detached session leader running
// the hidden clear-clipboard command.
type execLauncher struct{}

func (execLauncher) Start(delay time.Duration) (int, error) {
	exe, err := os.Executable()
	if err != nil {
		return 0, err
	}

	c := exec.Command(exe, "clear-clipboard", "--delay", delay.String())
	c.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := c.Start(); err != nil {
		return 0, err
	}

	pid := c.Process.Pid
	if err := c.Process.Release(); err != nil {
		return pid, err
	}
	return pid, nil
}

func (execLauncher) Stop(pid int) error {
	return syscall.Kill(pid, syscall.SIGTERM)
}

func (execLauncher) Alive(pid int) bool {
	return syscall.Kill(pid, 0) == nil
}

// ClearAfter waits for the delay and wipes the clipboard. It runs inside the
// detached helper; a termination signal (supersession) cancels the wait and
// leaves the clipboard alone.
func ClearAfter(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
	}

	if err := Clear(); err != nil {
		return errors.New("clear clipboard: " + err.Error())
	}
	return nil
}
