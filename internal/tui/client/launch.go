package client

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// DaemonBinary is the executable started when no daemon answers.
const DaemonBinary = "hrd"

// Probe checks that a daemon is running and answering on the socket.
func Probe(socketPath string) bool {
	c, err := New(socketPath)
	if err != nil {
		return false
	}
	defer func() { _ = c.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err = c.Status(ctx)
	return err == nil
}

// StartDaemon launches the daemon for a profile in the background. The
// binary next to the running executable wins over one on PATH.
func StartDaemon(profileName string, stderr io.Writer) error {
	bin := DaemonBinary
	if executable, err := os.Executable(); err == nil {
		sibling := filepath.Join(filepath.Dir(executable), DaemonBinary)
		if _, err := os.Stat(sibling); err == nil {
			bin = sibling
		}
	}

	cmd := exec.Command(bin, "--profile", profileName)
	cmd.Stderr = stderr
	return cmd.Start()
}

// WaitForDaemon polls with a real status call until the daemon answers.
func WaitForDaemon(socketPath string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if Probe(socketPath) {
			return true
		}
		time.Sleep(300 * time.Millisecond)
	}
	return false
}

// Ensure starts the profile daemon unless one already answers on socketPath.
func Ensure(profileName, socketPath string, stderr io.Writer) error {
	if Probe(socketPath) {
		return nil
	}
	_, _ = fmt.Fprintf(stderr, "daemon not running for profile %q, starting...\n", profileName)
	if err := StartDaemon(profileName, stderr); err != nil {
		return fmt.Errorf("start daemon: %w", err)
	}
	if !WaitForDaemon(socketPath, 10*time.Second) {
		return fmt.Errorf("daemon for profile %q did not become ready", profileName)
	}
	return nil
}
