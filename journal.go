package main

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// startJournal spawns journalctl in follow mode and returns its stdout
// stream. The child is killed when ctx is cancelled; either way its exit
// ends the stream. A non-zero exit surfaces through cmd.Wait and must be
// reported by the caller, since it is the only diagnostic the child
// leaves behind.
func startJournal(ctx context.Context) (io.ReadCloser, *exec.Cmd, error) {
	return startCommand(ctx, "journalctl", "-o", "json", "-f")
}

func startCommand(ctx context.Context, name string, args ...string) (io.ReadCloser, *exec.Cmd, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("%s stdout: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("start %s: %w", name, err)
	}
	return out, cmd, nil
}
