// Package node runs a forked chain simulator as a child process and
// relays its output.
package node

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/exec"

	"github.com/meme-bots/uniswap-devnet/types"
	"github.com/meme-bots/uniswap-devnet/utils"
)

type Launcher struct {
	Path string
	Args []string
	// Env is appended to the parent's environment.
	Env    []string
	Stdout io.Writer

	logger  *slog.Logger
	metrics *Metrics
}

func NewLauncher(cfg *types.NodeConfig, stdout io.Writer, logger *slog.Logger, metrics *Metrics) *Launcher {
	return &Launcher{
		Path:    cfg.Executable,
		Args:    BuildArgs(cfg),
		Stdout:  stdout,
		logger:  logger,
		metrics: metrics,
	}
}

// Run starts the node once and relays its stdout until the stream ends.
// A node that cannot be started is logged and Run returns nil: there is
// no retry. Cancelling ctx kills the node.
func (l *Launcher) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, l.Path, l.Args...)
	if len(l.Env) > 0 {
		cmd.Env = append(os.Environ(), l.Env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		l.metrics.RecordSpawnFailure()
		l.logger.Error("Failed to start subprocess.", "path", l.Path, "error", err)
		return nil
	}
	l.logger.Info("node started", "path", l.Path, "pid", cmd.Process.Pid)

	out := l.Stdout
	if out == nil {
		out = os.Stdout
	}

	// stdout must be drained before Wait closes it
	relayed, relayErr := Relay(out, stdout, StdoutPrefix, l.metrics.RecordChunk)
	if relayErr != nil {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	code := cmd.ProcessState.ExitCode()
	l.metrics.RecordExit(code)
	l.logger.Info("node exited",
		"exit_code", code,
		"relayed", utils.PrettyFloat(float64(relayed)),
	)

	if ctx.Err() != nil {
		return nil
	}
	if relayErr != nil {
		return relayErr
	}

	var exitErr *exec.ExitError
	if waitErr != nil && !errors.As(waitErr, &exitErr) {
		return waitErr
	}
	return nil
}
