package sink

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
)

// CommandSink pipes the document into an external print command such as
// `lp` or `lpr`. The command is started and left running; its exit status
// is only logged.
type CommandSink struct {
	Command string
	Args    []string
	Logger  *slog.Logger

	// lookPath is swapped in tests.
	lookPath func(string) (string, error)
}

// NewCommandSink returns a sink spawning command with args.
func NewCommandSink(command string, args []string, logger *slog.Logger) *CommandSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CommandSink{Command: command, Args: args, Logger: logger, lookPath: exec.LookPath}
}

func (s *CommandSink) Deliver(ctx context.Context, doc Document) (Outcome, error) {
	if err := checkDocument(doc); err != nil {
		return Outcome{}, err
	}
	if s.Command == "" {
		return unavailable("no print command configured")
	}
	look := s.lookPath
	if look == nil {
		look = exec.LookPath
	}
	path, err := look(s.Command)
	if err != nil {
		return unavailable("print command %q not found", s.Command)
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}

	cmd := exec.Command(path, s.Args...)
	cmd.Stdin = bytes.NewReader(doc.Bytes)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Start(); err != nil {
		return unavailable("start %s: %v", s.Command, err)
	}
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Warn("print command failed",
				slog.String("command", s.Command),
				slog.String("document", doc.Name),
				slog.String("stderr", stderr.String()),
				slog.Any("error", err),
			)
			return
		}
		logger.Info("document printed", slog.String("document", doc.Name))
	}()
	return Outcome{
		Status:   StatusQueued,
		Location: fmt.Sprintf("%s[%d]", s.Command, cmd.Process.Pid),
		Size:     len(doc.Bytes),
	}, nil
}
