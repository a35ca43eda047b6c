package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileSink writes documents into Dir, creating it when missing.
type FileSink struct {
	Dir string
}

func (s FileSink) Deliver(ctx context.Context, doc Document) (Outcome, error) {
	if err := checkDocument(doc); err != nil {
		return Outcome{}, err
	}
	if err := ctx.Err(); err != nil {
		return Outcome{}, err
	}
	name := filepath.Base(doc.Name)
	if name == "." || name == string(filepath.Separator) {
		return Outcome{}, fmt.Errorf("sink: invalid document name %q", doc.Name)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return unavailable("create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
		return Outcome{}, fmt.Errorf("sink: write %s: %w", path, err)
	}
	return Outcome{Status: StatusDelivered, Location: path, Size: len(doc.Bytes)}, nil
}
