// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ExportSink receives an encoded export. name is always ExportName.
type ExportSink interface {
	Deliver(ctx context.Context, name string, data []byte) error
}

// DirSink writes exports as files into a directory.
type DirSink struct {
	Dir string
}

// Ensure DirSink implements ExportSink.
var _ ExportSink = DirSink{}

// Deliver writes data to Dir/name, replacing an existing file.
func (s DirSink) Deliver(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("sketch: create export dir: %w", err)
	}
	path := filepath.Join(s.Dir, filepath.Base(name))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("sketch: write export: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("sketch: write export: %w", err)
	}
	return nil
}

// WriterSink streams exports to an io.Writer. It is safe for concurrent
// use; deliveries are written whole, one at a time.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink returns a sink writing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Deliver writes data to the underlying writer.
func (s *WriterSink) Deliver(ctx context.Context, _ string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(data)
	return err
}

// SinkFunc adapts a function to ExportSink.
type SinkFunc func(ctx context.Context, name string, data []byte) error

// Deliver calls f.
func (f SinkFunc) Deliver(ctx context.Context, name string, data []byte) error {
	return f(ctx, name, data)
}
