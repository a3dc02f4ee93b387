// Package sink persists generated prompts.
package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// A Sink saves a batch of prompts and returns where it put them.
type Sink interface {
	Save(ctx context.Context, prompts []string) (string, error)
}

// Name returns the file name for a batch saved at t.
func Name(t time.Time) string {
	return fmt.Sprintf("prompts-%d.txt", t.Unix())
}

// Encode sorts prompts and joins them with newlines.
func Encode(prompts []string) []byte {
	sorted := slices.Clone(prompts)
	slices.Sort(sorted)
	return []byte(strings.Join(sorted, "\n"))
}

// File writes batches into a local directory.
type File struct {
	Dir string
	Now func() time.Time // defaults to time.Now
}

// Save implements Sink.
func (f *File) Save(_ context.Context, prompts []string) (string, error) {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	path := filepath.Join(f.Dir, Name(now()))
	if err := os.WriteFile(path, Encode(prompts), 0o644); err != nil {
		return "", fmt.Errorf("save prompts: %w", err)
	}
	return path, nil
}
