package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Frame is one element of a frame stream: compressed image bytes plus where
// they came from.
type Frame struct {
	Index int
	Path  string // empty for in-memory sources
	Data  []byte
}

// Input returns the frame as a single inference input.
func (f Frame) Input() Input {
	return Bytes(f.Data)
}

// FrameSource is an ordered, possibly unbounded, pull-driven sequence of
// frames. Next returns false once the source is exhausted; sources are single
// pass and not restartable.
type FrameSource interface {
	Next(ctx context.Context) (Frame, bool, error)
}

// SliceSource serves in-memory frames in slice order.
type SliceSource struct {
	frames [][]byte
	pos    int
}

func NewSliceSource(frames ...[]byte) *SliceSource {
	return &SliceSource{frames: frames}
}

func (s *SliceSource) Next(ctx context.Context) (Frame, bool, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, false, err
	}
	if s.pos >= len(s.frames) {
		return Frame{}, false, nil
	}
	frame := Frame{Index: s.pos, Data: s.frames[s.pos]}
	s.pos++
	return frame, true, nil
}

// DirSource serves the image files of a directory in lexical order, filtered
// by extension. File contents are read lazily, one frame per Next call.
type DirSource struct {
	paths []string
	pos   int
}

// NewDirSource scans dir for files with one of the given extensions
// (e.g. ".jpg"); extensions are matched case-insensitively.
func NewDirSource(dir string, extensions []string) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan frame directory %s: %w", dir, err)
	}
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := allowed[strings.ToLower(filepath.Ext(entry.Name()))]; !ok {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return &DirSource{paths: paths}, nil
}

func (s *DirSource) Next(ctx context.Context) (Frame, bool, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, false, err
	}
	if s.pos >= len(s.paths) {
		return Frame{}, false, nil
	}
	path := s.paths[s.pos]
	data, err := os.ReadFile(path)
	if err != nil {
		return Frame{}, false, fmt.Errorf("read frame %s: %w", path, err)
	}
	frame := Frame{Index: s.pos, Path: path, Data: data}
	s.pos++
	return frame, true, nil
}
