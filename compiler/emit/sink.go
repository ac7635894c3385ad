package emit

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Sink receives finished files.
type Sink interface {
	Write(namespace, name string, body []byte) error
}

// SinkMetrics tracks what a sink wrote.
type SinkMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// FileSink writes files under a target directory, one sub-directory per
// namespace, formatting them with goimports first.
type FileSink struct {
	dir string
	log *zap.Logger

	mu      sync.Mutex
	metrics SinkMetrics
}

// NewFileSink returns a sink writing under dir. A nil logger disables
// logging.
func NewFileSink(dir string, log *zap.Logger) *FileSink {
	if log == nil {
		log = zap.NewNop()
	}
	return &FileSink{dir: dir, log: log}
}

// Write formats body and writes it to <dir>/<namespace>/<name>. If body
// cannot be formatted, it is written unformatted next to the target with
// an ".error" suffix for debugging, and an error is returned.
func (s *FileSink) Write(namespace, name string, body []byte) error {
	fullPath := filepath.Join(s.dir, filepath.FromSlash(namespace), name)
	formatted, err := imports.Process(fullPath, body, nil)
	if err != nil {
		// Errors are ignored, we are already failing.
		debugPath := fullPath + ".error"
		_ = os.MkdirAll(filepath.Dir(debugPath), 0o755)
		_ = os.WriteFile(debugPath, body, 0o644)
		return fmt.Errorf("format %s: %w (unformatted written to %s)", name, err, debugPath)
	}
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", name, err)
	}
	if err := os.WriteFile(fullPath, formatted, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	s.mu.Lock()
	s.metrics.FilesWritten++
	s.metrics.TotalBytes += int64(len(formatted))
	s.mu.Unlock()
	s.log.Debug("file written", zap.String("path", fullPath), zap.Int("bytes", len(formatted)))
	return nil
}

// Metrics returns what the sink wrote so far.
func (s *FileSink) Metrics() SinkMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// MemorySink keeps files in memory.
type MemorySink struct {
	mu    sync.Mutex
	files map[string][]byte
}

// NewMemorySink returns an empty memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{files: make(map[string][]byte)}
}

// Write stores body under namespace/name.
func (s *MemorySink) Write(namespace, name string, body []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path.Join(namespace, name)] = append([]byte(nil), body...)
	return nil
}

// File returns the body stored under the slash-separated path p.
func (s *MemorySink) File(p string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.files[p]
	return b, ok
}

// Paths returns the stored paths, sorted.
func (s *MemorySink) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	paths := make([]string, 0, len(s.files))
	for p := range s.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// WriteAll writes files to sink with at most workers writes in flight.
// A non-positive workers uses GOMAXPROCS. The first error cancels the
// remaining writes.
func WriteAll(ctx context.Context, sink Sink, files []*File, workers int) error {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, f := range files {
		f := f
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return sink.Write(f.Namespace, f.Name, f.Body)
			}
		})
	}
	return eg.Wait()
}
