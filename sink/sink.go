// Package sink implements the scan's output consumer: wherever an
// accepted, filter-passing Result ends up, writing to it must be safe from
// both the sequential and the parallel per-buffer decoder drivers.
package sink

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/Urethramancer/strs/model"
)

// Sink consumes emitted results. Emit must be safe for concurrent use.
type Sink interface {
	Emit(model.Result) error
	Flush() error
	Close() error
}

// BufferedSink writes tab-separated records to an underlying writer behind
// a mutex and a bufio.Writer, so Scanner's parallel driver can call Emit
// from multiple goroutines without corrupting output.
type BufferedSink struct {
	mu     sync.Mutex
	w      *bufio.Writer
	closer io.Closer
}

func NewBufferedSink(w io.Writer) *BufferedSink {
	closer, _ := w.(io.Closer)
	return &BufferedSink{w: bufio.NewWriter(w), closer: closer}
}

func (s *BufferedSink) Emit(r model.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ProcessID != 0 {
		_, err := fmt.Fprintf(s.w, "%d\t%s\t%d\t%s\tpid=%d\tregion=%s\t%s\n",
			r.Offset, r.Encoding, r.Length, r.Text, r.ProcessID, r.RegionKind, r.ProcessPath)
		return err
	}
	_, err := fmt.Fprintf(s.w, "%d\t%s\t%d\t%s\n", r.Offset, r.Encoding, r.Length, r.Text)
	return err
}

func (s *BufferedSink) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Flush()
}

func (s *BufferedSink) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

// CollectingSink accumulates results in memory, for tests and for callers
// embedding the scanner as a library instead of a CLI.
type CollectingSink struct {
	mu      sync.Mutex
	Results []model.Result
}

func NewCollectingSink() *CollectingSink { return &CollectingSink{} }

func (s *CollectingSink) Emit(r model.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Results = append(s.Results, r)
	return nil
}

func (s *CollectingSink) Flush() error { return nil }
func (s *CollectingSink) Close() error { return nil }
