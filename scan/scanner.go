package scan

import (
	"context"
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/Urethramancer/strs/errkind"
	"github.com/Urethramancer/strs/sink"
)

// Scanner drives the open -> read-buffer -> drive-decoders ->
// (read-buffer | done) state machine over one Source.
type Scanner struct{}

func NewScanner() *Scanner { return &Scanner{} }

// Scan reads src in BufferSize chunks starting at StartOffset, running the
// selected decoders over each chunk and emitting accepted, filter-passing
// results to snk.
func (s *Scanner) Scan(ctx context.Context, src Source, opts Options, snk sink.Sink) error {
	length, err := src.Len()
	if err != nil {
		return fmt.Errorf("%w: %v", errkind.ErrSourceOpen, err)
	}
	if err := opts.Validate(length); err != nil {
		return err
	}
	if length == 0 {
		return nil
	}
	if _, err := src.Seek(opts.StartOffset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", errkind.ErrSourceOpen, err)
	}

	toScan := opts.BytesToScan
	if toScan == 0 {
		toScan = length - opts.StartOffset
	}

	slots := buildDecoders(opts.Encodings, opts)
	for _, slot := range slots {
		slot.info.BaseOffset = opts.StartOffset
	}
	buf := make([]byte, opts.BufferSize)

	var processed int64
	for processed < toScan {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w", errkind.ErrCancelled)
		}

		want := int64(len(buf))
		if remaining := toScan - processed; want > remaining {
			want = remaining
		}

		n, rerr := io.ReadFull(src, buf[:want])
		if n > 0 {
			chunk := buf[:n]
			for _, slot := range slots {
				slot.info.BufOffset = 0
				slot.info.Live = true
			}

			var driveErr error
			if opts.Sync || len(slots) <= 1 {
				driveErr = driveSequential(ctx, chunk, slots, opts.Blocks, opts, snk)
			} else {
				driveErr = driveParallel(ctx, chunk, slots, opts.Blocks, opts, snk)
			}
			if driveErr != nil {
				return driveErr
			}

			for _, slot := range slots {
				slot.info.BaseOffset += int64(n)
			}
			processed += int64(n)
			if opts.ProgressFunc != nil {
				opts.ProgressFunc(processed)
			}
		}

		if rerr != nil {
			if errors.Is(rerr, io.EOF) || errors.Is(rerr, io.ErrUnexpectedEOF) {
				break // a short final read just ends the scan rather than erroring
			}
			return fmt.Errorf("%w: %v", errkind.ErrOsRead, rerr)
		}
		if int64(n) < want {
			break
		}
	}

	return snk.Flush()
}

// ScanItem pairs a Source with the Options and Sink to scan it under, for
// ScanMany. Sink is per-item (rather than shared) so a caller can wrap a
// common output sink with per-source metadata (e.g. which process a result
// came from) before results reach it.
type ScanItem struct {
	Source Source
	Opts   Options
	Sink   sink.Sink
}

// ScanMany runs Scan over each item, bounding concurrency to parallelItems,
// for CLIs that accept multiple targets (e.g. several process ids) in one
// invocation.
func ScanMany(ctx context.Context, items []ScanItem, parallelItems int) error {
	if parallelItems < 1 {
		parallelItems = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelItems)

	scanner := NewScanner()
	for _, item := range items {
		item := item
		g.Go(func() error {
			defer item.Source.Close()
			return scanner.Scan(gctx, item.Source, item.Opts, item.Sink)
		})
	}
	return g.Wait()
}
