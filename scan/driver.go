package scan

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Urethramancer/strs/charset"
	"github.com/Urethramancer/strs/errkind"
	"github.com/Urethramancer/strs/model"
	"github.com/Urethramancer/strs/sink"
)

// emit applies the optional filter and, if the result survives, hands it to
// the sink.
func emit(res model.Result, opts Options, snk sink.Sink) error {
	if opts.Filter != nil && !opts.Filter.IsMatch(res.Text) {
		return nil
	}
	if err := snk.Emit(res); err != nil {
		return fmt.Errorf("%w: %v", errkind.ErrSink, err)
	}
	return nil
}

// driveSequential is the sequential decoder driver: a single outer loop
// repeatedly gives every still-live decoder exactly one TryDecode call at
// its current offset, until none remain live.
func driveSequential(ctx context.Context, chunk []byte, slots []decoderSlot, blocks charset.BlockSet, opts Options, snk sink.Sink) error {
	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%w", errkind.ErrCancelled)
		}
		anyLive := false
		for _, slot := range slots {
			if !slot.info.Live {
				continue
			}
			anyLive = true
			res, ok := slot.dec.TryDecode(chunk, slot.info, blocks)
			if ok {
				if err := emit(res, opts, snk); err != nil {
					return err
				}
			}
		}
		if !anyLive {
			return nil
		}
	}
}

// driveParallel is the parallel decoder driver: one goroutine per decoder,
// each running its own decoder to buffer exhaustion independently.
// The per-buffer source offset is only advanced by the caller after every
// goroutine has returned, so the commit is atomic from the source's point
// of view.
func driveParallel(ctx context.Context, chunk []byte, slots []decoderSlot, blocks charset.BlockSet, opts Options, snk sink.Sink) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, slot := range slots {
		slot := slot
		g.Go(func() error {
			for slot.info.Live {
				if err := gctx.Err(); err != nil {
					return fmt.Errorf("%w", errkind.ErrCancelled)
				}
				res, ok := slot.dec.TryDecode(chunk, slot.info, blocks)
				if ok {
					if err := emit(res, opts, snk); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	return g.Wait()
}
