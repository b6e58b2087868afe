package procmem

import (
	"fmt"
	"io"

	"github.com/Urethramancer/strs/errkind"
	"github.com/Urethramancer/strs/model"
)

// Stream implements P2: a seekable byte stream over a classified process,
// formed by concatenating every accessible region in address order. A
// virtual offset into the stream never lands inside a gap between regions —
// gaps (unmapped pages, guard pages, and anything filtered out during
// classification) simply don't occupy any stream offset.
type Stream struct {
	proc    OSProcess
	index   *RegionIndex
	starts  []int64 // starts[i] is the virtual offset where regions[i] begins
	total   int64
	cursor  int64
}

// NewStream classifies proc and builds the concatenated view over the
// result.
func NewStream(proc OSProcess) (*Stream, error) {
	regions, err := NewRegionClassifier(proc).Classify()
	if err != nil {
		return nil, err
	}
	index := NewRegionIndex(regions)
	starts := make([]int64, len(index.Regions()))
	var total int64
	for i, r := range index.Regions() {
		starts[i] = total
		total += int64(r.Size)
	}
	return &Stream{proc: proc, index: index, starts: starts, total: total}, nil
}

func (s *Stream) Len() (int64, error) { return s.total, nil }

func (s *Stream) Regions() []model.MemoryRegion { return s.index.Regions() }

// Locate maps a virtual stream offset back to the region it falls in and the
// process address it corresponds to, for attaching RegionKind/Heap/Thread
// metadata to an emitted Result.
func (s *Stream) Locate(virtualOffset int64) (model.MemoryRegion, uint64, bool) {
	i := s.regionIndexFor(virtualOffset)
	if i < 0 {
		return model.MemoryRegion{}, 0, false
	}
	r := s.index.Regions()[i]
	addr := r.Base + uint64(virtualOffset-s.starts[i])
	return r, addr, true
}

func (s *Stream) regionIndexFor(virtualOffset int64) int {
	lo, hi := 0, len(s.starts)-1
	best := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if s.starts[mid] <= virtualOffset {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if best < 0 {
		return -1
	}
	r := s.index.Regions()[best]
	if virtualOffset >= s.starts[best]+int64(r.Size) {
		return -1
	}
	return best
}

func (s *Stream) Read(p []byte) (int, error) {
	if s.cursor >= s.total {
		return 0, io.EOF
	}
	i := s.regionIndexFor(s.cursor)
	if i < 0 {
		return 0, fmt.Errorf("%w: stream cursor %d outside any region", errkind.ErrOutOfRange, s.cursor)
	}
	r := s.index.Regions()[i]
	offsetInRegion := s.cursor - s.starts[i]
	remainingInRegion := int64(r.Size) - offsetInRegion
	want := int64(len(p))
	if want > remainingInRegion {
		want = remainingInRegion
	}
	addr := r.Base + uint64(offsetInRegion)
	n, err := s.proc.ReadAt(addr, p[:want])
	if err != nil {
		// Bytes the process refused to copy (a partial copy or a
		// no-access page) read as zeros rather than failing the scan.
		for j := n; j < int(want); j++ {
			p[j] = 0
		}
		n = int(want)
	}
	s.cursor += int64(n)
	return n, nil
}

func (s *Stream) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = s.cursor + offset
	case io.SeekEnd:
		target = s.total + offset
	default:
		return 0, fmt.Errorf("%w: invalid whence %d", errkind.ErrConfig, whence)
	}
	if target < 0 || target > s.total {
		return 0, fmt.Errorf("%w: seek target %d outside [0,%d]", errkind.ErrOutOfRange, target, s.total)
	}
	s.cursor = target
	return s.cursor, nil
}

func (s *Stream) Close() error { return s.proc.Close() }
