package procmem

import (
	"fmt"
	"sort"

	"github.com/Urethramancer/strs/errkind"
	"github.com/Urethramancer/strs/model"
)

// RegionClassifier implements the multi-pass classification algorithm:
// every committed, accessible region of a process is labeled with a
// RegionKind before the scanner is allowed to read it.
type RegionClassifier struct {
	proc OSProcess
}

func NewRegionClassifier(proc OSProcess) *RegionClassifier {
	return &RegionClassifier{proc: proc}
}

// Classify runs all passes and returns the final, sorted region list.
func (c *RegionClassifier) Classify() ([]model.MemoryRegion, error) {
	raw, err := c.proc.Regions()
	if err != nil {
		return nil, fmt.Errorf("%w: enumerating regions: %v", errkind.ErrSourceOpen, err)
	}

	regions := make([]model.MemoryRegion, 0, len(raw))
	for _, r := range raw {
		if r.State != model.StateCommitted || isNoAccess(r.Protect) || isGuard(r.Protect) {
			continue
		}
		regions = append(regions, r)
	}
	sort.Slice(regions, func(i, j int) bool { return regions[i].Base < regions[j].Base })

	byBase := make(map[uint64]int, len(regions))
	for i, r := range regions {
		byBase[r.Base] = i
	}
	find := func(addr uint64) int {
		// sort.Search for the last region whose Base <= addr, then verify
		// addr actually falls inside it.
		idx := sort.Search(len(regions), func(i int) bool { return regions[i].Base > addr })
		idx--
		if idx < 0 || idx >= len(regions) {
			return -1
		}
		if addr < regions[idx].Base || addr >= regions[idx].End() {
			return -1
		}
		return idx
	}
	mark := func(addr uint64, kind model.RegionKind) {
		if idx := find(addr); idx >= 0 && regions[idx].Kind == model.KindUnknown {
			regions[idx].Kind = kind
		}
	}

	c.markSharedPages(regions, mark)
	c.markHeaps(regions, find)
	if err := c.markThreads(regions, find); err != nil {
		return nil, err
	}
	c.sweepUnknown(regions, byBase)

	return regions, nil
}

func (c *RegionClassifier) markSharedPages(regions []model.MemoryRegion, mark func(uint64, model.RegionKind)) {
	mark(userSharedDataAddr, model.KindUserSharedData)
	if _, hyper, ok := c.proc.SharedPageAddrs(); ok {
		mark(hyper, model.KindHypervisorSharedData)
	}

	pebs, err := c.proc.PebBases()
	if err == nil {
		for _, p := range pebs {
			mark(p, model.KindPeb)
		}
	}

	derived, err := c.proc.PebDerivedRegions()
	if err == nil {
		for kind, addr := range derived {
			mark(addr, kind)
		}
	}
}

func (c *RegionClassifier) markHeaps(regions []model.MemoryRegion, find func(uint64) int) {
	heaps, err := c.proc.Heaps()
	if err != nil {
		return
	}
	for _, h := range heaps {
		h := h
		isSeg, _ := c.proc.HeapSegmentSignature(h.BaseAddr)
		kind := model.KindNtHeap
		if h.V2 {
			kind = model.KindSegmentHeap
		}
		if isSeg {
			kind = model.KindNtHeapSegment
			if h.V2 {
				kind = model.KindSegmentHeapSegment
			}
		}
		if idx := find(h.BaseAddr); idx >= 0 && regions[idx].Kind == model.KindUnknown {
			regions[idx].Kind = kind
			regions[idx].Heap = &h
		}
	}
}

func (c *RegionClassifier) markThreads(regions []model.MemoryRegion, find func(uint64) int) error {
	threads, err := c.proc.Threads()
	if err != nil {
		return fmt.Errorf("%w: enumerating threads: %v", errkind.ErrSourceOpen, err)
	}
	ptrSize := 8
	stackLimitOffset := 0x10 // NT_TIB.StackLimit, the low end of the stack region VirtualQuery reports as Base
	if c.proc.Is32Bit() {
		ptrSize = 4
		stackLimitOffset = 0x08
	}
	for _, th := range threads {
		if idx := find(th.TebBase); idx >= 0 && regions[idx].Kind == model.KindUnknown {
			regions[idx].Kind = model.KindTeb
			regions[idx].OwningThreadID = th.ThreadID
		}

		tib := make([]byte, stackLimitOffset+ptrSize)
		if _, err := c.proc.ReadAt(th.TebBase, tib); err != nil {
			continue
		}
		stackLimit := readPtr(tib, stackLimitOffset, ptrSize)
		if idx := find(stackLimit); idx >= 0 && regions[idx].Kind == model.KindUnknown {
			regions[idx].Kind = model.KindStack
			regions[idx].OwningThreadID = th.ThreadID
		}
	}
	return nil
}

func readPtr(buf []byte, offset, size int) uint64 {
	if offset+size > len(buf) {
		return 0
	}
	var v uint64
	for i := size - 1; i >= 0; i-- {
		v = v<<8 | uint64(buf[offset+i])
	}
	return v
}

// sweepUnknown is pass 6: every region still Unknown after the PEB/heap/
// thread passes gets a best-effort classification from its own content and
// its allocation-base sibling.
func (c *RegionClassifier) sweepUnknown(regions []model.MemoryRegion, byBase map[uint64]int) {
	for i := range regions {
		r := &regions[i]
		if r.Kind != model.KindUnknown {
			continue
		}

		switch r.Type {
		case model.TypeImage, model.TypeMapped:
			if path, err := c.proc.MappedFilePath(r.AllocationBase); err == nil && path != "" {
				r.MappedFilePath = path
				if r.Type == model.TypeImage {
					r.Kind = model.KindImage
				} else {
					r.Kind = model.KindMappedFile
				}
				continue
			}
		}

		if isSeg, heapPtr := c.proc.HeapSegmentSignature(r.Base); isSeg {
			if hi, ok := byBase[heapPtr]; ok {
				switch regions[hi].Kind {
				case model.KindNtHeap, model.KindNtHeapSegment:
					r.Kind = model.KindNtHeapSegment
				case model.KindSegmentHeap, model.KindSegmentHeapSegment:
					r.Kind = model.KindSegmentHeapSegment
				}
				if r.Kind != model.KindUnknown {
					continue
				}
			}
		}

		if c.proc.ActivationContextMagic(r.Base) {
			r.Kind = model.KindActivationContextData
			continue
		}

		if ai, ok := byBase[r.AllocationBase]; ok && regions[ai].Kind != model.KindUnknown && r.AllocationBase != r.Base {
			r.Kind = regions[ai].Kind
			continue
		}

		switch r.Type {
		case model.TypePrivate:
			r.Kind = model.KindPrivateData
		case model.TypeMapped:
			r.Kind = model.KindShareable
		case model.TypeImage:
			r.Kind = model.KindImage
		}
	}
}
