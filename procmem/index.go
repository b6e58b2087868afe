package procmem

import (
	"sort"

	"github.com/Urethramancer/strs/model"
)

// RegionIndex holds a classified region list sorted by base address and
// provides O(log n) address-to-region lookup through RegionAt. Stream lays
// out its concatenated offsets in this sorted order.
type RegionIndex struct {
	regions []model.MemoryRegion
}

func NewRegionIndex(regions []model.MemoryRegion) *RegionIndex {
	sorted := make([]model.MemoryRegion, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Base < sorted[j].Base })
	return &RegionIndex{regions: sorted}
}

// RegionAt returns the region containing addr, if any.
func (x *RegionIndex) RegionAt(addr uint64) (model.MemoryRegion, bool) {
	idx := sort.Search(len(x.regions), func(i int) bool { return x.regions[i].Base > addr })
	idx--
	if idx < 0 || idx >= len(x.regions) {
		return model.MemoryRegion{}, false
	}
	r := x.regions[idx]
	if addr < r.Base || addr >= r.End() {
		return model.MemoryRegion{}, false
	}
	return r, true
}

// Regions returns the full sorted list.
func (x *RegionIndex) Regions() []model.MemoryRegion { return x.regions }

// TotalBytes is the sum of every indexed region's size.
func (x *RegionIndex) TotalBytes() uint64 {
	var total uint64
	for _, r := range x.regions {
		total += r.Size
	}
	return total
}
