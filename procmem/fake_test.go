package procmem_test

import (
	"fmt"

	"github.com/Urethramancer/strs/model"
	"github.com/Urethramancer/strs/procmem"
)

// fakeProcess is a hand-built, in-memory OSProcess used to exercise
// RegionClassifier and Stream without a live Windows target.
type fakeProcess struct {
	regions []model.MemoryRegion
	mem     map[uint64][]byte // base -> bytes, one entry per region
	threads []procmem.ThreadInfo
	heaps   []model.HeapInfo
	pebs    []uint64
}

func (f *fakeProcess) Open(uint32) error  { return nil }
func (f *fakeProcess) Close() error       { return nil }
func (f *fakeProcess) ProcessID() uint32  { return 1234 }
func (f *fakeProcess) ProcessPath() string { return `C:\fake\proc.exe` }
func (f *fakeProcess) Is32Bit() bool       { return false }

func (f *fakeProcess) Regions() ([]model.MemoryRegion, error) {
	out := make([]model.MemoryRegion, len(f.regions))
	copy(out, f.regions)
	return out, nil
}

func (f *fakeProcess) ReadAt(addr uint64, buf []byte) (int, error) {
	for base, data := range f.mem {
		if addr < base || addr >= base+uint64(len(data)) {
			continue
		}
		off := addr - base
		n := copy(buf, data[off:])
		return n, nil
	}
	return 0, fmt.Errorf("fake: no memory backing address %#x", addr)
}

func (f *fakeProcess) Threads() ([]procmem.ThreadInfo, error) { return f.threads, nil }
func (f *fakeProcess) Heaps() ([]model.HeapInfo, error)       { return f.heaps, nil }
func (f *fakeProcess) PebBases() ([]uint64, error)            { return f.pebs, nil }

func (f *fakeProcess) PebDerivedRegions() (map[model.RegionKind]uint64, error) {
	return nil, nil
}

func (f *fakeProcess) SharedPageAddrs() (uint64, uint64, bool) { return 0x7FFE0000, 0, false }

func (f *fakeProcess) HeapSegmentSignature(base uint64) (bool, uint64) {
	buf := make([]byte, 24)
	if _, err := f.ReadAt(base, buf); err != nil {
		return false, 0
	}
	sig := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	if sig != 0xFFEEFFEE {
		return false, 0
	}
	var heapPtr uint64
	for i := 7; i >= 0; i-- {
		heapPtr = heapPtr<<8 | uint64(buf[16+i])
	}
	return true, heapPtr
}

func (f *fakeProcess) ActivationContextMagic(base uint64) bool {
	buf := make([]byte, 4)
	if _, err := f.ReadAt(base, buf); err != nil {
		return false
	}
	magic := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
	return magic == 0x41637478
}

func (f *fakeProcess) MappedFilePath(base uint64) (string, error) {
	if base == 0x10000000 {
		return `C:\Windows\System32\ntdll.dll`, nil
	}
	return "", nil
}

func (f *fakeProcess) DosPathOf(devicePath string) (string, error) { return devicePath, nil }

var _ procmem.OSProcess = (*fakeProcess)(nil)
