// Package procmem implements the process memory region classifier and the
// seekable process byte stream built on top of it. The OS-specific syscall
// surface is isolated behind the OSProcess interface; a real implementation
// lives in provider_windows.go, and a no-op stub in provider_other.go
// covers every other GOOS.
package procmem

import "github.com/Urethramancer/strs/model"

// ThreadInfo is the minimum a thread enumeration needs to classify a stack
// region and attach its owning thread id.
type ThreadInfo struct {
	ThreadID uint32
	TebBase  uint64
}

// OSProcess is the abstract process query surface: open/close,
// list regions, read memory, list threads, list heaps, read well-known
// shared pages, and map a device path to a DOS path for mapped-file names.
//
// HeapSegmentSignature and ActivationContextMagic abstract away undocumented NT struct
// layouts (HEAP_SEGMENT, activation context headers) so RegionClassifier
// stays platform-independent and unit-testable against a fake.
type OSProcess interface {
	Open(pid uint32) error
	Close() error

	ProcessID() uint32
	ProcessPath() string
	Is32Bit() bool

	Regions() ([]model.MemoryRegion, error)
	ReadAt(addr uint64, buf []byte) (int, error)

	Threads() ([]ThreadInfo, error)
	Heaps() ([]model.HeapInfo, error)

	// PebBases returns the address of the process's PEB(s): one entry for
	// a native process, two (native + WOW64) when the target is a 32-bit
	// process running under WOW64 on a 64-bit host.
	PebBases() ([]uint64, error)

	// PebDerivedRegions returns the well-known single-page structures
	// that hang off the PEB: ApiSetMap, ReadOnlySharedMemory,
	// AnsiCodePageData, GdiSharedHandleTable, ShimData,
	// ActivationContextData, SystemDefaultActivationContextData,
	// WerRegistrationData, SharedData, TelemetryCoverageHeader. Their
	// exact PEB offsets are undocumented and version-dependent; the
	// provider resolves them however it needs to and just reports the
	// resulting (kind, address) pairs.
	PebDerivedRegions() (map[model.RegionKind]uint64, error)

	// SharedPageAddrs reports the fixed UserSharedData VA and, when the
	// host exposes one, the HypervisorSharedData VA.
	SharedPageAddrs() (userShared uint64, hyperShared uint64, hyperOK bool)

	// HeapSegmentSignature reads a candidate HEAP_SEGMENT header at base
	// and reports whether its signature matches (0xFFEEFFEE) along with
	// the heap pointer the segment claims to belong to.
	HeapSegmentSignature(base uint64) (isSegment bool, heapPtr uint64)

	// ActivationContextMagic reads a candidate activation context header
	// at base and reports whether its magic matches ('xtcA').
	ActivationContextMagic(base uint64) bool

	// MappedFilePath resolves the file backing an IMAGE/MAPPED allocation
	// at base, returning "" if the region isn't a mapped file.
	MappedFilePath(base uint64) (string, error)

	DosPathOf(devicePath string) (string, error)
}
