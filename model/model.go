// Package model holds the data types shared across scan, sink, and procmem
// that would otherwise force an import cycle: the emitted Result record and
// the process memory region classification.
package model

// Encoding identifies which decoder produced a Result.
type Encoding uint8

const (
	EncodingASCII Encoding = iota
	EncodingUTF8
	EncodingUTF16LE
	EncodingUTF16BE
)

func (e Encoding) String() string {
	switch e {
	case EncodingASCII:
		return "ASCII"
	case EncodingUTF8:
		return "UTF-8"
	case EncodingUTF16LE:
		return "UTF-16LE"
	case EncodingUTF16BE:
		return "UTF-16BE"
	default:
		return "unknown"
	}
}

// RegionKind is the classified Kind enumeration.
type RegionKind uint8

const (
	KindUnknown RegionKind = iota
	KindUserSharedData
	KindHypervisorSharedData
	KindPeb
	KindTeb
	KindStack
	KindNtHeap
	KindNtHeapSegment
	KindSegmentHeap
	KindSegmentHeapSegment
	KindPrivateData
	KindImage
	KindMappedFile
	KindShareable
	KindApiSetMap
	KindReadOnlySharedMemory
	KindCodePageData
	KindGdiSharedHandleTable
	KindShimData
	KindProcessActivationContext
	KindSystemActivationContext
	KindWerRegistrationData
	KindSiloSharedData
	KindTelemetryCoverage
	KindActivationContextData
)

var kindNames = map[RegionKind]string{
	KindUnknown:                  "Unknown",
	KindUserSharedData:           "UserSharedData",
	KindHypervisorSharedData:     "HypervisorSharedData",
	KindPeb:                      "Peb",
	KindTeb:                      "Teb",
	KindStack:                    "Stack",
	KindNtHeap:                   "NtHeap",
	KindNtHeapSegment:            "NtHeapSegment",
	KindSegmentHeap:              "SegmentHeap",
	KindSegmentHeapSegment:       "SegmentHeapSegment",
	KindPrivateData:              "PrivateData",
	KindImage:                    "Image",
	KindMappedFile:               "MappedFile",
	KindShareable:                "Shareable",
	KindApiSetMap:                "ApiSetMap",
	KindReadOnlySharedMemory:     "ReadOnlySharedMemory",
	KindCodePageData:             "CodePageData",
	KindGdiSharedHandleTable:     "GdiSharedHandleTable",
	KindShimData:                 "ShimData",
	KindProcessActivationContext: "ProcessActivationContext",
	KindSystemActivationContext:  "SystemActivationContext",
	KindWerRegistrationData:      "WerRegistrationData",
	KindSiloSharedData:           "SiloSharedData",
	KindTelemetryCoverage:        "TelemetryCoverage",
	KindActivationContextData:    "ActivationContextData",
}

func (k RegionKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "Unknown"
}

// MemoryState mirrors the Windows VirtualQuery MEM_* state values.
type MemoryState uint8

const (
	StateCommitted MemoryState = iota
	StateReserved
	StateFree
)

// MemoryType mirrors the Windows VirtualQuery MEM_* type values.
type MemoryType uint8

const (
	TypePrivate MemoryType = iota
	TypeMapped
	TypeImage
)

// HeapInfo describes the heap a region belongs to, when Kind is one of the
// *Heap* kinds.
type HeapInfo struct {
	ID       uint32
	BaseAddr uint64
	Size     uint64
	V2       bool // true when the OS version selected the V2 heap record layout
}

// MemoryRegion is the classified process memory region record.
type MemoryRegion struct {
	Base            uint64
	Size            uint64
	Protect         uint32
	State           MemoryState
	Type            MemoryType
	Kind            RegionKind
	AllocationBase  uint64
	MappedFilePath  string // non-empty for Image/MappedFile
	Heap            *HeapInfo
	OwningThreadID  uint32 // non-zero for Stack
	Valid           bool
}

// End returns the exclusive end address of the region.
func (r MemoryRegion) End() uint64 { return r.Base + r.Size }

// Result is the emitted record.
type Result struct {
	Offset   int64
	Encoding Encoding
	Length   int // byte length of the matched slice
	Text     string

	// Process-source fields; zero values for file sources.
	ProcessID   uint32
	ProcessPath string
	RegionKind  RegionKind
	HeapID      uint32
	ThreadID    uint32
	MappedFile  string
}

