//go:build windows

package procmem

import (
	"fmt"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Urethramancer/strs/model"
)

var (
	modntdll  = windows.NewLazySystemDLL("ntdll.dll")
	modpsapi  = windows.NewLazySystemDLL("psapi.dll")
	modkernel = windows.NewLazySystemDLL("kernel32.dll")

	procNtQueryInformationProcess = modntdll.NewProc("NtQueryInformationProcess")
	procNtQueryInformationThread  = modntdll.NewProc("NtQueryInformationThread")
	procGetMappedFileNameW        = modpsapi.NewProc("GetMappedFileNameW")
	procHeap32ListFirst           = modkernel.NewProc("Heap32ListFirst")
	procHeap32ListNext            = modkernel.NewProc("Heap32ListNext")
)

const (
	processBasicInformation   = 0
	processWow64Information   = 26
	threadBasicInformation    = 0
	memCommit                 = 0x1000
	memReserve                = 0x2000
	memImage                  = 0x1000000
	memMapped                 = 0x40000
	memPrivate                = 0x20000
	heapSegmentSignature      = 0xFFEEFFEE
	activationContextMagic    = 0x41637478 // 'xtcA'
)

// WindowsProcess is the real OSProcess backed by Win32/NT process query
// APIs. PROCESS_VM_READ|PROCESS_QUERY_INFORMATION is the narrowest access
// mask that supports every query this type performs.
type WindowsProcess struct {
	handle windows.Handle
	pid    uint32
	path   string
	is32   bool
}

func NewWindowsProcess() *WindowsProcess { return &WindowsProcess{} }

func (p *WindowsProcess) Open(pid uint32) error {
	h, err := windows.OpenProcess(windows.PROCESS_VM_READ|windows.PROCESS_QUERY_INFORMATION, false, pid)
	if err != nil {
		return fmt.Errorf("OpenProcess(%d): %w", pid, err)
	}
	p.handle = h
	p.pid = pid

	buf := make([]uint16, windows.MAX_PATH)
	size := uint32(len(buf))
	if err := windows.QueryFullProcessImageName(h, 0, &buf[0], &size); err == nil {
		p.path = windows.UTF16ToString(buf[:size])
	}

	var wow64 uintptr
	_, _, _ = procNtQueryInformationProcess.Call(
		uintptr(h), uintptr(processWow64Information),
		uintptr(unsafe.Pointer(&wow64)), unsafe.Sizeof(wow64), 0)
	p.is32 = wow64 != 0

	return nil
}

func (p *WindowsProcess) Close() error {
	if p.handle == 0 {
		return nil
	}
	return windows.CloseHandle(p.handle)
}

func (p *WindowsProcess) ProcessID() uint32  { return p.pid }
func (p *WindowsProcess) ProcessPath() string { return p.path }
func (p *WindowsProcess) Is32Bit() bool       { return p.is32 }

func (p *WindowsProcess) Regions() ([]model.MemoryRegion, error) {
	var regions []model.MemoryRegion
	var addr uintptr
	for {
		var mbi windows.MemoryBasicInformation
		err := windows.VirtualQueryEx(p.handle, addr, &mbi, unsafe.Sizeof(mbi))
		if err != nil {
			break // no more regions: the address space ends here
		}
		if mbi.RegionSize == 0 {
			break
		}

		var state model.MemoryState
		switch mbi.State {
		case memCommit:
			state = model.StateCommitted
		case memReserve:
			state = model.StateReserved
		default:
			state = model.StateFree
		}

		var typ model.MemoryType
		switch mbi.Type {
		case memImage:
			typ = model.TypeImage
		case memMapped:
			typ = model.TypeMapped
		default:
			typ = model.TypePrivate
		}

		regions = append(regions, model.MemoryRegion{
			Base:           uint64(mbi.BaseAddress),
			Size:           uint64(mbi.RegionSize),
			Protect:        mbi.Protect,
			State:          state,
			Type:           typ,
			AllocationBase: uint64(mbi.AllocationBase),
			Valid:          true,
		})

		next := addr + uintptr(mbi.RegionSize)
		if next <= addr {
			break // overflow guard
		}
		addr = next
	}
	return regions, nil
}

func (p *WindowsProcess) ReadAt(addr uint64, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	var n uintptr
	err := windows.ReadProcessMemory(p.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &n)
	if err != nil {
		return int(n), fmt.Errorf("ReadProcessMemory(%#x): %w", addr, err)
	}
	return int(n), nil
}

func (p *WindowsProcess) PebBases() ([]uint64, error) {
	var pbi struct {
		ExitStatus                   uintptr
		PebBaseAddress                uintptr
		AffinityMask                  uintptr
		BasePriority                  uintptr
		UniqueProcessID                uintptr
		InheritedFromUniqueProcessID   uintptr
	}
	ret, _, _ := procNtQueryInformationProcess.Call(
		uintptr(p.handle), uintptr(processBasicInformation),
		uintptr(unsafe.Pointer(&pbi)), unsafe.Sizeof(pbi), 0)
	if ret != 0 {
		return nil, fmt.Errorf("NtQueryInformationProcess(ProcessBasicInformation) failed: status %#x", ret)
	}

	bases := []uint64{uint64(pbi.PebBaseAddress)}
	if p.is32 {
		var wow64PebAddr uintptr
		ret, _, _ := procNtQueryInformationProcess.Call(
			uintptr(p.handle), uintptr(processWow64Information),
			uintptr(unsafe.Pointer(&wow64PebAddr)), unsafe.Sizeof(wow64PebAddr), 0)
		if ret == 0 && wow64PebAddr != 0 {
			bases = append(bases, uint64(wow64PebAddr))
		}
	}
	return bases, nil
}

// PebDerivedRegions is left empty: the offsets of ApiSetMap,
// ReadOnlySharedMemory and the other PEB substructures are undocumented and
// change across Windows builds. Classification for these kinds falls back
// to the allocation-base inheritance rule in RegionClassifier's sweep pass.
func (p *WindowsProcess) PebDerivedRegions() (map[model.RegionKind]uint64, error) {
	return nil, nil
}

func (p *WindowsProcess) SharedPageAddrs() (uint64, uint64, bool) {
	return userSharedDataAddr, 0, false
}

func (p *WindowsProcess) Threads() ([]ThreadInfo, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return nil, fmt.Errorf("CreateToolhelp32Snapshot(THREAD): %w", err)
	}
	defer windows.CloseHandle(snap)

	var entry windows.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))
	var out []ThreadInfo
	for err := windows.Thread32First(snap, &entry); err == nil; err = windows.Thread32Next(snap, &entry) {
		if entry.OwnerProcessID != p.pid {
			continue
		}
		th, err := windows.OpenThread(windows.THREAD_QUERY_INFORMATION, false, entry.ThreadID)
		if err != nil {
			continue
		}
		var tbi struct {
			ExitStatus     uintptr
			TebBaseAddress uintptr
			ClientID       [2]uintptr
			AffinityMask   uintptr
			Priority       uintptr
			BasePriority   uintptr
		}
		ret, _, _ := procNtQueryInformationThread.Call(
			uintptr(th), uintptr(threadBasicInformation),
			uintptr(unsafe.Pointer(&tbi)), unsafe.Sizeof(tbi), 0)
		windows.CloseHandle(th)
		if ret != 0 {
			continue
		}
		out = append(out, ThreadInfo{ThreadID: entry.ThreadID, TebBase: uint64(tbi.TebBaseAddress)})
	}
	return out, nil
}

// Heaps enumerates per-process heaps via the toolhelp heap list snapshot.
// Only creating the snapshot is retried, up to maxAttempts times; no buffer
// is grown between attempts. A failing Heap32ListFirst is not retried and
// yields an empty heap list.
func (p *WindowsProcess) Heaps() ([]model.HeapInfo, error) {
	const maxAttempts = 6
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPHEAPLIST, p.pid)
		if err != nil {
			lastErr = err
			continue
		}

		type heapList32 struct {
			Size      uint32
			ProcessID uint32
			HeapID    uintptr
			Flags     uint32
			Reserved  [2]uint32
		}
		var entry heapList32
		entry.Size = uint32(unsafe.Sizeof(entry))

		var heaps []model.HeapInfo
		ret, _, _ := procHeap32ListFirst.Call(uintptr(snap), uintptr(unsafe.Pointer(&entry)))
		for ret != 0 {
			heaps = append(heaps, model.HeapInfo{ID: uint32(entry.HeapID), BaseAddr: uint64(entry.HeapID)})
			ret, _, _ = procHeap32ListNext.Call(uintptr(snap), uintptr(unsafe.Pointer(&entry)))
		}
		windows.CloseHandle(snap)
		return heaps, nil
	}
	return nil, fmt.Errorf("Heap32ListFirst: giving up after %d attempts: %w", maxAttempts, lastErr)
}

func (p *WindowsProcess) HeapSegmentSignature(base uint64) (bool, uint64) {
	buf := make([]byte, 24)
	if _, err := p.ReadAt(base, buf); err != nil {
		return false, 0
	}
	sig := readPtr(buf, 0, 4)
	if uint32(sig) != heapSegmentSignature {
		return false, 0
	}
	heapPtr := readPtr(buf, 16, 8)
	return true, heapPtr
}

func (p *WindowsProcess) ActivationContextMagic(base uint64) bool {
	buf := make([]byte, 4)
	if _, err := p.ReadAt(base, buf); err != nil {
		return false
	}
	return uint32(readPtr(buf, 0, 4)) == activationContextMagic
}

func (p *WindowsProcess) MappedFilePath(base uint64) (string, error) {
	buf := make([]uint16, windows.MAX_PATH)
	ret, _, err := procGetMappedFileNameW.Call(
		uintptr(p.handle), uintptr(base),
		uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return "", fmt.Errorf("GetMappedFileNameW(%#x): %w", base, err)
	}
	devicePath := windows.UTF16ToString(buf)
	return p.DosPathOf(devicePath)
}

func (p *WindowsProcess) DosPathOf(devicePath string) (string, error) {
	for c := 'A'; c <= 'Z'; c++ {
		drive := string(c) + ":"
		buf := make([]uint16, windows.MAX_PATH)
		driveUTF16, err := windows.UTF16PtrFromString(drive)
		if err != nil {
			continue
		}
		n, err := windows.QueryDosDevice(driveUTF16, &buf[0], uint32(len(buf)))
		if err != nil || n == 0 {
			continue
		}
		target := windows.UTF16ToString(buf[:n])
		if strings.HasPrefix(devicePath, target) {
			return drive + strings.TrimPrefix(devicePath, target), nil
		}
	}
	return devicePath, nil
}
