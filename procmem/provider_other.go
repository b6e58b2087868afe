//go:build !windows

package procmem

import (
	"fmt"
	"runtime"

	"github.com/Urethramancer/strs/model"
)

// WindowsProcess is only implemented for GOOS=windows; the process-memory
// source is a Windows-only feature.
type WindowsProcess struct{}

func NewWindowsProcess() *WindowsProcess { return &WindowsProcess{} }

var errUnsupported = fmt.Errorf("process memory scanning is not supported on %s", runtime.GOOS)

func (p *WindowsProcess) Open(uint32) error                 { return errUnsupported }
func (p *WindowsProcess) Close() error                      { return nil }
func (p *WindowsProcess) ProcessID() uint32                 { return 0 }
func (p *WindowsProcess) ProcessPath() string                { return "" }
func (p *WindowsProcess) Is32Bit() bool                      { return false }
func (p *WindowsProcess) Regions() ([]model.MemoryRegion, error) { return nil, nil }
func (p *WindowsProcess) ReadAt(uint64, []byte) (int, error) { return 0, errUnsupported }
func (p *WindowsProcess) Threads() ([]ThreadInfo, error)     { return nil, errUnsupported }
func (p *WindowsProcess) Heaps() ([]model.HeapInfo, error)   { return nil, errUnsupported }
func (p *WindowsProcess) PebBases() ([]uint64, error)        { return nil, errUnsupported }
func (p *WindowsProcess) PebDerivedRegions() (map[model.RegionKind]uint64, error) {
	return nil, errUnsupported
}
func (p *WindowsProcess) SharedPageAddrs() (uint64, uint64, bool) { return 0, 0, false }
func (p *WindowsProcess) HeapSegmentSignature(uint64) (bool, uint64) { return false, 0 }
func (p *WindowsProcess) ActivationContextMagic(uint64) bool         { return false }
func (p *WindowsProcess) MappedFilePath(uint64) (string, error)      { return "", errUnsupported }
func (p *WindowsProcess) DosPathOf(string) (string, error)           { return "", errUnsupported }
