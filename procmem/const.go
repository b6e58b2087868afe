package procmem

// Windows VirtualQueryEx protection constants, used generically by the
// classifier against whatever OSProcess implementation supplied the
// MemoryRegion.Protect value.
const (
	pageNoAccess    = 0x01
	pageGuard       = 0x100
	baseProtectMask = 0xFF
)

// userSharedDataAddr is the fixed KUSER_SHARED_DATA virtual address on both
// x86 and x64 Windows.
const userSharedDataAddr = 0x7FFE0000

func isNoAccess(protect uint32) bool {
	return protect&baseProtectMask == pageNoAccess
}

func isGuard(protect uint32) bool {
	return protect&pageGuard != 0
}
