package procmem_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Urethramancer/strs/model"
	"github.com/Urethramancer/strs/procmem"
)

func le64(v uint64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func le32(v uint32) []byte {
	b := make([]byte, 4)
	for i := 0; i < 4; i++ {
		b[i] = byte(v >> (8 * i))
	}
	return b
}

func buildFakeProcess() *fakeProcess {
	const (
		userShared = 0x7FFE0000
		tebBase    = 0x7FFF0000
		stackBase  = 0x7FF00000
		heapBase   = 0x00400000
		imageBase  = 0x10000000
		privBase   = 0x02000000
		noAccess   = 0x03000000
	)

	teb := make([]byte, 0x1000)
	copy(teb[0x10:], le64(stackBase))

	return &fakeProcess{
		regions: []model.MemoryRegion{
			{Base: userShared, Size: 0x1000, Protect: 0x02, State: model.StateCommitted, Type: model.TypePrivate, AllocationBase: userShared, Valid: true},
			{Base: tebBase, Size: 0x1000, Protect: 0x04, State: model.StateCommitted, Type: model.TypePrivate, AllocationBase: tebBase, Valid: true},
			{Base: stackBase, Size: 0x10000, Protect: 0x04, State: model.StateCommitted, Type: model.TypePrivate, AllocationBase: stackBase, Valid: true},
			{Base: heapBase, Size: 0x1000, Protect: 0x04, State: model.StateCommitted, Type: model.TypePrivate, AllocationBase: heapBase, Valid: true},
			{Base: imageBase, Size: 0x2000, Protect: 0x20, State: model.StateCommitted, Type: model.TypeImage, AllocationBase: imageBase, Valid: true},
			{Base: privBase, Size: 0x1000, Protect: 0x04, State: model.StateCommitted, Type: model.TypePrivate, AllocationBase: privBase, Valid: true},
			{Base: noAccess, Size: 0x1000, Protect: 0x01, State: model.StateCommitted, Type: model.TypePrivate, AllocationBase: noAccess, Valid: true},
		},
		mem: map[uint64][]byte{
			userShared: make([]byte, 0x1000),
			tebBase:    teb,
			stackBase:  make([]byte, 0x10000),
			heapBase:   make([]byte, 0x1000), // no HEAP_SEGMENT signature present
			imageBase:  make([]byte, 0x2000),
			privBase:   make([]byte, 0x1000),
		},
		threads: []procmem.ThreadInfo{{ThreadID: 42, TebBase: tebBase}},
		heaps:   []model.HeapInfo{{ID: 1, BaseAddr: heapBase}},
		pebs:    nil,
	}
}

func TestRegionClassifierPasses(t *testing.T) {
	proc := buildFakeProcess()
	regions, err := procmem.NewRegionClassifier(proc).Classify()
	require.NoError(t, err)

	byBase := make(map[uint64]model.MemoryRegion)
	for _, r := range regions {
		byBase[r.Base] = r
	}

	// the NOACCESS region must be filtered out entirely in pass 1
	_, present := byBase[0x03000000]
	require.False(t, present)

	require.Equal(t, model.KindUserSharedData, byBase[0x7FFE0000].Kind)
	require.Equal(t, model.KindTeb, byBase[0x7FFF0000].Kind)
	require.Equal(t, model.KindStack, byBase[0x7FF00000].Kind)
	require.Equal(t, model.KindNtHeap, byBase[0x00400000].Kind)
	require.Equal(t, model.KindImage, byBase[0x10000000].Kind)
	require.Equal(t, `C:\Windows\System32\ntdll.dll`, byBase[0x10000000].MappedFilePath)
	require.Equal(t, model.KindPrivateData, byBase[0x02000000].Kind)
}

func TestStreamConcatenatesRegionsAndSkipsGaps(t *testing.T) {
	proc := buildFakeProcess()
	// give the stack and private regions some distinguishable content
	copy(proc.mem[0x7FF00000], []byte("stackdata"))
	copy(proc.mem[0x02000000], []byte("privdata"))

	s, err := procmem.NewStream(proc)
	require.NoError(t, err)

	total, err := s.Len()
	require.NoError(t, err)
	require.Greater(t, total, int64(0))

	// regions are concatenated in ascending address order; 0x00400000 (the
	// heap region) sorts lowest among the surviving regions.
	region, addr, ok := s.Locate(0)
	require.True(t, ok)
	require.Equal(t, uint64(0x00400000), region.Base)
	require.Equal(t, uint64(0x00400000), addr)

	buf := make([]byte, total)
	n, err := io.ReadFull(s, buf)
	require.True(t, err == nil || err == io.ErrUnexpectedEOF)
	require.Greater(t, n, 0)
}

func TestStreamSeek(t *testing.T) {
	proc := buildFakeProcess()
	s, err := procmem.NewStream(proc)
	require.NoError(t, err)

	total, _ := s.Len()
	pos, err := s.Seek(0, io.SeekEnd)
	require.NoError(t, err)
	require.Equal(t, total, pos)

	_, err = s.Seek(-1, io.SeekStart)
	require.Error(t, err)
}
