package sim

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunixbochs/ucjs/go/arch/x86"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

func newCpu(t *testing.T) *SimCpu {
	c, err := (&Builder{Arch: x86.X86}).New()
	require.NoError(t, err)
	return c.(*SimCpu)
}

func TestBuilderIncomplete(t *testing.T) {
	_, err := (&Builder{}).New()
	assert.Equal(t, cpu.Errno(cpu.ERR_ARCH), errors.Cause(err))
}

func TestMapAlignment(t *testing.T) {
	c := newCpu(t)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errors.Cause(c.MemMapProt(0x1001, 0x1000, cpu.PROT_ALL)))
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errors.Cause(c.MemMapProt(0x1000, 0x10, cpu.PROT_ALL)))
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errors.Cause(c.MemMapProt(0x1000, 0x1000, 0x10)))
	require.NoError(t, c.MemMapProt(0x1000, 0x2000, cpu.PROT_ALL))
	assert.Equal(t, cpu.Errno(cpu.ERR_MAP), errors.Cause(c.MemMapProt(0x2000, 0x1000, cpu.PROT_ALL)))

	regions, err := c.MemRegions()
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, uint64(0x1000), regions[0].Begin)
	assert.Equal(t, uint64(0x2fff), regions[0].End)
}

func TestRealModeAddressSpace(t *testing.T) {
	c, err := (&Builder{Arch: x86.X86_16}).New()
	require.NoError(t, err)
	require.NoError(t, c.MemMapProt(0x10000, 0x10000, cpu.PROT_ALL))
	require.NoError(t, c.MemMapProt(0xf0000, 0x10000, cpu.PROT_ALL))
	assert.Equal(t, cpu.Errno(cpu.ERR_MAP), errors.Cause(c.MemMapProt(0x100000, 0x1000, cpu.PROT_ALL)))

	// registers stay 16 bits wide, and ip is relative to cs
	require.NoError(t, c.RegWrite(x86.CS, 0x1000))
	err = c.Start(0x10004, 0x10010)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARCH), errors.Cause(err))
	ip, err := c.RegRead(x86.IP)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), ip)
	require.NoError(t, c.RegWrite(x86.IP, 0x10000))
	ip, err = c.RegRead(x86.IP)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), ip)
}

func TestUnmapProtect(t *testing.T) {
	c := newCpu(t)
	require.NoError(t, c.MemMapProt(0x1000, 0x2000, cpu.PROT_ALL))
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errors.Cause(c.MemProt(0x1000, 0x800, cpu.PROT_READ)))
	require.NoError(t, c.MemProt(0x2000, 0x1000, cpu.PROT_READ))
	assert.Equal(t, cpu.Errno(cpu.ERR_NOMEM), errors.Cause(c.MemUnmap(0x8000, 0x1000)))
	require.NoError(t, c.MemUnmap(0x1000, 0x1000))

	regions, err := c.MemRegions()
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, uint64(0x2000), regions[0].Begin)
	assert.Equal(t, cpu.PROT_READ, regions[0].Prot)
}

func TestMemIO(t *testing.T) {
	c := newCpu(t)
	require.NoError(t, c.MemMapProt(0x1000, 0x1000, cpu.PROT_ALL))
	require.NoError(t, c.MemWrite(0x1ffe, []byte{1, 2}))
	p, err := c.MemRead(0x1ffe, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, p)
	_, err = c.MemRead(0x1fff, 2)
	assert.Error(t, err)
}

func TestRegisters(t *testing.T) {
	c := newCpu(t)
	require.NoError(t, c.RegWrite(x86.EAX, 0x1_0000_0001))
	val, err := c.RegRead(x86.EAX)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), val, "32-bit arch truncates")
	_, err = c.RegRead(-1)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errors.Cause(err))
}

func TestStartFetch(t *testing.T) {
	c := newCpu(t)
	err := c.Start(0x1000, 0x1001)
	assert.Equal(t, cpu.Errno(cpu.ERR_FETCH_UNMAPPED), errors.Cause(err))

	require.NoError(t, c.MemMapProt(0x1000, 0x1000, cpu.PROT_READ))
	err = c.Start(0x1000, 0x1001)
	assert.Equal(t, cpu.Errno(cpu.ERR_FETCH_PROT), errors.Cause(err))

	require.NoError(t, c.MemProt(0x1000, 0x1000, cpu.PROT_ALL))
	var fetched []uint64
	_, err = c.HookAdd(cpu.HOOK_MEM_FETCH, func(_ cpu.Cpu, access int, addr uint64, size int, val int64) {
		fetched = append(fetched, addr)
	}, 1, 0)
	require.NoError(t, err)
	err = c.Start(0x1000, 0x1001)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARCH), errors.Cause(err))
	assert.Equal(t, []uint64{0x1000}, fetched)

	pc, err := c.RegRead(x86.EIP)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1000), pc)
}

func TestStartEmpty(t *testing.T) {
	c := newCpu(t)
	assert.NoError(t, c.Start(0x4000, 0x4000))
}

func TestStopFromBlockHook(t *testing.T) {
	c := newCpu(t)
	blocks := 0
	_, err := c.HookAdd(cpu.HOOK_BLOCK, func(c cpu.Cpu, addr uint64, size uint32) {
		blocks++
		c.Stop()
	}, 1, 0)
	require.NoError(t, err)
	assert.NoError(t, c.Start(0x1000, 0x2000))
	assert.Equal(t, 1, blocks)
}

func TestQuery(t *testing.T) {
	c := newCpu(t)
	mode, err := c.Query(cpu.QUERY_MODE)
	require.NoError(t, err)
	assert.Equal(t, uint64(cpu.MODE_32), mode)
	page, err := c.Query(cpu.QUERY_PAGE_SIZE)
	require.NoError(t, err)
	assert.Equal(t, uint64(PageSize), page)
	_, err = c.Query(99)
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errors.Cause(err))
}

func TestVersion(t *testing.T) {
	c := newCpu(t)
	major, minor := c.Version()
	assert.Equal(t, cpu.API_MAJOR, major)
	assert.Equal(t, cpu.API_MINOR, minor)
	assert.True(t, c.ArchSupported(cpu.ARCH_X86))
	assert.False(t, c.ArchSupported(cpu.ARCH_ARM))
}

func TestRegBatchFallback(t *testing.T) {
	c := newCpu(t)
	regs := []int{x86.EAX, x86.EBX, x86.ECX}
	require.NoError(t, cpu.RegWriteBatch(c, regs, []uint64{1, 2, 3}))
	vals, err := cpu.RegReadBatch(c, regs)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, vals)

	err = cpu.RegWriteBatch(c, regs, []uint64{9})
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errors.Cause(err))
	eax, err := c.RegRead(x86.EAX)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), eax)

	_, err = cpu.RegReadBatch(c, []int{x86.EAX, -1})
	assert.Equal(t, cpu.Errno(cpu.ERR_ARG), errors.Cause(err))
}

// batchCpu counts calls that reach the batch methods.
type batchCpu struct {
	*SimCpu
	reads, writes int
}

func (b *batchCpu) RegReadBatch(regs []int) ([]uint64, error) {
	b.reads++
	return make([]uint64, len(regs)), nil
}

func (b *batchCpu) RegWriteBatch(regs []int, vals []uint64) error {
	b.writes++
	return nil
}

func TestRegBatchDispatch(t *testing.T) {
	b := &batchCpu{SimCpu: newCpu(t)}
	_, err := cpu.RegReadBatch(b, []int{x86.EAX})
	require.NoError(t, err)
	require.NoError(t, cpu.RegWriteBatch(b, []int{x86.EAX}, []uint64{1}))
	assert.Equal(t, 1, b.reads)
	assert.Equal(t, 1, b.writes)

	// mismatched lengths never reach the engine
	assert.Error(t, cpu.RegWriteBatch(b, []int{x86.EAX}, nil))
	assert.Equal(t, 1, b.writes)

	_, err = x86.X86.RegDump(b)
	require.NoError(t, err)
	assert.Equal(t, 2, b.reads)
}
