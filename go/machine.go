package ucjs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lunixbochs/ucjs/go/models"
	"github.com/lunixbochs/ucjs/go/models/cpu"
)

const defaultPageSize = 0x1000

// Machine is an engine plus the bookkeeping the inspector needs:
// described mappings, register display models and an output stream.
type Machine struct {
	eng cpu.Cpu

	arch     *models.Arch
	config   *models.Config
	logger   *zap.Logger
	output   io.Writer
	pageSize uint64
	mask     uint64

	mappings []*models.Mmap
	regs     []*models.Register
}

var _ models.Machine = (*Machine)(nil)

// NewMachine opens an engine with builder and maps the code (and optional stack) regions from config.
func NewMachine(arch *models.Arch, builder cpu.Builder, config *models.Config, logger *zap.Logger) (*Machine, error) {
	if config == nil {
		config = models.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := builder.New()
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s engine", arch.Name)
	}
	m := &Machine{
		eng:      c,
		arch:     arch,
		config:   config,
		logger:   logger.With(zap.String("arch", arch.Name)),
		output:   os.Stderr,
		pageSize: defaultPageSize,
		mask:     arch.AddressMask(),
	}
	if size, err := c.Query(cpu.QUERY_PAGE_SIZE); err == nil && size > 0 {
		m.pageSize = size
	}
	if err := m.setup(); err != nil {
		c.Close()
		return nil, err
	}
	m.logger.Debug("machine ready",
		zap.Uint64("addr", config.Addr),
		zap.Uint64("page_size", m.pageSize))
	return m, nil
}

func (m *Machine) setup() error {
	if m.config.MemSize > 0 {
		if _, err := m.Mmap(m.config.Addr, m.config.MemSize, cpu.PROT_ALL, "code"); err != nil {
			return err
		}
	}
	if size := m.config.StackSize; size > 0 {
		base := m.config.StackBase
		if size <= m.mask && (base > m.mask || m.mask-base < size-1) {
			// base is outside the address space, as on x86_16
			base = (m.mask + 1 - size) &^ (m.pageSize - 1)
			m.logger.Debug("stack moved into address space", zap.Uint64("base", base))
		}
		stack, err := m.Mmap(base, size, cpu.PROT_READ|cpu.PROT_WRITE, "stack")
		if err != nil {
			return err
		}
		if err := m.arch.WriteSP(m.eng, stack.End()); err != nil {
			return err
		}
	}
	return m.SetPC(m.config.Addr)
}

func (m *Machine) Arch() *models.Arch {
	return m.arch
}

func (m *Machine) Bits() uint {
	return uint(m.arch.Bits)
}

func (m *Machine) ByteOrder() binary.ByteOrder {
	return m.arch.Order
}

func (m *Machine) Config() *models.Config {
	return m.config
}

func (m *Machine) Cpu() cpu.Cpu {
	return m.eng
}

func (m *Machine) Logger() *zap.Logger {
	return m.logger
}

func (m *Machine) PageSize() uint64 {
	return m.pageSize
}

// SetOutput redirects Printf and Println.
func (m *Machine) SetOutput(w io.Writer) {
	m.output = w
}

func (m *Machine) Printf(format string, args ...interface{}) {
	fmt.Fprintf(m.output, format, args...)
}

func (m *Machine) Println(s ...interface{}) {
	fmt.Fprintln(m.output, s...)
}

// align rounds addr down and addr+size up to page boundaries.
func (m *Machine) align(addr, size uint64) (uint64, uint64) {
	mask := ^(m.pageSize - 1)
	right := (addr + size + m.pageSize - 1) & mask
	addr &= mask
	return addr, right - addr
}

func (m *Machine) overlaps(addr, size uint64) *models.Mmap {
	for _, mm := range m.mappings {
		if addr < mm.End() && mm.Addr < addr+size {
			return mm
		}
	}
	return nil
}

// Mmap maps a fresh page-aligned region. Overlapping an existing mapping fails with ERR_MAP.
func (m *Machine) Mmap(addr, size uint64, prot int, desc string) (*models.Mmap, error) {
	if size == 0 {
		return nil, errors.Wrap(cpu.Errno(cpu.ERR_ARG), "mmap of zero bytes")
	}
	addr, size = m.align(addr, size)
	if mm := m.overlaps(addr, size); mm != nil {
		return nil, errors.Wrapf(cpu.Errno(cpu.ERR_MAP), "0x%x-0x%x overlaps %s", addr, addr+size, mm)
	}
	if err := m.eng.MemMapProt(addr, size, prot); err != nil {
		return nil, errors.Wrapf(err, "mapping 0x%x-0x%x", addr, addr+size)
	}
	mm := &models.Mmap{Addr: addr, Size: size, Prot: prot, Desc: desc}
	m.mappings = append(m.mappings, mm)
	sort.Sort(models.MmapAddrSort(m.mappings))
	m.logger.Debug("mapped", zap.Stringer("mapping", mm))
	return mm, nil
}

// split cuts mappings straddling addr so it lands on an entry boundary.
func (m *Machine) split(addr uint64) {
	for i, mm := range m.mappings {
		if mm.Addr < addr && addr < mm.End() {
			right := &models.Mmap{Addr: addr, Size: mm.End() - addr, Prot: mm.Prot, Desc: mm.Desc}
			mm.Size = addr - mm.Addr
			m.mappings = append(m.mappings[:i+1], append([]*models.Mmap{right}, m.mappings[i+1:]...)...)
			return
		}
	}
}

func (m *Machine) MemProt(addr, size uint64, prot int) error {
	addr, size = m.align(addr, size)
	if err := m.eng.MemProt(addr, size, prot); err != nil {
		return errors.Wrapf(err, "protecting 0x%x-0x%x", addr, addr+size)
	}
	m.split(addr)
	m.split(addr + size)
	for _, mm := range m.mappings {
		if mm.Addr >= addr && mm.End() <= addr+size {
			mm.Prot = prot
		}
	}
	return nil
}

func (m *Machine) MemUnmap(addr, size uint64) error {
	addr, size = m.align(addr, size)
	if err := m.eng.MemUnmap(addr, size); err != nil {
		return errors.Wrapf(err, "unmapping 0x%x-0x%x", addr, addr+size)
	}
	m.split(addr)
	m.split(addr + size)
	var tmp []*models.Mmap
	for _, mm := range m.mappings {
		if mm.Addr < addr || mm.End() > addr+size {
			tmp = append(tmp, mm)
		}
	}
	m.mappings = tmp
	return nil
}

// Mappings returns a copy of the mapping list in address order.
// MappingEnd is the exclusive end of the mapping containing addr, the default
// stop address for a run starting there.
func (m *Machine) MappingEnd(addr uint64) (uint64, error) {
	for _, mm := range m.mappings {
		if mm.Contains(addr) {
			return mm.End(), nil
		}
	}
	return 0, errors.Wrapf(cpu.Errno(cpu.ERR_FETCH_UNMAPPED), "0x%x is not mapped", addr)
}

func (m *Machine) Mappings() []*models.Mmap {
	ret := make([]*models.Mmap, len(m.mappings))
	for i, mm := range m.mappings {
		tmp := *mm
		ret[i] = &tmp
	}
	return ret
}

func (m *Machine) MemRead(addr, size uint64) ([]byte, error) {
	return m.eng.MemRead(addr, size)
}

func (m *Machine) MemReadInto(p []byte, addr uint64) error {
	return m.eng.MemReadInto(p, addr)
}

func (m *Machine) MemWrite(addr uint64, p []byte) error {
	return m.eng.MemWrite(addr, p)
}

func (m *Machine) RegRead(enum int) (uint64, error) {
	return m.eng.RegRead(enum)
}

func (m *Machine) RegWrite(enum int, val uint64) error {
	return m.eng.RegWrite(enum, val)
}

func (m *Machine) RegDump() ([]models.RegVal, error) {
	return m.arch.RegDump(m.eng)
}

// Registers refreshes and returns the register display models, in arch order.
func (m *Machine) Registers() ([]*models.Register, error) {
	if m.regs == nil {
		m.regs = models.NewRegisters(m.arch.Regs)
	}
	for _, r := range m.regs {
		if err := r.Update(m.eng); err != nil {
			return nil, err
		}
	}
	return m.regs, nil
}

// PC is linear, so on real-mode x86 it includes the code segment base.
func (m *Machine) PC() (uint64, error) {
	return m.arch.ReadPC(m.eng)
}

func (m *Machine) SetPC(pc uint64) error {
	if err := m.arch.WritePC(m.eng, pc); err != nil {
		return errors.Wrapf(err, "set pc 0x%x", pc)
	}
	return nil
}

func (m *Machine) Assemble(asm string, addr uint64) ([]byte, error) {
	return m.arch.Assemble(asm, addr)
}

func (m *Machine) Disassemble(addr, size uint64) ([]models.Ins, error) {
	mem, err := m.MemRead(addr, size)
	if err != nil {
		return nil, err
	}
	return m.arch.Disassemble(mem, addr)
}

func (m *Machine) options() *cpu.StartOptions {
	return &cpu.StartOptions{Timeout: m.config.Timeout, Count: m.config.Count}
}

// Run executes from begin until the pc reaches until, honoring the configured timeout and count.
func (m *Machine) Run(begin, until uint64) error {
	m.logger.Debug("run", zap.Uint64("begin", begin), zap.Uint64("until", until))
	if err := m.eng.StartWithOptions(begin, until, m.options()); err != nil {
		m.logger.Debug("run stopped", zap.Error(err))
		return errors.Wrapf(err, "run 0x%x-0x%x", begin, until)
	}
	return nil
}

// Step executes one instruction at the current pc.
func (m *Machine) Step() error {
	pc, err := m.PC()
	if err != nil {
		return err
	}
	if err := m.eng.StartWithOptions(pc, m.mask, &cpu.StartOptions{Count: 1}); err != nil {
		return errors.Wrapf(err, "step at 0x%x", pc)
	}
	return nil
}

func (m *Machine) Stop() error {
	return m.eng.Stop()
}

func (m *Machine) Save() ([]byte, error) {
	return models.Save(m)
}

func (m *Machine) Load(data []byte) error {
	if err := models.Load(m, data); err != nil {
		return err
	}
	m.regs = nil
	return nil
}

func (m *Machine) Close() error {
	m.logger.Debug("closing machine")
	return m.eng.Close()
}
