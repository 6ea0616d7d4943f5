package models

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"sort"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"

	"github.com/lunixbochs/ucjs/go/models/cpu"
)

// savestate format, all big-endian:
//
// file header
// uint32(magic "ucjs")
// uint32(savestate format version)
// uint32(crc32 of compressed data)
// uint64(length of compressed data)
// remainder is snappy-compressed
//
// -- uncompressed data start --
// uint32(api major), uint32(api minor), uint32(arch enum), uint32(mode enum)
// uint32(number of registers), uint32(number of mappings)
// 1..num: uint32(register enum), uint64(register value)
// 1..num: uint64(addr), uint64(len), uint32(prot), uint32(desc len), desc, uint64(data len), data

const (
	saveMagic   = 0x75636a73
	saveVersion = 1
)

var saveOptions = &struc.Options{Order: binary.BigEndian}

type saveHeader struct {
	Magic   uint32
	Version uint32
	Crc     uint32
	Length  uint64
}

type saveEngine struct {
	Major, Minor uint32
	Arch, Mode   uint32
	RegCount     uint32
	MapCount     uint32
}

type saveReg struct {
	Enum uint32
	Val  uint64
}

type saveMapping struct {
	Addr, Size uint64
	Prot       uint32
	DescLen    int `struc:"uint32,sizeof=Desc"`
	Desc       string
	DataLen    int `struc:"uint64,sizeof=Data"`
	Data       []byte
}

// State is a decoded savestate: the engine it came from, register values and
// every mapping with its contents.
type State struct {
	Major, Minor int
	Arch, Mode   int
	Enums        []int
	Vals         []uint64
	Maps         []*StateMapping
}

type StateMapping struct {
	Mmap
	Data []byte
}

// Snapshot captures registers and every mapping of m.
func Snapshot(m Machine) (*State, error) {
	arch := m.Arch()
	regs, err := arch.RegDump(m.Cpu())
	if err != nil {
		return nil, err
	}
	st := &State{
		Major: cpu.API_MAJOR, Minor: cpu.API_MINOR,
		Arch: arch.UC_ARCH, Mode: arch.UC_MODE,
	}
	for _, r := range regs {
		st.Enums = append(st.Enums, r.Enum)
		st.Vals = append(st.Vals, r.Val)
	}
	for _, mm := range m.Mappings() {
		data, err := m.MemRead(mm.Addr, mm.Size)
		if err != nil {
			return nil, errors.Wrapf(err, "saving %s", mm)
		}
		st.Maps = append(st.Maps, &StateMapping{*mm, data})
	}
	return st, nil
}

func (st *State) Encode() ([]byte, error) {
	if len(st.Enums) != len(st.Vals) {
		return nil, errors.Wrap(cpu.Errno(cpu.ERR_ARG), "savestate register count mismatch")
	}
	var body bytes.Buffer
	s := StrucStream{&body, saveOptions}
	head := &saveEngine{
		Major: uint32(st.Major), Minor: uint32(st.Minor),
		Arch: uint32(st.Arch), Mode: uint32(st.Mode),
		RegCount: uint32(len(st.Enums)), MapCount: uint32(len(st.Maps)),
	}
	if err := s.Pack(head); err != nil {
		return nil, err
	}
	for i, enum := range st.Enums {
		if err := s.Pack(&saveReg{uint32(enum), st.Vals[i]}); err != nil {
			return nil, err
		}
	}
	for _, mm := range st.Maps {
		sm := &saveMapping{Addr: mm.Addr, Size: mm.Size, Prot: uint32(mm.Prot), Desc: mm.Desc, Data: mm.Data}
		if err := s.Pack(sm); err != nil {
			return nil, err
		}
	}

	data := snappy.Encode(nil, body.Bytes())
	var final bytes.Buffer
	s = StrucStream{&final, saveOptions}
	hdr := &saveHeader{
		Magic: saveMagic, Version: saveVersion,
		Crc: crc32.ChecksumIEEE(data), Length: uint64(len(data)),
	}
	if err := s.Pack(hdr); err != nil {
		return nil, err
	}
	final.Write(data)
	return final.Bytes(), nil
}

func Decode(p []byte) (*State, error) {
	r := bytes.NewBuffer(p)
	s := StrucStream{r, saveOptions}
	var hdr saveHeader
	if err := s.Unpack(&hdr); err != nil {
		return nil, errors.Wrap(err, "reading savestate header")
	}
	if hdr.Magic != saveMagic {
		return nil, errors.New("not a savestate")
	}
	if hdr.Version != saveVersion {
		return nil, errors.Errorf("unsupported savestate version %d", hdr.Version)
	}
	data := r.Bytes()
	if uint64(len(data)) != hdr.Length || crc32.ChecksumIEEE(data) != hdr.Crc {
		return nil, errors.New("savestate is truncated or corrupt")
	}
	body, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing savestate")
	}

	s = StrucStream{bytes.NewBuffer(body), saveOptions}
	var head saveEngine
	if err := s.Unpack(&head); err != nil {
		return nil, errors.Wrap(err, "reading savestate")
	}
	st := &State{
		Major: int(head.Major), Minor: int(head.Minor),
		Arch: int(head.Arch), Mode: int(head.Mode),
	}
	for i := uint32(0); i < head.RegCount; i++ {
		var reg saveReg
		if err := s.Unpack(&reg); err != nil {
			return nil, errors.Wrap(err, "reading registers")
		}
		st.Enums = append(st.Enums, int(reg.Enum))
		st.Vals = append(st.Vals, reg.Val)
	}
	for i := uint32(0); i < head.MapCount; i++ {
		var sm saveMapping
		if err := s.Unpack(&sm); err != nil {
			return nil, errors.Wrap(err, "reading mappings")
		}
		st.Maps = append(st.Maps, &StateMapping{Mmap{sm.Addr, sm.Size, int(sm.Prot), sm.Desc}, sm.Data})
	}
	return st, nil
}

// Check reports whether st can be loaded into m without touching it:
// same engine arch and mode, page aligned non-overlapping mappings inside
// the address space, and only registers the arch knows.
func (st *State) Check(m Machine) error {
	arch := m.Arch()
	if st.Arch != arch.UC_ARCH || st.Mode != arch.UC_MODE {
		return errors.Errorf("savestate is for %s mode %#x, machine is %s", cpu.ArchName(st.Arch), st.Mode, arch.Name)
	}
	known := make(map[int]bool, len(arch.Regs))
	for _, r := range arch.Regs {
		known[r.Enum] = true
	}
	for _, enum := range st.Enums {
		if !known[enum] {
			return errors.Wrapf(cpu.Errno(cpu.ERR_ARG), "savestate has unknown %s register %d", arch.Name, enum)
		}
	}
	ps, mask := m.PageSize(), arch.AddressMask()
	maps := make([]*Mmap, len(st.Maps))
	for i, mm := range st.Maps {
		bad := mm.Size == 0 || mm.Addr&(ps-1) != 0 || mm.Size&(ps-1) != 0 ||
			mm.End() < mm.Addr || mm.End()-1 > mask || uint64(len(mm.Data)) > mm.Size ||
			mm.Prot&^cpu.PROT_ALL != 0
		if bad {
			return errors.Wrapf(cpu.Errno(cpu.ERR_MAP), "savestate mapping %s does not fit %s", &mm.Mmap, arch.Name)
		}
		maps[i] = &st.Maps[i].Mmap
	}
	sort.Sort(MmapAddrSort(maps))
	for i := 1; i < len(maps); i++ {
		if maps[i].Addr < maps[i-1].End() {
			return errors.Wrapf(cpu.Errno(cpu.ERR_MAP), "savestate mappings %s and %s overlap", maps[i-1], maps[i])
		}
	}
	return nil
}

func (st *State) apply(m Machine) error {
	for _, mm := range m.Mappings() {
		if err := m.MemUnmap(mm.Addr, mm.Size); err != nil {
			return err
		}
	}
	for _, sm := range st.Maps {
		if _, err := m.Mmap(sm.Addr, sm.Size, sm.Prot, sm.Desc); err != nil {
			return err
		}
		if err := m.MemWrite(sm.Addr, sm.Data); err != nil {
			return err
		}
	}
	return cpu.RegWriteBatch(m.Cpu(), st.Enums, st.Vals)
}

func Save(m Machine) ([]byte, error) {
	st, err := Snapshot(m)
	if err != nil {
		return nil, err
	}
	return st.Encode()
}

// Load replaces the memory map and registers of m with a snapshot made by Save.
// A snapshot that fails Check leaves m untouched. If the engine rejects it
// partway through, m is rolled back to its state before the call.
func Load(m Machine, p []byte) error {
	st, err := Decode(p)
	if err != nil {
		return err
	}
	if err := st.Check(m); err != nil {
		return err
	}
	prev, err := Snapshot(m)
	if err != nil {
		return errors.Wrap(err, "snapshotting before load")
	}
	if err := st.apply(m); err != nil {
		if rerr := prev.apply(m); rerr != nil {
			return errors.Wrapf(err, "loading savestate (rollback also failed: %v)", rerr)
		}
		return errors.Wrap(err, "loading savestate")
	}
	return nil
}
