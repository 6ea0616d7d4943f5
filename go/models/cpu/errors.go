package cpu

import (
	"fmt"
)

// Errno is an engine return code. Every backend reports engine failures with it.
type Errno int

var strerror = map[Errno]string{
	ERR_OK:              "OK (UC_ERR_OK)",
	ERR_NOMEM:           "No memory available or memory not present (UC_ERR_NOMEM)",
	ERR_ARCH:            "Invalid/unsupported architecture (UC_ERR_ARCH)",
	ERR_HANDLE:          "Invalid handle (UC_ERR_HANDLE)",
	ERR_MODE:            "Invalid mode (UC_ERR_MODE)",
	ERR_VERSION:         "Different API version between core & binding (UC_ERR_VERSION)",
	ERR_READ_UNMAPPED:   "Invalid memory read (UC_ERR_READ_UNMAPPED)",
	ERR_WRITE_UNMAPPED:  "Invalid memory write (UC_ERR_WRITE_UNMAPPED)",
	ERR_FETCH_UNMAPPED:  "Invalid memory fetch (UC_ERR_FETCH_UNMAPPED)",
	ERR_HOOK:            "Invalid hook type (UC_ERR_HOOK)",
	ERR_INSN_INVALID:    "Invalid instruction (UC_ERR_INSN_INVALID)",
	ERR_MAP:             "Invalid memory mapping (UC_ERR_MAP)",
	ERR_WRITE_PROT:      "Write to write-protected memory (UC_ERR_WRITE_PROT)",
	ERR_READ_PROT:       "Read from non-readable memory (UC_ERR_READ_PROT)",
	ERR_FETCH_PROT:      "Fetch from non-executable memory (UC_ERR_FETCH_PROT)",
	ERR_ARG:             "Invalid argument (UC_ERR_ARG)",
	ERR_READ_UNALIGNED:  "Read from unaligned memory (UC_ERR_READ_UNALIGNED)",
	ERR_WRITE_UNALIGNED: "Write to unaligned memory (UC_ERR_WRITE_UNALIGNED)",
	ERR_FETCH_UNALIGNED: "Fetch from unaligned memory (UC_ERR_FETCH_UNALIGNED)",
	ERR_HOOK_EXIST:      "Hook for this event already exists (UC_ERR_HOOK_EXIST)",
	ERR_RESOURCE:        "Insufficient resource (UC_ERR_RESOURCE)",
	ERR_EXCEPTION:       "Unhandled CPU exception (UC_ERR_EXCEPTION)",
}

// Strerror mirrors uc_strerror().
func Strerror(code int) string {
	if s, ok := strerror[Errno(code)]; ok {
		return s
	}
	return "Unknown error code"
}

func (e Errno) Error() string {
	return Strerror(int(e))
}

// CheckErrno turns a raw engine return code into an error, nil for ERR_OK.
func CheckErrno(code int) error {
	if code == ERR_OK {
		return nil
	}
	return Errno(code)
}

// MemError is a memory fault raised by the pure-Go memory model.
// Enum holds one of the MEM_*_UNMAPPED / MEM_*_PROT access kinds.
type MemError struct {
	Addr uint64
	Size int
	Enum int
}

func (m *MemError) Error() string {
	reason := "memory error"
	switch m.Enum {
	case MEM_WRITE_UNMAPPED:
		reason = "unmapped write"
	case MEM_READ_UNMAPPED:
		reason = "unmapped read"
	case MEM_FETCH_UNMAPPED:
		reason = "unmapped fetch"
	case MEM_WRITE_PROT:
		reason = "protected write"
	case MEM_READ_PROT:
		reason = "protected read"
	case MEM_FETCH_PROT:
		reason = "protected exec"
	}
	return fmt.Sprintf("%s at %#x(%d)", reason, m.Addr, m.Size)
}

// Errno maps the fault to the code uc_emu_start() would have returned.
func (m *MemError) Errno() Errno {
	switch m.Enum {
	case MEM_READ_UNMAPPED:
		return ERR_READ_UNMAPPED
	case MEM_WRITE_UNMAPPED:
		return ERR_WRITE_UNMAPPED
	case MEM_FETCH_UNMAPPED:
		return ERR_FETCH_UNMAPPED
	case MEM_READ_PROT:
		return ERR_READ_PROT
	case MEM_WRITE_PROT:
		return ERR_WRITE_PROT
	case MEM_FETCH_PROT:
		return ERR_FETCH_PROT
	}
	return ERR_EXCEPTION
}
