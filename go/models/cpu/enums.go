package cpu

// These values are the engine's native ABI.
// They must stay in sync with unicorn.h, as every backend passes them through untouched.

// return codes
const (
	ERR_OK              = 0  // no error
	ERR_NOMEM           = 1  // out of memory: uc_open(), uc_emulate()
	ERR_ARCH            = 2  // unsupported architecture: uc_open()
	ERR_HANDLE          = 3  // invalid handle
	ERR_MODE            = 4  // invalid/unsupported mode: uc_open()
	ERR_VERSION         = 5  // unsupported version (bindings)
	ERR_READ_UNMAPPED   = 6  // quit emulation due to READ on unmapped memory: uc_emu_start()
	ERR_WRITE_UNMAPPED  = 7  // quit emulation due to WRITE on unmapped memory: uc_emu_start()
	ERR_FETCH_UNMAPPED  = 8  // quit emulation due to FETCH on unmapped memory: uc_emu_start()
	ERR_HOOK            = 9  // invalid hook type: uc_hook_add()
	ERR_INSN_INVALID    = 10 // quit emulation due to invalid instruction: uc_emu_start()
	ERR_MAP             = 11 // invalid memory mapping: uc_mem_map()
	ERR_WRITE_PROT      = 12 // quit emulation due to MEM_WRITE_PROT violation: uc_emu_start()
	ERR_READ_PROT       = 13 // quit emulation due to MEM_READ_PROT violation: uc_emu_start()
	ERR_FETCH_PROT      = 14 // quit emulation due to MEM_FETCH_PROT violation: uc_emu_start()
	ERR_ARG             = 15 // invalid argument provided to uc_xxx function
	ERR_READ_UNALIGNED  = 16 // unaligned read
	ERR_WRITE_UNALIGNED = 17 // unaligned write
	ERR_FETCH_UNALIGNED = 18 // unaligned fetch
	ERR_HOOK_EXIST      = 19 // hook for this event already existed
	ERR_RESOURCE        = 20 // insufficient resource: uc_emu_start()
	ERR_EXCEPTION       = 21 // unhandled CPU exception
)

// architectures
const (
	ARCH_ARM   = 1 // ARM (including Thumb, Thumb-2)
	ARCH_ARM64 = 2 // ARM-64, also called AArch64
	ARCH_MIPS  = 3 // Mips
	ARCH_X86   = 4 // X86 (including x86 & x86-64)
	ARCH_PPC   = 5 // PowerPC (currently unsupported)
	ARCH_SPARC = 6 // Sparc
	ARCH_M68K  = 7 // M68K
	ARCH_MAX   = 8
)

// binding API version
const (
	API_MAJOR = 1
	API_MINOR = 0
)

// modes
// Values are reused between architectures, so MODE_THUMB == MODE_MICRO is intended.
const (
	MODE_LITTLE_ENDIAN = 0       // little-endian mode (default mode)
	MODE_BIG_ENDIAN    = 1 << 30 // big-endian mode

	MODE_ARM    = 0      // ARM/ARM64: ARM mode
	MODE_THUMB  = 1 << 4 // ARM/ARM64: THUMB mode (including Thumb-2)
	MODE_MCLASS = 1 << 5 // ARM/ARM64: ARM's Cortex-M series (currently unsupported)
	MODE_V8     = 1 << 6 // ARM/ARM64: ARMv8 A32 encodings for ARM (currently unsupported)

	MODE_MICRO    = 1 << 4 // MIPS: MicroMips mode (currently unsupported)
	MODE_MIPS3    = 1 << 5 // MIPS: Mips III ISA (currently unsupported)
	MODE_MIPS32R6 = 1 << 6 // MIPS: Mips32r6 ISA (currently unsupported)
	MODE_MIPS32   = 1 << 2 // MIPS: Mips32 ISA
	MODE_MIPS64   = 1 << 3 // MIPS: Mips64 ISA

	MODE_16 = 1 << 1 // X86: 16-bit mode
	MODE_32 = 1 << 2 // X86: 32-bit mode
	MODE_64 = 1 << 3 // X86: 64-bit mode

	MODE_PPC32 = 1 << 2 // PPC: 32-bit mode (currently unsupported)
	MODE_PPC64 = 1 << 3 // PPC: 64-bit mode (currently unsupported)
	MODE_QPX   = 1 << 4 // PPC: Quad Processing eXtensions mode (currently unsupported)

	MODE_SPARC32 = 1 << 2 // SPARC: 32-bit mode
	MODE_SPARC64 = 1 << 3 // SPARC: 64-bit mode
	MODE_V9      = 1 << 4 // SPARC: SparcV9 mode (currently unsupported)
)

// these constants are passed to memory hooks to specify the type of memory access
const (
	MEM_READ           = 16 // memory is read from
	MEM_WRITE          = 17 // memory is written to
	MEM_FETCH          = 18 // memory is fetched
	MEM_READ_UNMAPPED  = 19 // unmapped memory is read from
	MEM_WRITE_UNMAPPED = 20 // unmapped memory is written to
	MEM_FETCH_UNMAPPED = 21 // unmapped memory is fetched
	MEM_WRITE_PROT     = 22 // write to write protected, but mapped, memory
	MEM_READ_PROT      = 23 // read from read protected, but mapped, memory
	MEM_FETCH_PROT     = 24 // fetch from non-executable, but mapped, memory
	MEM_READ_AFTER     = 25 // memory is read from (successful access)
)

// these constants are used for memory protections
const (
	PROT_NONE  = 0
	PROT_READ  = 1
	PROT_WRITE = 2
	PROT_EXEC  = 4
	PROT_ALL   = PROT_READ | PROT_WRITE | PROT_EXEC
)

// hook types
const (
	HOOK_INTR               = 1 << 0  // all interrupt/syscall events
	HOOK_INSN               = 1 << 1  // a particular instruction (cpu-specific)
	HOOK_CODE               = 1 << 2  // a range of code
	HOOK_BLOCK              = 1 << 3  // basic blocks
	HOOK_MEM_READ_UNMAPPED  = 1 << 4  // memory read on unmapped memory
	HOOK_MEM_WRITE_UNMAPPED = 1 << 5  // invalid memory write events
	HOOK_MEM_FETCH_UNMAPPED = 1 << 6  // invalid memory fetch for execution events
	HOOK_MEM_READ_PROT      = 1 << 7  // memory read on read-protected memory
	HOOK_MEM_WRITE_PROT     = 1 << 8  // memory write on write-protected memory
	HOOK_MEM_FETCH_PROT     = 1 << 9  // memory fetch on non-executable memory
	HOOK_MEM_READ           = 1 << 10 // memory read events
	HOOK_MEM_WRITE          = 1 << 11 // memory write events
	HOOK_MEM_FETCH          = 1 << 12 // memory fetch for execution events
	HOOK_MEM_READ_AFTER     = 1 << 13 // memory read events, but only successful access
)

// hook shorthands
const (
	// all events of unmapped memory access
	HOOK_MEM_UNMAPPED = HOOK_MEM_READ_UNMAPPED | HOOK_MEM_WRITE_UNMAPPED | HOOK_MEM_FETCH_UNMAPPED
	// all events of illegal protected memory access
	HOOK_MEM_PROT = HOOK_MEM_READ_PROT | HOOK_MEM_WRITE_PROT | HOOK_MEM_FETCH_PROT
	// all events of illegal read memory access
	HOOK_MEM_READ_INVALID = HOOK_MEM_READ_PROT | HOOK_MEM_READ_UNMAPPED
	// all events of illegal write memory access
	HOOK_MEM_WRITE_INVALID = HOOK_MEM_WRITE_PROT | HOOK_MEM_WRITE_UNMAPPED
	// all events of illegal fetch memory access
	HOOK_MEM_FETCH_INVALID = HOOK_MEM_FETCH_PROT | HOOK_MEM_FETCH_UNMAPPED
	// all events of illegal memory access
	HOOK_MEM_INVALID = HOOK_MEM_UNMAPPED | HOOK_MEM_PROT
	// all events of valid memory access
	HOOK_MEM_VALID = HOOK_MEM_READ | HOOK_MEM_WRITE | HOOK_MEM_FETCH
)

// uc_query() types
const (
	QUERY_MODE      = 1 // current hardware mode
	QUERY_PAGE_SIZE = 2 // page size of the engine
)
