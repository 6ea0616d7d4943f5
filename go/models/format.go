package models

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// ToHex renders n in lower-case hex, left-padded with zeros to at least pad digits.
func ToHex(n uint64, pad int) string {
	if pad < 1 {
		pad = 1
	}
	return fmt.Sprintf("%0*x", pad, n)
}

// SpacedHex renders p as "90 90 c3".
func SpacedHex(p []byte) string {
	out := make([]string, len(p))
	for i, b := range p {
		out[i] = ToHex(uint64(b), 2)
	}
	return strings.Join(out, " ")
}

// ParseHex accepts hex with optional whitespace and an optional 0x prefix per byte group.
func ParseHex(s string) ([]byte, error) {
	fields := strings.Fields(s)
	for i, f := range fields {
		fields[i] = strings.TrimPrefix(strings.ToLower(f), "0x")
	}
	return hex.DecodeString(strings.Join(fields, ""))
}

// Disas formats instructions one per line, byte columns padded to the widest instruction.
func Disas(dis []Ins, showBytes bool, pad ...int) string {
	width := 0
	if len(pad) > 0 {
		width = pad[0]
	}
	for _, ins := range dis {
		if len(ins.Bytes()) > width {
			width = len(ins.Bytes())
		}
	}
	out := make([]string, 0, len(dis))
	for _, ins := range dis {
		line := fmt.Sprintf("0x%x:", ins.Addr())
		if showBytes {
			data := hex.EncodeToString(ins.Bytes())
			line += " " + data + strings.Repeat(" ", (width-len(ins.Bytes()))*2)
		}
		line += " " + strings.TrimSpace(ins.Mnemonic()+" "+ins.OpStr())
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// Repr quotes p with non-printable bytes escaped. With strsize > 0 the quoted
// text is cut to fit strsize characters, counting the trailing "...".
func Repr(p []byte, strsize int) string {
	tmp := make([]string, len(p))
	total := 0
	for i, b := range p {
		if b >= 0x20 && b <= 0x7e {
			tmp[i] = string(b)
		} else {
			tmp[i] = fmt.Sprintf("\\x%02x", b)
		}
		total += len(tmp[i])
	}
	if strsize <= 0 || total <= strsize {
		return "\"" + strings.Join(tmp, "") + "\""
	}
	keep := strsize - 3
	var b strings.Builder
	for _, s := range tmp {
		if b.Len()+len(s) > keep {
			break
		}
		b.WriteString(s)
	}
	return "\"" + b.String() + "\"..."
}

// HexDump lays mem out in word-sized blocks to fit width columns.
func HexDump(base uint64, mem []byte, bits, width int) []string {
	clean := func(p []byte) string {
		o := make([]byte, len(p))
		for i, c := range p {
			if c >= 0x20 && c <= 0x7e {
				o[i] = c
			} else {
				o[i] = '.'
			}
		}
		return string(o)
	}
	bsz := bits / 8
	if bsz < 1 {
		bsz = 1
	}
	hexFmt := fmt.Sprintf("0x%%0%dx:", bsz*2)
	padBlock := strings.Repeat(" ", bsz*2)
	padTail := strings.Repeat(" ", bsz)

	addrSize := bsz*2 + 4
	blockCount := ((width - addrSize) * 3 / 4) / ((bsz + 1) * 2)
	if blockCount < 1 {
		blockCount = 1
	}
	lineSize := blockCount * bsz
	var out []string
	blocks := make([]string, blockCount)
	tail := make([]string, blockCount)
	for i := 0; i < len(mem); i += lineSize {
		memLine := mem[i:]
		for j := 0; j < blockCount; j++ {
			if j*bsz < len(memLine) {
				end := (j + 1) * bsz
				var block []byte
				if end > len(memLine) {
					block = memLine[j*bsz:]
				} else {
					block = memLine[j*bsz : end]
				}
				blocks[j] = hex.EncodeToString(block)
				tail[j] = clean(block)
				// short final block
				if end > len(memLine) {
					pad := end - len(memLine)
					blocks[j] += strings.Repeat("  ", pad)
					tail[j] += strings.Repeat(" ", pad)
				}
			} else {
				blocks[j] = padBlock
				tail[j] = padTail
			}
		}
		line := []string{fmt.Sprintf(hexFmt, base+uint64(i))}
		line = append(line, strings.Join(blocks, " "))
		line = append(line, fmt.Sprintf("[%s]", strings.Join(tail, " ")))
		out = append(out, strings.Join(line, " "))
	}
	return out
}
