package insts

import "strings"

// Decoder turns instruction lines into Instruction values.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode tokenizes one instruction line fetched from the given PC.
// It returns false for malformed lines (fewer than four whitespace
// tokens); the fetch stage skips those while still advancing the PC.
func (d *Decoder) Decode(line string, pc uint64) (Instruction, bool) {
	parts := strings.Fields(line)
	if len(parts) < 4 {
		return Instruction{}, false
	}

	rawOp := parts[0]

	return Instruction{
		PC:    pc,
		Op:    Op(strings.TrimRight(rawOp, "i")),
		IsImm: strings.HasSuffix(rawOp, "i"),
		Dest:  trimComma(parts[1]),
		Src1:  trimComma(parts[2]),
		Src2:  trimComma(parts[3]),
	}, true
}
