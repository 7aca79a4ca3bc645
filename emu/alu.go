package emu

import (
	"fmt"

	"github.com/sarchlab/o3sim/insts"
)

// ALU implements the integer arithmetic semantics. All operands are
// unsigned 64-bit and arithmetic wraps modulo 2^64.
type ALU struct{}

// NewALU creates a new ALU.
func NewALU() *ALU {
	return &ALU{}
}

// Execute computes op(a, b). The exception flag is raised for division
// or remainder by zero; the result is zero in that case and the
// destination register must not be written. An opcode outside the ISA is
// a fatal simulator bug.
func (alu *ALU) Execute(op insts.Op, a, b uint64) (result uint64, exception bool) {
	switch op {
	case insts.OpAdd:
		return a + b, false
	case insts.OpSub:
		return a - b, false
	case insts.OpMulu:
		return a * b, false
	case insts.OpDivu:
		if b == 0 {
			return 0, true
		}
		return a / b, false
	case insts.OpRemu:
		if b == 0 {
			return 0, true
		}
		return a % b, false
	default:
		panic(fmt.Sprintf("undefined opcode: %s", op))
	}
}
