package pipeline

import "github.com/sarchlab/o3sim/emu"

// execResult is one computed result travelling through a unit: the
// destination physical register, the value, the producing PC, and the
// arithmetic exception flag.
type execResult struct {
	dest      uint32
	value     uint64
	pc        uint64
	exception bool
}

// ExecUnit is one integer execution unit: a two-stage pipeline holding
// at most one instruction in compute (stage 1) and one result in the
// forwarding latch (stage 2). A dispatched instruction takes exactly two
// cycles from dispatch to appearing on the forwarding bus.
type ExecUnit struct {
	alu *emu.ALU

	// pending is the instruction bound by issue this cycle, consumed by
	// the next Advance.
	pending *IntegerQueueEntry

	stage1  *execResult
	forward *execResult
}

// NewExecUnit creates an empty execution unit.
func NewExecUnit() *ExecUnit {
	return &ExecUnit{alu: emu.NewALU()}
}

// IsFree reports whether issue may bind an instruction this cycle.
func (u *ExecUnit) IsFree() bool {
	return u.pending == nil
}

// Dispatch binds an issued instruction to the unit.
func (u *ExecUnit) Dispatch(entry IntegerQueueEntry) {
	u.pending = &entry
}

// Advance steps the unit by one cycle: the forwarding latch takes over
// whatever stage 1 held, then the pending instruction (if any) is
// computed into stage 1.
func (u *ExecUnit) Advance() {
	u.forward = u.stage1
	u.stage1 = nil

	if u.pending == nil {
		return
	}
	value, exception := u.alu.Execute(u.pending.OpCode, u.pending.OpAValue, u.pending.OpBValue)
	u.stage1 = &execResult{
		dest:      u.pending.DestRegister,
		value:     value,
		pc:        u.pending.PC,
		exception: exception,
	}
	u.pending = nil
}

// Forwarding returns the contents of the forwarding latch, if any.
func (u *ExecUnit) Forwarding() (execResult, bool) {
	if u.forward == nil {
		return execResult{}, false
	}
	return *u.forward, true
}

// Reset empties both stages and drops any pending instruction. Commit
// resets every unit on exception entry.
func (u *ExecUnit) Reset() {
	u.pending = nil
	u.stage1 = nil
	u.forward = nil
}
