package pipeline

import (
	"github.com/sarchlab/o3sim/emu"
	"github.com/sarchlab/o3sim/insts"
)

// ExceptionVector is the PC value signaling "in exception handler". It
// has no meaning beyond being distinguishable from program addresses.
const ExceptionVector uint64 = 0x10000

// ActiveListEntry is one in-flight instruction in program order. The
// active list is the source of in-order commit.
type ActiveListEntry struct {
	// Done is set once the instruction's result has appeared on the
	// forwarding bus.
	Done bool `json:"Done"`

	// Exception is set if the instruction raised an arithmetic exception.
	Exception bool `json:"Exception"`

	// LogicalDestination is the architectural destination register.
	LogicalDestination uint32 `json:"LogicalDestination"`

	// OldDestination is the physical register the destination was mapped
	// to before rename; commit frees it, rollback restores it.
	OldDestination uint32 `json:"OldDestination"`

	// PC identifies the instruction.
	PC uint64 `json:"PC"`
}

// IntegerQueueEntry is one instruction waiting in the issue queue. An
// operand is either ready with a resolved value, or waiting on the busy
// physical register named by its tag.
type IntegerQueueEntry struct {
	DestRegister uint32   `json:"DestRegister"`
	OpAIsReady   bool     `json:"OpAIsReady"`
	OpARegTag    uint32   `json:"OpARegTag"`
	OpAValue     uint64   `json:"OpAValue"`
	OpBIsReady   bool     `json:"OpBIsReady"`
	OpBRegTag    uint32   `json:"OpBRegTag"`
	OpBValue     uint64   `json:"OpBValue"`
	OpCode       insts.Op `json:"OpCode"`
	PC           uint64   `json:"PC"`
}

// State holds the architectural and micro-architectural tables the
// pipeline stages mutate in place. Each stage has exclusive access in
// its turn; snapshots are taken only at cycle boundaries.
type State struct {
	// PC is the next instruction to fetch.
	PC uint64

	// RegFile is the physical register file.
	RegFile emu.RegFile

	// Decoded holds instructions decoded but not yet renamed, in fetch
	// order.
	Decoded []insts.Instruction

	// ExceptionPC is the PC of the most recent faulting instruction.
	ExceptionPC uint64

	// Exception is set while the precise exception protocol is rolling
	// the pipeline back.
	Exception bool

	// MapTable is the architectural-to-physical mapping.
	MapTable emu.MapTable

	// FreeList is the FIFO of unallocated physical registers.
	FreeList *emu.FreeList

	// BusyTable marks physical registers with an in-flight producer.
	BusyTable emu.BusyTable

	// ActiveList is the in-order FIFO of in-flight instructions.
	ActiveList []ActiveListEntry

	// IntegerQueue is the unordered pool issue selects from.
	IntegerQueue []IntegerQueueEntry

	// Backpressure stalls fetch for one cycle when rename cannot accept
	// the current decode group. It is internal and never serialized.
	Backpressure bool
}

// NewState creates the reset state: identity register mapping, free list
// p32..p63, all registers zero and not busy.
func NewState() *State {
	return &State{
		Decoded:      make([]insts.Instruction, 0),
		MapTable:     emu.NewMapTable(),
		FreeList:     emu.NewFreeList(),
		ActiveList:   make([]ActiveListEntry, 0),
		IntegerQueue: make([]IntegerQueueEntry, 0),
	}
}

// Snapshot is the externally visible per-cycle record. Field names match
// the trace format exactly; of the decoded instructions only the PCs are
// visible.
type Snapshot struct {
	PC                   uint64              `json:"PC"`
	PhysicalRegisterFile []uint64            `json:"PhysicalRegisterFile"`
	DecodedPCs           []uint64            `json:"DecodedPCs"`
	ExceptionPC          uint64              `json:"ExceptionPC"`
	Exception            bool                `json:"Exception"`
	RegisterMapTable     []uint32            `json:"RegisterMapTable"`
	FreeList             []uint32            `json:"FreeList"`
	BusyBitTable         []bool              `json:"BusyBitTable"`
	ActiveList           []ActiveListEntry   `json:"ActiveList"`
	IntegerQueue         []IntegerQueueEntry `json:"IntegerQueue"`
}

// Snapshot captures a deep copy of the state. Every collection is
// non-nil so that empty tables serialize as [] rather than null.
func (s *State) Snapshot() Snapshot {
	pcs := make([]uint64, 0, len(s.Decoded))
	for _, d := range s.Decoded {
		pcs = append(pcs, d.PC)
	}

	return Snapshot{
		PC:                   s.PC,
		PhysicalRegisterFile: append(make([]uint64, 0, emu.NumPhysRegs), s.RegFile.P[:]...),
		DecodedPCs:           pcs,
		ExceptionPC:          s.ExceptionPC,
		Exception:            s.Exception,
		RegisterMapTable:     append(make([]uint32, 0, emu.NumArchRegs), s.MapTable[:]...),
		FreeList:             s.FreeList.Regs(),
		BusyBitTable:         append(make([]bool, 0, emu.NumPhysRegs), s.BusyTable[:]...),
		ActiveList:           append(make([]ActiveListEntry, 0, len(s.ActiveList)), s.ActiveList...),
		IntegerQueue:         append(make([]IntegerQueueEntry, 0, len(s.IntegerQueue)), s.IntegerQueue...),
	}
}
