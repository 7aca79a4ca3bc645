package pipeline

import (
	"sort"

	"github.com/sarchlab/o3sim/insts"
)

// doFetchDecode reads up to FetchWidth instruction lines at the current
// PC and appends them to the decoded buffer. Malformed lines (fewer than
// four tokens) are skipped silently but still advance the PC. Fetch does
// nothing while backpressured or handling an exception.
func (p *Pipeline) doFetchDecode() {
	if p.state.Backpressure || p.state.Exception {
		return
	}

	for i := 0; i < p.cfg.FetchWidth; i++ {
		if p.state.PC >= uint64(len(p.program)) {
			break
		}

		pc := p.state.PC
		p.state.PC++

		inst, ok := p.decoder.Decode(p.program[pc], pc)
		if !ok {
			continue
		}
		p.state.Decoded = append(p.state.Decoded, inst)
	}
}

// doRenameDispatch renames the decoded group and dispatches it into the
// active list and the integer queue. If the group would overflow either
// structure or the free list, the backpressure flag is raised and the
// decoded buffer is left untouched to reappear next cycle.
func (p *Pipeline) doRenameDispatch() {
	s := p.state
	n := len(s.Decoded)

	s.Backpressure = len(s.IntegerQueue)+n > p.cfg.QueueCapacity ||
		len(s.ActiveList)+n > p.cfg.ReorderCapacity ||
		s.FreeList.Len() < n
	if s.Backpressure {
		p.stats.BackpressureStalls++
		return
	}
	if n == 0 {
		return
	}

	for _, inst := range s.Decoded {
		opA := p.operandState(inst.Src1, false)
		opB := p.operandState(inst.Src2, inst.IsImm)

		archDest := mustRegIndex(inst.Dest)
		oldPhys := s.MapTable[archDest]
		newPhys := s.FreeList.PopFront()
		s.MapTable[archDest] = newPhys
		s.BusyTable[newPhys] = true

		s.ActiveList = append(s.ActiveList, ActiveListEntry{
			LogicalDestination: archDest,
			OldDestination:     oldPhys,
			PC:                 inst.PC,
		})
		s.IntegerQueue = append(s.IntegerQueue, IntegerQueueEntry{
			DestRegister: newPhys,
			OpAIsReady:   opA.ready,
			OpARegTag:    opA.tag,
			OpAValue:     opA.value,
			OpBIsReady:   opB.ready,
			OpBRegTag:    opB.tag,
			OpBValue:     opB.value,
			OpCode:       inst.Op,
			PC:           inst.PC,
		})
	}

	s.Decoded = s.Decoded[:0]
}

// operand is the rename-time view of one source: resolved to a value, or
// waiting on the busy physical register named by the tag.
type operand struct {
	ready bool
	tag   uint32
	value uint64
}

func (p *Pipeline) operandState(token string, isImm bool) operand {
	if isImm {
		value, err := insts.ImmValue(token)
		if err != nil {
			panic(err)
		}
		return operand{ready: true, value: value}
	}

	phys := p.state.MapTable[mustRegIndex(token)]
	if p.state.BusyTable[phys] {
		return operand{tag: phys}
	}
	return operand{ready: true, value: p.state.RegFile.Read(phys)}
}

// mustRegIndex parses an "xN" token. The input contract makes a parse
// failure a simulator bug rather than a recoverable condition.
func mustRegIndex(token string) uint32 {
	idx, err := insts.RegIndex(token)
	if err != nil {
		panic(err)
	}
	return idx
}

// doIssue selects queue entries with both operands ready, oldest (lowest
// PC) first, and binds them to free units in unit-index order. Dispatched
// entries leave the queue; everything else stays.
func (p *Pipeline) doIssue() {
	s := p.state

	ready := make([]int, 0, len(s.IntegerQueue))
	for i, e := range s.IntegerQueue {
		if e.OpAIsReady && e.OpBIsReady {
			ready = append(ready, i)
		}
	}
	sort.Slice(ready, func(a, b int) bool {
		return s.IntegerQueue[ready[a]].PC < s.IntegerQueue[ready[b]].PC
	})

	issued := make(map[int]bool, len(ready))
	next := 0
	for _, unit := range p.units {
		if next >= len(ready) {
			break
		}
		if !unit.IsFree() {
			continue
		}
		unit.Dispatch(s.IntegerQueue[ready[next]])
		issued[ready[next]] = true
		next++
	}
	if len(issued) == 0 {
		return
	}

	kept := make([]IntegerQueueEntry, 0, len(s.IntegerQueue)-len(issued))
	for i, e := range s.IntegerQueue {
		if !issued[i] {
			kept = append(kept, e)
		}
	}
	s.IntegerQueue = kept
}

// doExecute advances every unit by one cycle, then broadcasts the
// forwarding latches: the producing active-list entry is marked done,
// and on success the value is written back and waiting queue operands
// wake up. On an arithmetic exception nothing is written and the
// destination stays busy until rollback frees it.
func (p *Pipeline) doExecute() {
	for _, unit := range p.units {
		unit.Advance()
	}

	s := p.state
	for _, unit := range p.units {
		res, ok := unit.Forwarding()
		if !ok {
			continue
		}

		for i := range s.ActiveList {
			if s.ActiveList[i].PC == res.pc {
				s.ActiveList[i].Done = true
				s.ActiveList[i].Exception = res.exception
				break
			}
		}
		if res.exception {
			continue
		}

		s.RegFile.Write(res.dest, res.value)
		s.BusyTable[res.dest] = false

		for i := range s.IntegerQueue {
			e := &s.IntegerQueue[i]
			if !e.OpAIsReady && e.OpARegTag == res.dest {
				e.OpAIsReady = true
				e.OpAValue = res.value
				e.OpARegTag = 0
			}
			if !e.OpBIsReady && e.OpBRegTag == res.dest {
				e.OpBIsReady = true
				e.OpBValue = res.value
				e.OpBRegTag = 0
			}
		}
	}
}
