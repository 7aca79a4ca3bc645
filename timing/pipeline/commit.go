package pipeline

// doCommit retires instructions in order, or unwinds them during
// exception recovery. It returns true when the rest of the pipeline must
// be stalled for this cycle.
//
// In exception mode, up to CommitWidth entries are popped from the tail
// of the active list each cycle; each pop restores the old register
// mapping and returns the renamed destination to the free list. Once the
// list is empty the exception flag clears and one cooldown cycle runs
// with fetch still parked at the exception vector.
//
// In normal mode, up to CommitWidth done entries retire from the head.
// A done entry carrying an exception is not popped: commit records the
// faulting PC, redirects fetch to the exception vector, clears the
// decoded buffer and the integer queue, resets every execution unit, and
// stalls; the entry is rolled back on subsequent cycles together with
// everything younger.
func (p *Pipeline) doCommit() bool {
	s := p.state

	if s.Exception {
		if len(s.ActiveList) == 0 {
			s.Exception = false
			return false
		}

		for i := 0; i < p.cfg.CommitWidth && len(s.ActiveList) > 0; i++ {
			entry := s.ActiveList[len(s.ActiveList)-1]
			s.ActiveList = s.ActiveList[:len(s.ActiveList)-1]

			cur := s.MapTable[entry.LogicalDestination]
			s.MapTable[entry.LogicalDestination] = entry.OldDestination
			s.FreeList.PushBack(cur)
			s.BusyTable[cur] = false
			p.stats.Squashed++
		}
		return true
	}

	for i := 0; i < p.cfg.CommitWidth && len(s.ActiveList) > 0; i++ {
		head := s.ActiveList[0]
		if !head.Done {
			break
		}

		if head.Exception {
			s.ExceptionPC = head.PC
			s.PC = ExceptionVector
			s.Decoded = s.Decoded[:0]
			s.IntegerQueue = s.IntegerQueue[:0]
			for _, unit := range p.units {
				unit.Reset()
			}
			s.Exception = true
			p.stats.Exceptions++
			return true
		}

		s.ActiveList = s.ActiveList[1:]
		s.FreeList.PushBack(head.OldDestination)
		p.stats.Instructions++
	}
	return false
}
