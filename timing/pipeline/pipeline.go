// Package pipeline provides the cycle-accurate model of an out-of-order
// superscalar integer pipeline with register renaming, a unified issue
// queue, parallel execution units, in-order commit, and precise
// exception handling.
//
// Within a cycle the stages run in reverse pipeline order (commit,
// execute, issue, rename/dispatch, fetch/decode) so that a value written
// by an upstream stage is not consumed downstream in the same cycle;
// this models edge-triggered latches without double-buffering. Commit
// runs first and may stall the rest of the pipeline for the cycle while
// exception state is torn down.
package pipeline

import (
	"github.com/sarchlab/o3sim/insts"
	"github.com/sarchlab/o3sim/timing/config"
)

// Pipeline simulates a program cycle by cycle.
type Pipeline struct {
	program []string
	decoder *insts.Decoder
	cfg     *config.Config

	state *State
	units []*ExecUnit

	stats Stats
}

// PipelineOption is a functional option for configuring the Pipeline.
type PipelineOption func(*Pipeline)

// WithConfig sets the machine description. The default is
// config.DefaultConfig().
func WithConfig(cfg *config.Config) PipelineOption {
	return func(p *Pipeline) {
		p.cfg = cfg.Clone()
	}
}

// NewPipeline creates a pipeline in the reset state for the given
// program, an ordered sequence of instruction lines.
func NewPipeline(program []string, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		program: program,
		decoder: insts.NewDecoder(),
		cfg:     config.DefaultConfig(),
		state:   NewState(),
	}

	for _, opt := range opts {
		opt(p)
	}

	p.units = make([]*ExecUnit, p.cfg.IssueUnits)
	for i := range p.units {
		p.units[i] = NewExecUnit()
	}

	return p
}

// State exposes the simulator state for inspection.
func (p *Pipeline) State() *State {
	return p.state
}

// Snapshot captures the current per-cycle record.
func (p *Pipeline) Snapshot() Snapshot {
	return p.state.Snapshot()
}

// Done reports whether the simulation has finished: the pipeline is
// drained and either the program ran to completion or exception handling
// has finished its cooldown cycle.
func (p *Pipeline) Done() bool {
	s := p.state
	if len(s.ActiveList) > 0 || len(s.IntegerQueue) > 0 || len(s.Decoded) > 0 {
		return false
	}

	if s.PC == ExceptionVector {
		return !s.Exception
	}
	return s.PC >= uint64(len(p.program))
}

// Tick advances the pipeline by one cycle. Commit runs first; if it
// reports a stall (exception entry or rollback in progress) the
// remaining stages are skipped for this cycle.
func (p *Pipeline) Tick() {
	p.stats.Cycles++

	stalled := p.doCommit()
	if stalled {
		return
	}

	p.doExecute()
	p.doIssue()
	p.doRenameDispatch()
	p.doFetchDecode()
}

// Run simulates until Done and returns the snapshot trace: one entry for
// the reset state plus one per simulated cycle.
func (p *Pipeline) Run() []Snapshot {
	trace := []Snapshot{p.Snapshot()}
	for !p.Done() {
		p.Tick()
		trace = append(trace, p.Snapshot())
	}
	return trace
}

// Stats holds pipeline run statistics. They are observability only and
// never feed back into simulated behavior.
type Stats struct {
	// Cycles is the number of simulated cycles.
	Cycles uint64
	// Instructions is the number of instructions retired.
	Instructions uint64
	// BackpressureStalls counts cycles rename rejected its decode group.
	BackpressureStalls uint64
	// Exceptions counts entries into the precise exception protocol.
	Exceptions uint64
	// Squashed counts instructions rolled back during exception recovery.
	Squashed uint64
}

// Stats returns the run statistics.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// CPI returns cycles per retired instruction, or 0 if nothing retired.
func (s Stats) CPI() float64 {
	if s.Instructions == 0 {
		return 0
	}
	return float64(s.Cycles) / float64(s.Instructions)
}
