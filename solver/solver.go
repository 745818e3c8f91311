// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package solver

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/ifds-go/tabulation/solver/config"
	"github.com/pkg/errors"
)

// Solver runs the IFDS tabulation fixed-point computation over a Problem.
// The zero value is not usable; construct with New.
type Solver[N comparable, M comparable, D Fact[D]] struct {
	problem       Problem[N, M, D]
	icfg          ICFG[N, M]
	flowFunctions FlowFunctions[N, M, D]
	zero          D
	seeds         map[N]Facts[D]

	followReturnsPastSeeds bool

	jumpFunctions *jumpFunctionTable[N, D]
	endSummary    *endSummaryTable[N, M, D]
	incoming      *incomingTable[N, M, D]

	memoryManager MemoryManager[D]

	maxCalleesPerCallSite     int
	maxAbstractionPathLength  int
	maxJoinPointAbstractions  int
	predecessorShorteningMode bool

	phase    Phase
	solverID bool

	propagationCount atomic.Int64
	killed           atomic.Bool

	terminationMu     sync.Mutex
	terminationReason TerminationReason
	terminated        bool

	listenersMu sync.Mutex
	listeners   []StatusListener[N, M, D]

	logger *config.LogGroup

	exec    *executor
	workers int

	// onUnbalancedReturn, if set, is invoked from propagate for every state
	// reached via an unbalanced return. It exists purely for instrumentation
	// and tests; it plays no role in the fixed-point computation itself.
	onUnbalancedReturn func(State[N, D])
}

// New validates problem and builds a Solver ready to run. opts may be nil,
// in which case config.DefaultOptions() is used.
func New[N comparable, M comparable, D Fact[D]](problem Problem[N, M, D], opts *config.Options) (*Solver[N, M, D], error) {
	if problem == nil {
		return nil, &ConfigError{Field: "problem", Reason: "must not be nil"}
	}
	icfg := problem.ICFG()
	if icfg == nil {
		return nil, &ConfigError{Field: "icfg", Reason: "Problem.ICFG() must not return nil"}
	}
	flowFunctions := problem.FlowFunctions()
	if flowFunctions == nil {
		return nil, &ConfigError{Field: "flowFunctions", Reason: "Problem.FlowFunctions() must not return nil"}
	}
	if opts == nil {
		opts = config.DefaultOptions()
	}

	s := &Solver[N, M, D]{
		problem:                  problem,
		icfg:                     icfg,
		flowFunctions:            flowFunctions,
		zero:                     problem.ZeroValue(),
		seeds:                    problem.InitialSeeds(),
		followReturnsPastSeeds:   problem.FollowReturnsPastSeeds(),
		jumpFunctions:            newJumpFunctionTable[N, D](),
		endSummary:               newEndSummaryTable[N, M, D](),
		incoming:                 newIncomingTable[N, M, D](),
		maxCalleesPerCallSite:    opts.MaxCalleesPerCallSite,
		maxAbstractionPathLength: opts.MaxAbstractionPathLength,
		maxJoinPointAbstractions: opts.MaxJoinPointAbstractions,
		phase:                    FirstPhase,
		solverID:                 true,
		logger:                   config.NewLogGroup(opts),
		workers:                  opts.Workers,
	}
	return s, nil
}

// Solve runs the fixed-point computation to quiescence: it clears any prior
// kill flag, purges summaries carrying a source context if running in
// SecondPhase, notifies listeners, submits every initial seed, and blocks
// until the worklist executor drains, or ctx is cancelled, or ForceTerminate
// is called. A task error is wrapped as TaskError; forced termination is not
// an error.
func (s *Solver[N, M, D]) Solve(ctx context.Context) error {
	s.killed.Store(false)
	s.terminationMu.Lock()
	s.terminated = false
	s.terminationReason = TerminationReasonNone
	s.terminationMu.Unlock()

	if s.phase == SecondPhase {
		s.endSummary.removeWithSourceContext()
	}

	s.notifyStarted()

	s.exec = newExecutor(ctx, s.workers)
	s.submitInitialSeeds()

	err := s.exec.wait()
	s.exec = nil

	s.terminationMu.Lock()
	s.terminated = true
	reason := s.terminationReason
	s.terminationMu.Unlock()

	if err == nil {
		s.logCallCycles()
	}

	s.notifyTerminated()

	if err != nil {
		return errors.Wrap(&TaskError{Err: err}, "ifds: task failed")
	}
	if reason != TerminationReasonNone {
		s.logger.Infof("ifds: solver terminated early: %s", reason)
	}
	s.logger.Infof("ifds: solver reached quiescence after %d propagations", s.propagationCount.Load())
	return nil
}

// submitInitialSeeds propagates every (n, d) pair in the problem's seed map
// as a self-loop path edge <zero, n, d>, per spec 4.2.
func (s *Solver[N, M, D]) submitInitialSeeds() {
	for n, ds := range s.seeds {
		for _, d := range ds.Slice() {
			s.propagate(State[N, D]{D1: s.zero, N: n, D2: d}, false)
		}
	}
}

// ForceTerminate records reason and asks the executor to stop scheduling new
// work. In-flight tasks still run to completion; Solve returns nil once they
// drain.
func (s *Solver[N, M, D]) ForceTerminate(reason TerminationReason) {
	s.terminationMu.Lock()
	s.terminationReason = reason
	s.terminationMu.Unlock()
	s.killed.Store(true)
}

// IsKilled reports whether ForceTerminate has been called on this run.
func (s *Solver[N, M, D]) IsKilled() bool {
	return s.killed.Load()
}

// IsTerminated reports whether Solve has returned.
func (s *Solver[N, M, D]) IsTerminated() bool {
	s.terminationMu.Lock()
	defer s.terminationMu.Unlock()
	return s.terminated
}

// TerminationReason reports the reason recorded by ForceTerminate. The
// second return value is false if ForceTerminate has not been called since
// the last Solve start or Reset; it is true as soon as a reason is
// recorded, even while Solve is still draining.
func (s *Solver[N, M, D]) TerminationReason() (TerminationReason, bool) {
	s.terminationMu.Lock()
	defer s.terminationMu.Unlock()
	return s.terminationReason, s.terminationReason != TerminationReasonNone
}

// Reset clears the kill flag and termination state, leaving the
// jump-function, end-summary, and incoming-call tables and the propagation
// counter untouched. This is what lets a two-phase run build SecondPhase on
// top of the summaries FirstPhase already computed: switch phase with
// SetSolverPhase, call Reset, then Solve again over the same tables.
func (s *Solver[N, M, D]) Reset() {
	s.killed.Store(false)
	s.terminationMu.Lock()
	s.terminated = false
	s.terminationReason = TerminationReasonNone
	s.terminationMu.Unlock()
}

// AddStatusListener registers l to be notified when this Solver starts and
// terminates. It is safe to call during Solve; a listener added after Solve
// has notified its start is only notified of that run's termination.
func (s *Solver[N, M, D]) AddStatusListener(l StatusListener[N, M, D]) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Solver[N, M, D]) notifyStarted() {
	s.listenersMu.Lock()
	ls := append([]StatusListener[N, M, D]{}, s.listeners...)
	s.listenersMu.Unlock()
	for _, l := range ls {
		l.NotifySolverStarted(s)
	}
}

func (s *Solver[N, M, D]) notifyTerminated() {
	s.listenersMu.Lock()
	ls := append([]StatusListener[N, M, D]{}, s.listeners...)
	s.listenersMu.Unlock()
	for _, l := range ls {
		l.NotifySolverTerminated(s)
	}
}

// SetMaxCalleesPerCallSite overrides the callee-cap tunable; negative
// disables the cap.
func (s *Solver[N, M, D]) SetMaxCalleesPerCallSite(n int) {
	s.maxCalleesPerCallSite = n
}

// SetMaxAbstractionPathLength overrides the path-length tunable; negative
// disables the cap.
func (s *Solver[N, M, D]) SetMaxAbstractionPathLength(n int) {
	s.maxAbstractionPathLength = n
}

// SetMaxJoinPointAbstractions stores n but nothing currently reads it; it is
// reserved for a future join-point abstraction cap.
func (s *Solver[N, M, D]) SetMaxJoinPointAbstractions(n int) {
	s.maxJoinPointAbstractions = n
}

// SetPredecessorShorteningMode is reserved; it accepts a mode but nothing
// currently reads it.
func (s *Solver[N, M, D]) SetPredecessorShorteningMode(mode bool) {
	s.predecessorShorteningMode = mode
}

// SetMemoryManager installs a MemoryManager used to rewrite facts as they
// are produced and propagated. Pass nil to disable rewriting.
func (s *Solver[N, M, D]) SetMemoryManager(m MemoryManager[D]) {
	s.memoryManager = m
}

// SetSolverPhase sets whether source-context tagging is active.
func (s *Solver[N, M, D]) SetSolverPhase(p Phase) {
	s.phase = p
}

// SetSolverID records whether this solver instance runs the forward (true)
// or backward (false) direction of a bidirectional problem. It has no
// effect on the tabulation itself, and Solver exposes no accessor for the
// stored value.
func (s *Solver[N, M, D]) SetSolverID(forward bool) {
	s.solverID = forward
}

// EndSummary returns the solver's end-summary table, for inspection after
// Solve returns.
func (s *Solver[N, M, D]) EndSummary() *endSummaryTable[N, M, D] {
	return s.endSummary
}

// Incoming returns the solver's incoming-call table, for inspection after
// Solve returns.
func (s *Solver[N, M, D]) Incoming() *incomingTable[N, M, D] {
	return s.incoming
}

// JumpFunctions returns the solver's jump-function table, for inspection
// after Solve returns.
func (s *Solver[N, M, D]) JumpFunctions() *jumpFunctionTable[N, D] {
	return s.jumpFunctions
}

// PropagationCount reports how many path edges have been scheduled for
// processing so far.
func (s *Solver[N, M, D]) PropagationCount() int64 {
	return s.propagationCount.Load()
}

// SetOnUnbalancedReturn installs a hook invoked for every state reached via
// an unbalanced return. It is intended for tests and diagnostics.
func (s *Solver[N, M, D]) SetOnUnbalancedReturn(f func(State[N, D])) {
	s.onUnbalancedReturn = f
}
