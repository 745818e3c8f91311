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

// propagate is spec 4.9: rewrite through the memory manager, drop if the
// path is too long, then insert-if-absent into the jump-function table and
// schedule processing exactly when the insertion was new.
//
// isUnbalancedReturn is exposed purely for instrumentation (see
// SetOnUnbalancedReturn on Solver); it plays no role in the propagation logic
// itself, matching the original solver's own note that the flag "is not
// used within this implementation but may be useful for subclasses".
func (s *Solver[N, M, D]) propagate(state State[N, D], isUnbalancedReturn bool) {
	d1, d2 := state.D1, state.D2

	if s.memoryManager != nil {
		var ok1, ok2 bool
		d1, ok1 = s.memoryManager.HandleMemoryObject(d1)
		d2, ok2 = s.memoryManager.HandleMemoryObject(d2)
		if !ok1 || !ok2 {
			return
		}
		state = State[N, D]{D1: d1, N: state.N, D2: d2}
	}

	if s.maxAbstractionPathLength >= 0 && d2.PathLength() > s.maxAbstractionPathLength {
		return
	}

	if isUnbalancedReturn && s.onUnbalancedReturn != nil {
		s.onUnbalancedReturn(state)
	}

	edge := edgeOf(state)
	if s.jumpFunctions.putIfAbsent(edge, d2) {
		s.scheduleEdgeProcessing(state)
	}
}

// scheduleEdgeProcessing dispatches the processing of state to the worklist
// executor. It silently drops the task if the solver has been killed or is
// shutting down, per spec 4.3.
func (s *Solver[N, M, D]) scheduleEdgeProcessing(state State[N, D]) {
	if s.killed.Load() || s.exec == nil {
		return
	}
	s.propagationCount.Add(1)
	s.exec.submit(func() error {
		return s.processTask(state)
	})
}

// processTask is spec 4.4, the dispatcher: call statements go to
// processCall; exit statements go to processExit (and, if they also have
// successors, to processNormalFlow too); everything else with successors
// goes to processNormalFlow.
func (s *Solver[N, M, D]) processTask(state State[N, D]) error {
	n := state.N
	if s.icfg.IsCallStmt(n) {
		s.processCall(state)
		return nil
	}
	if s.icfg.IsExitStmt(n) {
		s.processExit(state)
	}
	if len(s.icfg.SuccsOf(n)) > 0 {
		s.processNormalFlow(state)
	}
	return nil
}
