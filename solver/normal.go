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

// processNormalFlow is spec 4.5: propagate intraprocedural flow along each
// successor of a non-call statement (including an exit statement that also
// has successors).
func (s *Solver[N, M, D]) processNormalFlow(state State[N, D]) {
	n, d2 := state.N, state.D2

	for _, m := range s.icfg.SuccsOf(n) {
		if s.killed.Load() {
			return
		}
		flowFn := s.flowFunctions.NormalFlowFunction(n, m)
		targets := s.computeNormalFlowFunction(flowFn, state)
		for d3 := range targets {
			result := d3
			if s.memoryManager != nil && d2 != d3 {
				var ok bool
				result, ok = s.memoryManager.HandleGeneratedMemoryObject(d2, d3)
				if !ok {
					continue
				}
			}
			s.propagate(state.Derive(m, result), false)
		}
	}
}

// computeNormalFlowFunction runs flowFn and, in SecondPhase, tags every
// result with the source context carried by state.D2.
func (s *Solver[N, M, D]) computeNormalFlowFunction(flowFn FlowFunction[D], state State[N, D]) Facts[D] {
	targets := flowFn(state.D2)
	return s.propagateSourceContext(state, targets)
}

// propagateSourceContext tags every fact in targets with the source context
// carried by state.D2, but only during SecondPhase (spec 4.1, 4.6).
func (s *Solver[N, M, D]) propagateSourceContext(state State[N, D], targets Facts[D]) Facts[D] {
	if s.phase != SecondPhase || len(targets) == 0 {
		return targets
	}
	tagged := make(Facts[D], len(targets))
	for d := range targets {
		tagged.Add(d.DeriveSourceContext(state.D2))
	}
	return tagged
}
