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

// processExit is spec 4.8, lines 21-32: register the end summary and, if
// new, replay it into every already-recorded caller. Also handles
// unbalanced returns when followReturnsPastSeeds is set.
func (s *Solver[N, M, D]) processExit(state State[N, D]) {
	n, d1, d2 := state.N, state.D1, state.D2
	method := s.icfg.MethodOf(n)

	if !s.endSummary.add(method, d1, n, d2) {
		// Another worker already propagated this exact (method, d1, n, d2).
		return
	}

	callers := s.incoming.get(method, d1)
	for _, caller := range callers {
		if s.killed.Load() {
			return
		}
		c := caller.CallSite
		for _, r := range s.icfg.ReturnSitesOfCallAt(c) {
			flowFn := s.flowFunctions.ReturnFlowFunction(c, method, n, r)
			targets := s.computeReturnFlowFunction(flowFn, state)
			if len(targets) == 0 {
				continue
			}
			for callerEntry := range caller.Facts {
				for d5 := range targets {
					result := d5
					if s.memoryManager != nil {
						var ok bool
						result, ok = s.memoryManager.HandleGeneratedMemoryObject(d2, d5)
						if !ok {
							continue
						}
					}
					s.propagate(State[N, D]{D1: callerEntry, N: r, D2: result}, false)
				}
			}
		}
	}

	// Unbalanced return: the zero fact escaped method with no recorded
	// caller. Propagate past the seed, into every caller of method, if the
	// problem asked for it.
	if s.followReturnsPastSeeds && d1 == s.zero && len(callers) == 0 {
		methodCallers := s.icfg.CallersOf(method)
		for _, c := range methodCallers {
			if s.killed.Load() {
				return
			}
			for _, r := range s.icfg.ReturnSitesOfCallAt(c) {
				flowFn := s.flowFunctions.ReturnFlowFunction(c, method, n, r)
				synth := State[N, D]{D1: s.zero, N: r, D2: d2}
				targets := s.computeReturnFlowFunction(flowFn, synth)
				for d5 := range targets {
					result := d5
					if s.memoryManager != nil {
						var ok bool
						result, ok = s.memoryManager.HandleGeneratedMemoryObject(d2, d5)
						if !ok {
							continue
						}
					}
					s.propagate(State[N, D]{D1: s.zero, N: r, D2: result}, true)
				}
			}
		}
		if len(methodCallers) == 0 {
			// No callers at all: still run the return-flow function once so
			// that a side-effecting implementation still fires, then
			// discard its outputs.
			var noCallSite, noReturnSite N
			flowFn := s.flowFunctions.ReturnFlowFunction(noCallSite, method, n, noReturnSite)
			flowFn(d2)
		}
	}
}
