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

// processCall is spec 4.6, lines 13-20 of Naeem/Lhotak/Rodriguez: for each
// possible concrete callee, wire the new caller context to any existing
// summary, and explore the callee's body at most once per entry fact; for
// every return site, also propagate the call-to-return flow.
func (s *Solver[N, M, D]) processCall(state State[N, D]) {
	n, d2 := state.N, state.D2

	returnSites := s.icfg.ReturnSitesOfCallAt(n)
	callees := s.icfg.CalleesOfCallAt(n)

	if s.maxCalleesPerCallSite < 0 || len(callees) <= s.maxCalleesPerCallSite {
		for _, callee := range callees {
			if s.killed.Load() {
				return
			}
			if !s.icfg.IsConcrete(callee) {
				continue
			}
			s.processCallee(state, returnSites, callee)
		}
	} else {
		s.logger.Debugf("ifds: call site has %d callees, over the cap of %d; skipping callee exploration",
			len(callees), s.maxCalleesPerCallSite)
	}

	// Lines 17-19: call-to-return flow, independent of how many callees
	// there are.
	for _, r := range returnSites {
		if s.killed.Load() {
			return
		}
		flowFn := s.flowFunctions.CallToReturnFlowFunction(n, r)
		targets := s.computeCallToReturnFlowFunction(flowFn, state)
		for d3 := range targets {
			result := d3
			if s.memoryManager != nil {
				var ok bool
				result, ok = s.memoryManager.HandleGeneratedMemoryObject(d2, d3)
				if !ok {
					continue
				}
			}
			s.propagate(state.Derive(r, result), false)
		}
	}
}

// processCallee handles a single concrete callee of a call statement:
// compute the call-flow function, record the incoming edge, and either
// reuse an existing summary or explore the callee's start points.
func (s *Solver[N, M, D]) processCallee(state State[N, D], returnSites []N, callee M) {
	n, d1, d2 := state.N, state.D1, state.D2

	flowFn := s.flowFunctions.CallFlowFunction(n, callee)
	res := s.computeCallFlowFunction(flowFn, state)
	if len(res) == 0 {
		return
	}

	startPoints := s.icfg.StartPointsOf(callee)
	for d3 := range res {
		result := d3
		if s.memoryManager != nil {
			var ok bool
			result, ok = s.memoryManager.HandleGeneratedMemoryObject(d2, d3)
			if !ok {
				continue
			}
		}
		d3 = result

		// line 15.1 of Naeem/Lhotak/Rodriguez
		flags := s.incoming.add(callee, d3, n, d1, d2)
		if flags&flagNewIncoming == 0 {
			// This (callee, d3) <- (n, d1, d2) triple was already known.
			continue
		}

		// If a summary already exists, reuse it instead of descending.
		if s.applyEndSummaryOnCall(state, returnSites, callee, d3) {
			continue
		}

		if flags&flagNewCallee == 0 {
			// Another worker already started exploring (callee, d3).
			continue
		}

		for _, sp := range startPoints {
			s.propagate(State[N, D]{D1: d3, N: sp, D2: d3}, false)
		}
	}
}

// applyEndSummaryOnCall is spec 4.7, line 15.2: replay every end summary
// already known for (callee, d3) into the caller's return sites. Reports
// whether anything was propagated.
func (s *Solver[N, M, D]) applyEndSummaryOnCall(state State[N, D], returnSites []N, callee M, d3 D) bool {
	n, d1 := state.N, state.D1

	exits := s.endSummary.get(callee, d3)
	if len(exits) == 0 {
		return false
	}

	propagated := false
	for _, exit := range exits {
		eP, d4 := exit.EP, exit.D2
		for _, r := range returnSites {
			flowFn := s.flowFunctions.ReturnFlowFunction(n, callee, eP, r)
			synth := State[N, D]{D1: d3, N: r, D2: d4}
			targets := s.computeReturnFlowFunction(flowFn, synth)
			for d5 := range targets {
				result := d5
				if s.memoryManager != nil {
					var ok bool
					result, ok = s.memoryManager.HandleGeneratedMemoryObject(d4, d5)
					if !ok {
						continue
					}
				}
				s.propagate(State[N, D]{D1: d1, N: r, D2: result}, false)
				propagated = true
			}
		}
	}
	return propagated
}

func (s *Solver[N, M, D]) computeCallFlowFunction(flowFn FlowFunction[D], state State[N, D]) Facts[D] {
	return s.propagateSourceContext(state, flowFn(state.D2))
}

func (s *Solver[N, M, D]) computeCallToReturnFlowFunction(flowFn FlowFunction[D], state State[N, D]) Facts[D] {
	return s.propagateSourceContext(state, flowFn(state.D2))
}

func (s *Solver[N, M, D]) computeReturnFlowFunction(flowFn FlowFunction[D], state State[N, D]) Facts[D] {
	return s.propagateSourceContext(state, flowFn(state.D2))
}
