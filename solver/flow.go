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

// FlowFunction computes, from the fact holding at the source of an edge in
// the exploded super-graph, the set of facts that hold at its target.
type FlowFunction[D comparable] func(d D) Facts[D]

// FlowFunctions supplies the four flow functions the tabulation algorithm
// needs at each kind of statement. This package defines no lattice and no
// flow functions of its own: FlowFunctions is implemented entirely by the
// client analysis (e.g. a taint tracker).
type FlowFunctions[N comparable, M comparable, D Fact[D]] interface {
	// NormalFlowFunction is used for non-call, non-exit statements, and for
	// the intraprocedural part of statements such as "throw" that are also
	// exit statements.
	NormalFlowFunction(curr, succ N) FlowFunction[D]

	// CallFlowFunction maps a fact at a call site to the facts that hold at
	// the start of callee.
	CallFlowFunction(callSite N, callee M) FlowFunction[D]

	// ReturnFlowFunction maps a fact at exitStmt (the callee's exit) to the
	// facts that hold at returnSite, in the context of callSite.
	ReturnFlowFunction(callSite N, callee M, exitStmt, returnSite N) FlowFunction[D]

	// CallToReturnFlowFunction maps a fact at a call site directly to the
	// facts that hold at returnSite, without entering the callee. Used for
	// effects of the call that do not go through the callee's summary
	// (e.g. globals the callee cannot affect, or calls skipped under
	// MaxCalleesPerCallSite).
	CallToReturnFlowFunction(callSite, returnSite N) FlowFunction[D]
}
