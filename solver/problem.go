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

// Problem bundles everything a client must supply to set up a solver: the
// zero fact, the ICFG, the flow functions and the initial seeds.
type Problem[N comparable, M comparable, D Fact[D]] interface {
	// ZeroValue returns the designated zero fact Z, representing
	// "no information / unconditional".
	ZeroValue() D

	// ICFG returns the interprocedural control-flow graph to analyze.
	ICFG() ICFG[N, M]

	// FlowFunctions returns the flow functions of the analysis.
	FlowFunctions() FlowFunctions[N, M, D]

	// InitialSeeds maps each seed node to the facts that hold there before
	// any propagation.
	InitialSeeds() map[N]Facts[D]

	// FollowReturnsPastSeeds reports whether returns out of a method
	// reached with the zero fact and no recorded incoming call should be
	// propagated past the analysis's seeds (the "unbalanced return" case).
	FollowReturnsPastSeeds() bool
}
