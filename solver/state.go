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

// State is a path edge <D1, N, D2>: "at node N, fact D2 holds along a path
// that entered the containing method with fact D1". It is the fundamental
// unit of work processed by the solver.
type State[N comparable, D Fact[D]] struct {
	D1 D
	N  N
	D2 D
}

// Derive returns the state <s.D1, n, d>, preserving the method-entry fact.
func (s State[N, D]) Derive(n N, d D) State[N, D] {
	return State[N, D]{D1: s.D1, N: n, D2: d}
}

// pathEdge is the de-duplication key for State, used by the jump-function
// table. It is structurally identical to State, but kept as its own type so
// that the table's key shape can never be confused with the live work item.
type pathEdge[N comparable, D comparable] struct {
	D1 D
	N  N
	D2 D
}

func edgeOf[N comparable, D Fact[D]](s State[N, D]) pathEdge[N, D] {
	return pathEdge[N, D]{D1: s.D1, N: s.N, D2: s.D2}
}
