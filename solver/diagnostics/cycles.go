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

package diagnostics

import (
	"github.com/yourbasic/graph"
	"golang.org/x/exp/slices"
)

// FindCycles returns every elementary cycle among the given (caller,
// callee) method edges, using Johnson's algorithm for finding all
// elementary circuits of a directed graph. edges is expected to come from
// a solver's own incoming table, not from a real program's call graph, so
// a cycle found here means the solver discovered mutual recursion while
// tabulating, not that the analyzed program necessarily contains it.
func FindCycles[M comparable](edges [][2]M) [][]M {
	g := NewMethodGraph(edges)
	ids := findElementaryCycleIDs(g)

	out := make([][]M, 0, len(ids))
	for _, cycle := range ids {
		methods := make([]M, 0, len(cycle))
		for _, id := range cycle {
			methods = append(methods, g.byID[id])
		}
		out = append(out, methods)
	}
	return out
}

type cycleState struct {
	blocked map[int64]bool
	blist   map[int64]map[int64]bool
	stack   []int64
	cycles  [][]int64
}

func findElementaryCycleIDs[M comparable](g *MethodGraph[M]) [][]int64 {
	s := &cycleState{
		blocked: map[int64]bool{},
		blist:   map[int64]map[int64]bool{},
		stack:   []int64{},
		cycles:  [][]int64{},
	}
	nodeID := 0
	for nodeID < len(g.keys) {
		fg := g.subgraph(g.keys[nodeID:])
		components := graph.StrongComponents(fg)
		foundC2 := false
		for _, component := range components {
			if len(component) >= 2 {
				foundC2 = true
				slices.Sort(component)
				node := component[0]
				nodeID = node
				s.stack = []int64{}
				s.blocked = map[int64]bool{}
				s.blist = map[int64]map[int64]bool{}
				circuit(s, int64(node), int64(node), fg)
				nodeID++
			}
		}
		if !foundC2 {
			return s.cycles
		}
	}
	return s.cycles
}

func (s *cycleState) unblock(u int64) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		if s.blocked[w] {
			s.unblock(w)
		}
	}
}

func circuit[M comparable](s *cycleState, v int64, i int64, g *MethodGraph[M]) bool {
	f := false
	s.stack = append(s.stack, v)
	s.blocked[v] = true
	for w := range g.edges[v] {
		if w == i {
			stackCopy := make([]int64, len(s.stack))
			copy(stackCopy, s.stack)
			stackCopy = append(stackCopy, w)
			s.cycles = append(s.cycles, stackCopy)
			f = true
		} else if !s.blocked[w] {
			if circuit(s, w, i, g) {
				f = true
			}
		}
	}

	if f {
		s.unblock(v)
	} else {
		for w := range g.edges[v] {
			m := s.blist[w]
			if m != nil {
				s.blist[w][v] = true
			} else {
				s.blist[w] = map[int64]bool{v: true}
			}
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return f
}
