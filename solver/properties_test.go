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
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ifds-go/tabulation/solver/config"
)

// Property 1: edge idempotence. Many goroutines racing to insert the same
// path edge must produce exactly one "newly inserted" result.
func TestEdgeIdempotence(t *testing.T) {
	table := newJumpFunctionTable[string, tFact]()
	edge := pathEdge[string, tFact]{D1: fact("a"), N: "n", D2: fact("b")}

	const workers = 64
	var wg sync.WaitGroup
	var newlyInserted atomic.Int64
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if table.putIfAbsent(edge, fact("b")) {
				newlyInserted.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := newlyInserted.Load(); got != 1 {
		t.Errorf("%d of %d concurrent inserts reported new, want exactly 1", got, workers)
	}
	if table.size() != 1 {
		t.Errorf("table.size() = %d, want 1", table.size())
	}
}

// Property 4: path-length bound. No path edge with PathLength() beyond the
// configured maximum is ever scheduled, even though the underlying flow
// function keeps generating longer and longer facts forever.
func TestPathLengthBound(t *testing.T) {
	const maxLen = 5
	const chainLen = 20

	succs := map[string][]string{}
	normal := map[[2]string]func(tFact) Facts[tFact]{}
	nodes := make([]string, chainLen+1)
	for i := 0; i <= chainLen; i++ {
		nodes[i] = fmt.Sprintf("n%d", i)
	}
	for i := 0; i < chainLen; i++ {
		curr, next := nodes[i], nodes[i+1]
		succs[curr] = []string{next}
		normal[[2]string{curr, next}] = func(d tFact) Facts[tFact] {
			return NewFacts(factAt(d.v, d.depth+1))
		}
	}
	icfg := &graphICFG{
		succs:       succs,
		methodOf:    methodMap("m", nodes...),
		startPoints: map[string][]string{"m": {nodes[0]}},
		exitStmts:   set(nodes[chainLen]),
	}
	ff := &fnFlowFunctions{normal: normal}
	p := &testProblem{icfg: icfg, ff: ff, seeds: map[string]Facts[tFact]{nodes[0]: NewFacts(fact("a"))}}

	opts := config.DefaultOptions()
	opts.MaxAbstractionPathLength = maxLen
	s, err := New[string, string, tFact](p, opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := s.Solve(context.Background()); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	edges := s.jumpFunctions.snapshot()
	maxSeen := -1
	for e := range edges {
		if e.D2.PathLength() > maxLen {
			t.Errorf("edge %+v exceeds MaxAbstractionPathLength=%d", e, maxLen)
		}
		if e.D2.PathLength() > maxSeen {
			maxSeen = e.D2.PathLength()
		}
	}
	if maxSeen != maxLen {
		t.Errorf("deepest propagated fact has depth %d, want exactly %d (the bound itself should be reachable)", maxSeen, maxLen)
	}
}

// Property 6: monotonicity. PropagationCount tracks exactly the number of
// distinct edges newly inserted into the jump-function table — it can only
// grow, and at quiescence it equals the table's size.
func TestPropagationCountMatchesTableSize(t *testing.T) {
	a := fact("a")
	icfg := &graphICFG{
		succs:       map[string][]string{"s": {"n1", "n2"}, "n1": {"e"}, "n2": {"e"}},
		methodOf:    methodMap("m", "s", "n1", "n2", "e"),
		startPoints: map[string][]string{"m": {"s"}},
		exitStmts:   set("e"),
	}
	p := &testProblem{icfg: icfg, ff: &fnFlowFunctions{}, seeds: map[string]Facts[tFact]{"s": NewFacts(a)}}
	s := mustSolve[string, string, tFact](t, p, nil)

	if got, want := s.PropagationCount(), int64(s.jumpFunctions.size()); got != want {
		t.Errorf("PropagationCount() = %d, jumpFunctions.size() = %d, want equal", got, want)
	}
}

// Property 7: determinism modulo concurrency. The same problem solved with
// different worker counts produces the same final table contents.
func TestDeterminismAcrossWorkerCounts(t *testing.T) {
	build := func() *testProblem {
		a := fact("a")
		icfg := &graphICFG{
			succs: map[string][]string{
				"c1-0": {"c1"}, "c2-0": {"c2"}, "r1": {"end1"}, "r2": {"end2"}, "sp": {"ep"},
			},
			calls:       map[string][]string{"c1": {"M"}, "c2": {"M"}},
			returnSites: map[string][]string{"c1": {"r1"}, "c2": {"r2"}},
			startPoints: map[string][]string{"caller1": {"c1-0"}, "caller2": {"c2-0"}, "M": {"sp"}},
			callers:     map[string][]string{"M": {"c1", "c2"}},
			methodOf: merge(
				methodMap("caller1", "c1-0", "c1", "r1", "end1"),
				methodMap("caller2", "c2-0", "c2", "r2", "end2"),
				methodMap("M", "sp", "ep"),
			),
			callStmts: set("c1", "c2"),
			exitStmts: set("ep", "end1", "end2"),
		}
		return &testProblem{icfg: icfg, ff: &fnFlowFunctions{}, seeds: map[string]Facts[tFact]{
			"c1-0": NewFacts(a), "c2-0": NewFacts(a),
		}}
	}

	var reference map[pathEdge[string, tFact]]tFact
	for _, workers := range []int{1, 2, 8} {
		opts := config.DefaultOptions()
		opts.Workers = workers
		s := mustSolve[string, string, tFact](t, build(), opts)
		got := s.jumpFunctions.snapshot()
		if reference == nil {
			reference = got
			continue
		}
		if len(got) != len(reference) {
			t.Fatalf("workers=%d: table has %d edges, reference has %d", workers, len(got), len(reference))
		}
		for e, v := range reference {
			if gv, ok := got[e]; !ok || gv != v {
				t.Errorf("workers=%d: edge %+v = %v, reference had %v", workers, e, gv, v)
			}
		}
	}
}
