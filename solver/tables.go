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
	"sync"

	"golang.org/x/exp/maps"
)

// jumpFunctionTable is the direction-owned set of path edges already
// propagated (spec: "Two independent jump-function tables exist — one per
// solver direction"). Insertion is insert-if-absent: the boolean return
// tells the caller whether this is the first time the edge has been seen,
// which is the only signal propagate needs (I1).
type jumpFunctionTable[N comparable, D Fact[D]] struct {
	mu sync.Mutex
	m  map[pathEdge[N, D]]D
}

func newJumpFunctionTable[N comparable, D Fact[D]]() *jumpFunctionTable[N, D] {
	return &jumpFunctionTable[N, D]{m: make(map[pathEdge[N, D]]D)}
}

// putIfAbsent inserts edge with value d2 if absent, and reports whether it
// was newly inserted.
func (t *jumpFunctionTable[N, D]) putIfAbsent(edge pathEdge[N, D], d2 D) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.m[edge]; ok {
		return false
	}
	t.m[edge] = d2
	return true
}

// size returns the number of distinct path edges recorded.
func (t *jumpFunctionTable[N, D]) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.m)
}

// Size returns the number of distinct path edges recorded.
func (t *jumpFunctionTable[N, D]) Size() int {
	return t.size()
}

// snapshot returns a copy of the recorded edges, safe to inspect without
// holding the table's lock.
func (t *jumpFunctionTable[N, D]) snapshot() map[pathEdge[N, D]]D {
	t.mu.Lock()
	defer t.mu.Unlock()
	return maps.Clone(t.m)
}

// methodFact is the (method, fact) key shared by the end-summary and
// incoming tables.
type methodFact[M comparable, D comparable] struct {
	M M
	D D
}

// exitFact is a (exit node, exit fact) pair, the value recorded per
// (method, entry-fact) in the end-summary table.
type exitFact[N comparable, D comparable] struct {
	EP N
	D2 D
}

// endSummaryTable is the per-(method, entry-fact) set of discovered exits.
type endSummaryTable[N comparable, M comparable, D Fact[D]] struct {
	mu sync.Mutex
	m  map[methodFact[M, D]]map[exitFact[N, D]]struct{}
}

func newEndSummaryTable[N comparable, M comparable, D Fact[D]]() *endSummaryTable[N, M, D] {
	return &endSummaryTable[N, M, D]{m: make(map[methodFact[M, D]]map[exitFact[N, D]]struct{})}
}

// add records that method m, entered with fact d1, can exit at eP with
// fact d2. Reports whether this is a new entry (addEndSummary in spec 4.8).
func (t *endSummaryTable[N, M, D]) add(m M, d1 D, eP N, d2 D) bool {
	key := methodFact[M, D]{M: m, D: d1}
	entry := exitFact[N, D]{EP: eP, D2: d2}
	t.mu.Lock()
	defer t.mu.Unlock()
	set, ok := t.m[key]
	if !ok {
		set = make(map[exitFact[N, D]]struct{})
		t.m[key] = set
	}
	if _, ok := set[entry]; ok {
		return false
	}
	set[entry] = struct{}{}
	return true
}

// get returns the exits recorded for (m, d1), or nil if none.
func (t *endSummaryTable[N, M, D]) get(m M, d1 D) []exitFact[N, D] {
	key := methodFact[M, D]{M: m, D: d1}
	t.mu.Lock()
	defer t.mu.Unlock()
	set := t.m[key]
	if len(set) == 0 {
		return nil
	}
	out := make([]exitFact[N, D], 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	return out
}

// removeWithSourceContext drops every (eP, d2) entry whose d2 already
// carries a source context, per the driver's SECOND_PHASE reset step.
func (t *endSummaryTable[N, M, D]) removeWithSourceContext() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for key, set := range t.m {
		for entry := range set {
			if entry.D2.HasSourceContext() {
				delete(set, entry)
			}
		}
		if len(set) == 0 {
			delete(t.m, key)
		}
	}
}

// size returns the number of (method, entry-fact) keys with at least one
// recorded exit.
func (t *endSummaryTable[N, M, D]) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.m)
}

// Size returns the number of (method, entry-fact) keys with at least one
// recorded exit.
func (t *endSummaryTable[N, M, D]) Size() int {
	return t.size()
}

const (
	flagNewIncoming = 0x1
	flagNewCallee   = 0x2
)

// incomingTable is the per-(callee method, callee-entry-fact) map from call
// site to (caller-entry fact -> call-site fact).
type incomingTable[N comparable, M comparable, D Fact[D]] struct {
	mu sync.Mutex
	m  map[methodFact[M, D]]map[N]map[D]D
}

func newIncomingTable[N comparable, M comparable, D Fact[D]]() *incomingTable[N, M, D] {
	return &incomingTable[N, M, D]{m: make(map[methodFact[M, D]]map[N]map[D]D)}
}

// add records that call site n, in a caller entered with fact d1, calls
// method m with fact d3, producing call-site fact d2. Returns a bitmask of
// flagNewIncoming (this exact (n, d1, d2) triple is new) and flagNewCallee
// (this is the first time (m, d3) has been seen at all), matching
// addIncoming in spec 4.6.
func (t *incomingTable[N, M, D]) add(m M, d3 D, n N, d1 D, d2 D) int {
	key := methodFact[M, D]{M: m, D: d3}
	t.mu.Lock()
	defer t.mu.Unlock()

	flags := 0
	byCallSite, ok := t.m[key]
	if !ok {
		byCallSite = make(map[N]map[D]D)
		t.m[key] = byCallSite
		flags |= flagNewCallee
	}
	byCallerEntry, ok := byCallSite[n]
	if !ok {
		byCallerEntry = make(map[D]D)
		byCallSite[n] = byCallerEntry
	}
	if _, ok := byCallerEntry[d1]; !ok {
		byCallerEntry[d1] = d2
		flags |= flagNewIncoming
	}
	return flags
}

// incomingCaller pairs a call site with the caller-entry/call-site fact
// pairs recorded for it.
type incomingCaller[N comparable, D comparable] struct {
	CallSite N
	Facts    map[D]D // caller-entry fact -> call-site fact
}

// get returns the recorded callers of (m, d3), or nil if none.
func (t *incomingTable[N, M, D]) get(m M, d3 D) []incomingCaller[N, D] {
	key := methodFact[M, D]{M: m, D: d3}
	t.mu.Lock()
	defer t.mu.Unlock()
	byCallSite, ok := t.m[key]
	if !ok || len(byCallSite) == 0 {
		return nil
	}
	out := make([]incomingCaller[N, D], 0, len(byCallSite))
	for n, facts := range byCallSite {
		out = append(out, incomingCaller[N, D]{CallSite: n, Facts: maps.Clone(facts)})
	}
	return out
}

// methodEdges returns the distinct (caller method, callee method) pairs
// recorded so far, derived purely from the keys and call sites already in
// the table. Used by package diagnostics to look for recursive call
// cycles; it builds nothing that the ICFG itself wasn't asked to resolve.
func (t *incomingTable[N, M, D]) methodEdges(methodOf func(N) M) [][2]M {
	t.mu.Lock()
	defer t.mu.Unlock()
	seen := make(map[[2]M]struct{})
	var out [][2]M
	for key, byCallSite := range t.m {
		for n := range byCallSite {
			edge := [2]M{methodOf(n), key.M}
			if _, ok := seen[edge]; !ok {
				seen[edge] = struct{}{}
				out = append(out, edge)
			}
		}
	}
	return out
}

// size returns the number of (method, entry-fact) keys with at least one
// recorded caller.
func (t *incomingTable[N, M, D]) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.m)
}

// Size returns the number of (method, entry-fact) keys with at least one
// recorded caller.
func (t *incomingTable[N, M, D]) Size() int {
	return t.size()
}
