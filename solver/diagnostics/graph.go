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

// Package diagnostics introspects the call structure a Solver discovers
// while it runs, not the program the Solver is analyzing. Its input is
// always the (caller method, callee method) edges recorded in a solver's
// own incoming table; it never parses or walks real source. This package
// has no dependency on package solver, so that solver can depend on it
// without an import cycle.
package diagnostics

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
)

// MethodGraph adapts a set of (caller, callee) method edges into a
// gonum/graph.Graph, the way graphutil.CGraph adapts a *callgraph.Graph.
// Node identity is assigned by first-seen order of the methods in edges.
type MethodGraph[M comparable] struct {
	order int
	idOf  map[M]int64
	byID  map[int64]M
	keys  []int64
	edges map[int64]map[int64]bool
}

// NewMethodGraph builds a MethodGraph over the given caller->callee edges.
func NewMethodGraph[M comparable](edges [][2]M) *MethodGraph[M] {
	idOf := make(map[M]int64)
	byID := make(map[int64]M)
	adj := make(map[int64]map[int64]bool)

	nextID := func(m M) int64 {
		if id, ok := idOf[m]; ok {
			return id
		}
		id := int64(len(idOf))
		idOf[m] = id
		byID[id] = m
		adj[id] = map[int64]bool{}
		return id
	}

	for _, e := range edges {
		from := nextID(e[0])
		to := nextID(e[1])
		adj[from][to] = true
	}

	keys := make([]int64, 0, len(idOf))
	for id := range byID {
		keys = append(keys, id)
	}
	slices.Sort(keys)

	return &MethodGraph[M]{
		order: len(byID),
		idOf:  idOf,
		byID:  byID,
		keys:  keys,
		edges: adj,
	}
}

// Order returns one more than the largest node id in the graph. For a graph
// built by NewMethodGraph that is the number of distinct methods.
func (g *MethodGraph[M]) Order() int {
	return g.order
}

// MethodNode wraps a method value so it can satisfy graph.Node.
type MethodNode[M comparable] struct {
	Method M
	id     int64
}

// ID implements graph.Node.
func (n MethodNode[M]) ID() int64 { return n.id }

// Node implements graph.Graph.
func (g *MethodGraph[M]) Node(id int64) graph.Node {
	m, ok := g.byID[id]
	if !ok {
		return nil
	}
	return MethodNode[M]{Method: m, id: id}
}

// methodNodes implements graph.Nodes over a fixed id slice.
type methodNodes[M comparable] struct {
	byID map[int64]M
	ids  []int64
	cur  int
}

func (ns *methodNodes[M]) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	return false
}

func (ns *methodNodes[M]) Len() int { return len(ns.ids) - ns.cur - 1 }

func (ns *methodNodes[M]) Reset() { ns.cur = -1 }

func (ns *methodNodes[M]) Node() graph.Node {
	id := ns.ids[ns.cur]
	return MethodNode[M]{Method: ns.byID[id], id: id}
}

// Nodes implements graph.Graph.
func (g *MethodGraph[M]) Nodes() graph.Nodes {
	return &methodNodes[M]{byID: g.byID, ids: append([]int64{}, g.keys...), cur: -1}
}

// From implements graph.Graph.
func (g *MethodGraph[M]) From(id int64) graph.Nodes {
	var ids []int64
	for to := range g.edges[id] {
		ids = append(ids, to)
	}
	return &methodNodes[M]{byID: g.byID, ids: ids, cur: -1}
}

// HasEdgeBetween implements graph.Graph.
func (g *MethodGraph[M]) HasEdgeBetween(xid, yid int64) bool {
	return g.edges[xid][yid] || g.edges[yid][xid]
}

// Edge implements graph.Graph.
func (g *MethodGraph[M]) Edge(uid, vid int64) graph.Edge {
	if !g.edges[uid][vid] {
		return nil
	}
	return methodEdge[M]{from: g.Node(uid), to: g.Node(vid)}
}

type methodEdge[M comparable] struct {
	from, to graph.Node
}

func (e methodEdge[M]) From() graph.Node         { return e.from }
func (e methodEdge[M]) To() graph.Node           { return e.to }
func (e methodEdge[M]) ReversedEdge() graph.Edge { return methodEdge[M]{from: e.to, to: e.from} }

// Visit implements the yourbasic/graph.Iterator interface: it visits every
// neighbor of v, in unspecified order, calling do for each until do returns
// true (skip the rest) or all neighbors are exhausted.
func (g *MethodGraph[M]) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if _, ok := g.byID[int64(v)]; !ok {
		return false
	}
	for to := range g.edges[int64(v)] {
		if do(int(to), 1) {
			return true
		}
	}
	return false
}

// subgraph restricts g to the methods named by include, keeping node ids
// stable; used internally by FindCycles the same way graphutil.Subgraph is
// used by FindAllElementaryCycles. Because ids are kept, the subgraph's
// Order is the parent's, and ids left out simply have no neighbors.
func (g *MethodGraph[M]) subgraph(include []int64) *MethodGraph[M] {
	byID := make(map[int64]M, len(include))
	edges := make(map[int64]map[int64]bool, len(include))
	for _, id := range include {
		byID[id] = g.byID[id]
		edges[id] = map[int64]bool{}
		for to := range g.edges[id] {
			if _, ok := g.byID[to]; ok {
				if contains(include, to) {
					edges[id][to] = true
				}
			}
		}
	}
	idOf := make(map[M]int64, len(byID))
	for id, m := range byID {
		idOf[m] = id
	}
	keys := append([]int64{}, include...)
	slices.Sort(keys)
	return &MethodGraph[M]{order: g.order, idOf: idOf, byID: byID, keys: keys, edges: edges}
}

func contains(xs []int64, x int64) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
