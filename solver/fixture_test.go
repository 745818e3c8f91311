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

// Test fixtures: a tiny hand-built Fact, ICFG and FlowFunctions, sized and
// shaped exactly like the end-to-end scenarios in spec §8 (S1-S6). Every
// scenario test in this package builds a graphICFG/fnFlowFunctions pair
// rather than pulling in a real program, since ICFG construction is this
// module's own Non-goal.

// tFact is the test abstraction domain: a named variable plus a derivation
// depth used for PathLength. The zero value is the zero fact.
type tFact struct {
	v      string
	depth  int
	source string
}

func (f tFact) PathLength() int { return f.depth }

func (f tFact) DeriveSourceContext(parent tFact) tFact {
	if f.source != "" {
		return f
	}
	nf := f
	nf.source = parent.v
	return nf
}

func (f tFact) HasSourceContext() bool { return f.source != "" }

func fact(v string) tFact { return tFact{v: v} }

func factAt(v string, depth int) tFact { return tFact{v: v, depth: depth} }

func identityFlow(d tFact) Facts[tFact] { return NewFacts(d) }

// graphICFG is a map-backed ICFG[string, string] fixture. Nodes and methods
// are both plain strings for test readability. Unlisted keys default to
// "no edges" / "not a call or exit statement" / "concrete".
type graphICFG struct {
	succs       map[string][]string
	calls       map[string][]string // call node -> callee methods
	returnSites map[string][]string // call node -> return sites
	startPoints map[string][]string // method -> start nodes
	callers     map[string][]string // method -> call nodes
	methodOf    map[string]string
	callStmts   map[string]bool
	exitStmts   map[string]bool
	abstract    map[string]bool // methods with no body; default concrete
}

func (g *graphICFG) SuccsOf(n string) []string { return g.succs[n] }

func (g *graphICFG) CalleesOfCallAt(n string) []string { return g.calls[n] }

func (g *graphICFG) IsConcrete(m string) bool { return !g.abstract[m] }

func (g *graphICFG) ReturnSitesOfCallAt(n string) []string { return g.returnSites[n] }

func (g *graphICFG) StartPointsOf(m string) []string { return g.startPoints[m] }

func (g *graphICFG) CallersOf(m string) []string { return g.callers[m] }

func (g *graphICFG) MethodOf(n string) string { return g.methodOf[n] }

func (g *graphICFG) IsCallStmt(n string) bool { return g.callStmts[n] }

func (g *graphICFG) IsExitStmt(n string) bool { return g.exitStmts[n] }

// methodMap assigns every node in nodes to method m.
func methodMap(m string, nodes ...string) map[string]string {
	out := make(map[string]string, len(nodes))
	for _, n := range nodes {
		out[n] = m
	}
	return out
}

func set(keys ...string) map[string]bool {
	out := make(map[string]bool, len(keys))
	for _, k := range keys {
		out[k] = true
	}
	return out
}

// fnFlowFunctions is a map-backed FlowFunctions[string, string, tFact]
// fixture. Any query not present in the relevant map falls back to the
// identity flow function, matching how most of spec §8's scenarios describe
// their graphs ("identity flow functions" unless stated otherwise).
type fnFlowFunctions struct {
	normal    map[[2]string]func(tFact) Facts[tFact]
	call      map[[2]string]func(tFact) Facts[tFact]
	ret       map[[4]string]func(tFact) Facts[tFact]
	callToRet map[[2]string]func(tFact) Facts[tFact]
}

func (f *fnFlowFunctions) NormalFlowFunction(curr, succ string) FlowFunction[tFact] {
	if fn, ok := f.normal[[2]string{curr, succ}]; ok {
		return fn
	}
	return identityFlow
}

func (f *fnFlowFunctions) CallFlowFunction(callSite, callee string) FlowFunction[tFact] {
	if fn, ok := f.call[[2]string{callSite, callee}]; ok {
		return fn
	}
	return identityFlow
}

func (f *fnFlowFunctions) ReturnFlowFunction(callSite, callee, exitStmt, returnSite string) FlowFunction[tFact] {
	if fn, ok := f.ret[[4]string{callSite, callee, exitStmt, returnSite}]; ok {
		return fn
	}
	return identityFlow
}

func (f *fnFlowFunctions) CallToReturnFlowFunction(callSite, returnSite string) FlowFunction[tFact] {
	if fn, ok := f.callToRet[[2]string{callSite, returnSite}]; ok {
		return fn
	}
	return identityFlow
}

// testProblem is a Problem[string, string, tFact] fixture built directly
// from a graphICFG/fnFlowFunctions pair and a seed map.
type testProblem struct {
	icfg                   ICFG[string, string]
	ff                     FlowFunctions[string, string, tFact]
	seeds                  map[string]Facts[tFact]
	followReturnsPastSeeds bool
}

func (p *testProblem) ZeroValue() tFact { return tFact{} }

func (p *testProblem) ICFG() ICFG[string, string] { return p.icfg }

func (p *testProblem) FlowFunctions() FlowFunctions[string, string, tFact] { return p.ff }

func (p *testProblem) InitialSeeds() map[string]Facts[tFact] { return p.seeds }

func (p *testProblem) FollowReturnsPastSeeds() bool { return p.followReturnsPastSeeds }
