// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.

package main

import (
	"github.com/ifds-go/tabulation/solver"
	"github.com/ifds-go/tabulation/solver/config"
)

// node identifies one statement in the toy program below. Statements are
// named "<method>#<index>" purely for readability; the solver never parses
// the string.
type node string

// method identifies one of the toy program's two procedures.
type method string

// demoFact is the toy program's abstraction domain: "the named variable
// holds tainted data". The zero value (variable == "") is the zero fact Z.
type demoFact struct {
	variable string
	depth    int
	source   string
}

// PathLength implements solver.Fact.
func (d demoFact) PathLength() int { return d.depth }

// DeriveSourceContext implements solver.Fact. It is exercised only if a
// caller sets solver.SecondPhase; the demo runs FirstPhase only, so this is
// here to satisfy the interface rather than to do anything load-bearing.
func (d demoFact) DeriveSourceContext(parent demoFact) demoFact {
	if d.source != "" {
		return d
	}
	nd := d
	nd.source = parent.variable
	if nd.source == "" {
		nd.source = "seed"
	}
	return nd
}

// HasSourceContext implements solver.Fact.
func (d demoFact) HasSourceContext() bool { return d.source != "" }

// The toy program:
//
//	func main() {
//	    x := source()   // main#0 -> main#1
//	    y := helper(x)  // main#1 (call) -> main#2 (return site)
//	    sink(y)         // main#2 -> main#3
//	}                   // main#3 (exit)
//
//	func helper(p) {
//	    ret := p        // helper#0 (start) -> helper#1 (exit)
//	}
const (
	mainSource   node = "main#0"
	mainCall     node = "main#1"
	mainReturn   node = "main#2"
	mainExit     node = "main#3"
	helperStart  node = "helper#0"
	helperExit   node = "helper#1"
	mainMethod   method = "main"
	helperMethod method = "helper"
)

// toyICFG is the hand-built fixture described above. Real ICFG construction
// from program source is explicitly out of scope for this module; this is
// exactly the kind of small graph spec.md's own end-to-end scenarios
// (S1-S6) describe.
type toyICFG struct{}

func (toyICFG) SuccsOf(n node) []node {
	switch n {
	case mainSource:
		return []node{mainCall}
	case mainReturn:
		return []node{mainExit}
	case helperStart:
		return []node{helperExit}
	default:
		return nil
	}
}

func (toyICFG) CalleesOfCallAt(n node) []method {
	if n == mainCall {
		return []method{helperMethod}
	}
	return nil
}

func (toyICFG) IsConcrete(method) bool { return true }

func (toyICFG) ReturnSitesOfCallAt(n node) []node {
	if n == mainCall {
		return []node{mainReturn}
	}
	return nil
}

func (toyICFG) StartPointsOf(m method) []node {
	switch m {
	case mainMethod:
		return []node{mainSource}
	case helperMethod:
		return []node{helperStart}
	default:
		return nil
	}
}

func (toyICFG) CallersOf(m method) []node {
	if m == helperMethod {
		return []node{mainCall}
	}
	return nil
}

func (toyICFG) MethodOf(n node) method {
	switch n {
	case mainSource, mainCall, mainReturn, mainExit:
		return mainMethod
	default:
		return helperMethod
	}
}

func (toyICFG) IsCallStmt(n node) bool { return n == mainCall }

func (toyICFG) IsExitStmt(n node) bool { return n == mainExit || n == helperExit }

// toyFlowFunctions implements the taint-like abstraction over the toy
// program: source() generates a tainted "x", the call binds "x" to the
// callee's parameter "p", helper renames "p" to "ret", and the return
// binds "ret" back to the caller's "y".
type toyFlowFunctions struct{}

func identity(d demoFact) solver.Facts[demoFact] { return solver.NewFacts(d) }

func (toyFlowFunctions) NormalFlowFunction(curr, succ node) solver.FlowFunction[demoFact] {
	if curr == mainSource && succ == mainCall {
		return func(d demoFact) solver.Facts[demoFact] {
			if d.variable == "" {
				return solver.NewFacts(d, demoFact{variable: "x", depth: d.depth + 1})
			}
			return solver.NewFacts(d)
		}
	}
	if curr == helperStart && succ == helperExit {
		return func(d demoFact) solver.Facts[demoFact] {
			if d.variable == "p" {
				return solver.NewFacts(demoFact{variable: "ret", depth: d.depth + 1})
			}
			return solver.NewFacts(d)
		}
	}
	return identity
}

func (toyFlowFunctions) CallFlowFunction(node, method) solver.FlowFunction[demoFact] {
	return func(d demoFact) solver.Facts[demoFact] {
		switch d.variable {
		case "":
			return solver.NewFacts(d)
		case "x":
			return solver.NewFacts(demoFact{variable: "p", depth: d.depth + 1})
		default:
			return nil
		}
	}
}

func (toyFlowFunctions) ReturnFlowFunction(callSite node, callee method, exitStmt, returnSite node) solver.FlowFunction[demoFact] {
	return func(d demoFact) solver.Facts[demoFact] {
		switch d.variable {
		case "":
			return solver.NewFacts(d)
		case "ret":
			return solver.NewFacts(demoFact{variable: "y", depth: d.depth + 1})
		default:
			return nil
		}
	}
}

func (toyFlowFunctions) CallToReturnFlowFunction(callSite, returnSite node) solver.FlowFunction[demoFact] {
	return identity
}

// toyProblem wires toyICFG and toyFlowFunctions into a solver.Problem with
// a single seed: the zero fact at the start of main.
type toyProblem struct {
	followReturnsPastSeeds bool
}

// newTaintyProblem builds the toy problem, taking
// Options.FollowReturnsPastSeeds from opts so a config file's
// follow-returns-past-seeds setting actually reaches the solver.
func newTaintyProblem(opts *config.Options) *toyProblem {
	return &toyProblem{followReturnsPastSeeds: opts.FollowReturnsPastSeeds}
}

func (*toyProblem) ZeroValue() demoFact { return demoFact{} }

func (*toyProblem) ICFG() solver.ICFG[node, method] { return toyICFG{} }

func (*toyProblem) FlowFunctions() solver.FlowFunctions[node, method, demoFact] {
	return toyFlowFunctions{}
}

func (*toyProblem) InitialSeeds() map[node]solver.Facts[demoFact] {
	return map[node]solver.Facts[demoFact]{
		mainSource: solver.NewFacts(demoFact{}),
	}
}

func (p *toyProblem) FollowReturnsPastSeeds() bool { return p.followReturnsPastSeeds }
