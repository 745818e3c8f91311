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

// ICFG is the interprocedural control-flow graph that the solver queries.
// Building a real ICFG from program source is explicitly out of scope for
// this module; callers provide one (or, for tests, a small hand-built
// fixture satisfying this interface).
//
// Queries are treated by the solver as pure functions. Implementations may
// block (e.g. to lazily construct part of the graph) but must be safe for
// concurrent use: the solver calls them from worker goroutines with no
// external synchronization.
type ICFG[N comparable, M comparable] interface {
	// SuccsOf returns the intraprocedural successors of n.
	SuccsOf(n N) []N

	// CalleesOfCallAt returns the methods that may be invoked at call
	// statement n.
	CalleesOfCallAt(n N) []M

	// IsConcrete reports whether m has a body that can be analyzed (as
	// opposed to, say, an unresolved external declaration).
	IsConcrete(m M) bool

	// ReturnSitesOfCallAt returns the statements that control may return to
	// after call statement n.
	ReturnSitesOfCallAt(n N) []N

	// StartPointsOf returns the entry statements of method m.
	StartPointsOf(m M) []N

	// CallersOf returns the call statements that may invoke m.
	CallersOf(m M) []N

	// MethodOf returns the method containing n.
	MethodOf(n N) M

	// IsCallStmt reports whether n is a call statement.
	IsCallStmt(n N) bool

	// IsExitStmt reports whether n is a method-exit statement. A statement
	// may be both an exit statement and have successors (e.g. "throw" in
	// languages with unchecked exceptions); the dispatcher handles that
	// case by running both processExit and processNormalFlow.
	IsExitStmt(n N) bool
}
