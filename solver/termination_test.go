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
	"errors"
	"testing"
)

// terminateOnStart force-terminates the solver as soon as Solve notifies it,
// that is after Solve has cleared any earlier kill flag and before the
// initial seeds are submitted.
type terminateOnStart struct{ reason TerminationReason }

func (l terminateOnStart) NotifySolverStarted(s *Solver[string, string, tFact]) {
	s.ForceTerminate(l.reason)
}

func (terminateOnStart) NotifySolverTerminated(*Solver[string, string, tFact]) {}

// TestForceTerminateIsNotAnError: a solver that is force-terminated as soon
// as Solve starts, before it ever gets a chance to do real work, still
// returns a nil error from Solve (spec §7: "Forced termination ... is not an
// error").
func TestForceTerminateIsNotAnError(t *testing.T) {
	a := fact("a")
	icfg := &graphICFG{
		succs:       map[string][]string{"s": {"e"}},
		methodOf:    methodMap("m", "s", "e"),
		startPoints: map[string][]string{"m": {"s"}},
		exitStmts:   set("e"),
	}
	p := &testProblem{icfg: icfg, ff: &fnFlowFunctions{}, seeds: map[string]Facts[tFact]{"s": NewFacts(a)}}
	s, err := New[string, string, tFact](p, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.AddStatusListener(terminateOnStart{reason: TerminationReasonUserRequest})
	if err := s.Solve(context.Background()); err != nil {
		t.Errorf("Solve after ForceTerminate returned %v, want nil", err)
	}
	if !s.IsKilled() {
		t.Error("IsKilled() should report true after ForceTerminate")
	}
	reason, ok := s.TerminationReason()
	if !ok || reason != TerminationReasonUserRequest {
		t.Errorf("TerminationReason() = (%v, %v), want (%v, true)", reason, ok, TerminationReasonUserRequest)
	}
}

// TestTaskErrorAbandonsAnalysis: a flow function that panics (the only
// channel a FlowFunction has to signal failure, since FlowFunction has no
// error return) is recovered by the executor and surfaced from Solve as a
// *TaskError.
func TestTaskErrorAbandonsAnalysis(t *testing.T) {
	icfg := &graphICFG{
		succs:       map[string][]string{"s": {"e"}},
		methodOf:    methodMap("m", "s", "e"),
		startPoints: map[string][]string{"m": {"s"}},
		exitStmts:   set("e"),
	}
	ff := &fnFlowFunctions{
		normal: map[[2]string]func(tFact) Facts[tFact]{
			{"s", "e"}: func(tFact) Facts[tFact] { panic("boom") },
		},
	}
	p := &testProblem{icfg: icfg, ff: ff, seeds: map[string]Facts[tFact]{"s": NewFacts(fact("a"))}}
	s, err := New[string, string, tFact](p, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	err = s.Solve(context.Background())
	if err == nil {
		t.Fatal("Solve should return an error when a flow function panics")
	}
	var taskErr *TaskError
	if !errors.As(err, &taskErr) {
		t.Errorf("Solve returned %v, want it to wrap a *TaskError", err)
	}
}

// TestResetPreservesTablesClearsKillFlag: Reset clears only the kill flag
// and termination state, per spec.md §3's two-phase lifecycle ("reset()
// clears the kill flag but preserves accumulated tables across a phase
// transition") — the jump-function, end-summary, and incoming tables and
// the propagation counter must survive a Reset untouched, so that a
// SecondPhase run can build on FirstPhase's summaries.
func TestResetPreservesTablesClearsKillFlag(t *testing.T) {
	a := fact("a")
	icfg := &graphICFG{
		succs:       map[string][]string{"s": {"e"}},
		methodOf:    methodMap("m", "s", "e"),
		startPoints: map[string][]string{"m": {"s"}},
		exitStmts:   set("e"),
	}
	p := &testProblem{icfg: icfg, ff: &fnFlowFunctions{}, seeds: map[string]Facts[tFact]{"s": NewFacts(a)}}
	s := mustSolve[string, string, tFact](t, p, nil)

	sizeBefore := s.jumpFunctions.size()
	if sizeBefore == 0 {
		t.Fatal("expected a non-empty jump table before Reset")
	}
	countBefore := s.PropagationCount()

	s.ForceTerminate(TerminationReasonUserRequest)
	s.Reset()

	if s.IsKilled() {
		t.Error("IsKilled() should report false after Reset")
	}
	if _, ok := s.TerminationReason(); ok {
		t.Error("TerminationReason() should report not-set after Reset")
	}
	if s.jumpFunctions.size() != sizeBefore {
		t.Errorf("jumpFunctions.size() = %d after Reset, want %d (unchanged)", s.jumpFunctions.size(), sizeBefore)
	}
	if s.PropagationCount() != countBefore {
		t.Errorf("PropagationCount() = %d after Reset, want %d (unchanged)", s.PropagationCount(), countBefore)
	}
}
