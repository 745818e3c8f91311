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

// Phase is the data-flow solver phase: abstractions are first propagated
// ignoring source identity, then re-propagated with source contexts
// attached.
type Phase int

const (
	// FirstPhase propagates abstractions regardless of source information.
	FirstPhase Phase = iota

	// SecondPhase re-propagates actual sources over the method summaries
	// generated during FirstPhase.
	SecondPhase
)

// StatusListener is notified of solver lifecycle events. Listeners may be
// added at any time before or during Solve; there is no removal API.
type StatusListener[N comparable, M comparable, D Fact[D]] interface {
	NotifySolverStarted(s *Solver[N, M, D])
	NotifySolverTerminated(s *Solver[N, M, D])
}
