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

import "fmt"

// ConfigError is returned from New when the supplied Problem cannot be
// used to run a solver. It is fatal: the caller must fix the problem and
// construct a new solver.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ifds: invalid problem configuration: %s: %s", e.Field, e.Reason)
}

// TaskError wraps the first error raised by a propagation task. IFDS
// tabulation is deterministic given its flow functions, so nothing is ever
// retried: a task failure abandons the whole analysis.
type TaskError struct {
	Err error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("ifds: analysis abandoned after a task failure: %v", e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// TerminationReason records why a solver stopped before reaching a natural
// fixed point.
type TerminationReason string

// Predefined termination reasons. Clients of ForceTerminate may also use
// their own TerminationReason values (e.g. to describe a memory watchdog
// trip with more detail).
const (
	// TerminationReasonNone is the zero value: the solver has not been
	// force-terminated.
	TerminationReasonNone TerminationReason = ""

	// TerminationReasonUserRequest marks an explicit, externally requested
	// termination.
	TerminationReasonUserRequest TerminationReason = "user-requested"
)
