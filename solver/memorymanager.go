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

// MemoryManager lets a client rewrite or discard facts as they flow through
// the solver, typically to intern or shrink abstractions for large
// analyses. Returning ok=false is a normal request to drop the derivation,
// not an error.
//
// Implementations must be safe for concurrent use; the solver never
// synchronizes calls into it.
type MemoryManager[D any] interface {
	// HandleMemoryObject rewrites a fact right before it is inserted into
	// the jump-function table, in propagate.
	HandleMemoryObject(d D) (D, bool)

	// HandleGeneratedMemoryObject rewrites a freshly computed fact child,
	// given the fact parent it was derived from, before it is propagated
	// onward. Called from processNormalFlow, processCall,
	// applyEndSummaryOnCall and processExit.
	HandleGeneratedMemoryObject(parent, child D) (D, bool)
}
