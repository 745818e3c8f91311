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

import "github.com/ifds-go/tabulation/solver/diagnostics"

// logCallCycles is the optional, logging-only post-pass described in the
// design notes: it looks for recursive call cycles in the caller/callee
// method structure the solver itself discovered while populating the
// incoming table. It never feeds back into the fixed point.
func (s *Solver[N, M, D]) logCallCycles() {
	edges := s.incoming.methodEdges(s.icfg.MethodOf)
	if len(edges) == 0 {
		return
	}
	cycles := diagnostics.FindCycles(edges)
	for _, cycle := range cycles {
		s.logger.Debugf("ifds: recursive call cycle discovered: %v", cycle)
	}
}
