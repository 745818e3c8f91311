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

// Package solver implements a worklist-driven, concurrent fixed-point
// tabulation engine for the IFDS (Interprocedural, Finite, Distributive,
// Subset) data-flow framework of Naeem, Lhotak and Rodriguez (CC 2010).
//
// The package defines no flow functions, no abstraction domain and no
// interprocedural control-flow graph of its own: callers supply all three
// through the Problem, FlowFunctions and ICFG interfaces, and the solver
// computes path edges over the resulting exploded super-graph until no
// worker has anything left to propagate.
package solver
