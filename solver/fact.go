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

// Fact is the constraint satisfied by the data-flow abstraction domain D.
//
// D must be Go-comparable, since facts are used directly as map keys
// throughout the tables (the design notes call this out explicitly: "use an
// arena or atomic interned-id table for facts if the implementation
// language lacks cheap hashable wrappers" — in Go, small comparable structs
// or pointers already are that wrapper).
//
// DeriveSourceContext is called only during SecondPhase (see Phase), once
// for every fact a flow function produces, and returns the fact that should be
// recorded as having been derived from parent. It must not mutate parent.
type Fact[D any] interface {
	comparable

	// PathLength returns the number of derivation steps between the zero
	// fact and this fact. Used to enforce MaxAbstractionPathLength.
	PathLength() int

	// DeriveSourceContext returns the version of this fact tagged with the
	// source context carried by parent. Implementations that do not track
	// source context (FIRST_PHASE-only problems) may return the receiver
	// unchanged.
	DeriveSourceContext(parent D) D

	// HasSourceContext reports whether this fact already carries a source
	// context, i.e. whether it was produced by DeriveSourceContext. Used by
	// the driver to purge phase-one end summaries before SECOND_PHASE.
	HasSourceContext() bool
}

// Facts is a set of facts, represented as a map to nothing so that
// presence tests and iteration are both O(1)/O(n) without a second index.
type Facts[D comparable] map[D]struct{}

// NewFacts returns a Facts set containing ds.
func NewFacts[D comparable](ds ...D) Facts[D] {
	s := make(Facts[D], len(ds))
	for _, d := range ds {
		s[d] = struct{}{}
	}
	return s
}

// Add inserts d into the set.
func (s Facts[D]) Add(d D) {
	s[d] = struct{}{}
}

// Contains reports whether d is a member of the set.
func (s Facts[D]) Contains(d D) bool {
	_, ok := s[d]
	return ok
}

// Slice returns the set's elements as a slice, in unspecified order.
func (s Facts[D]) Slice() []D {
	out := make([]D, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	return out
}
