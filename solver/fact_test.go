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

import "testing"

func TestFactsAddContains(t *testing.T) {
	s := NewFacts(fact("a"), fact("b"))
	if !s.Contains(fact("a")) || !s.Contains(fact("b")) {
		t.Fatalf("NewFacts did not seed all elements: %v", s)
	}
	if s.Contains(fact("c")) {
		t.Fatal("set should not contain an element that was never added")
	}
	s.Add(fact("c"))
	if !s.Contains(fact("c")) {
		t.Fatal("Add did not insert the element")
	}
}

func TestFactsSliceHasNoDuplicates(t *testing.T) {
	s := NewFacts(fact("a"), fact("a"), fact("b"))
	got := s.Slice()
	if len(got) != 2 {
		t.Fatalf("Slice() = %v, want 2 distinct elements", got)
	}
	seen := map[tFact]bool{}
	for _, d := range got {
		seen[d] = true
	}
	if !seen[fact("a")] || !seen[fact("b")] {
		t.Errorf("Slice() = %v, missing an expected element", got)
	}
}

func TestEmptyFactsSlice(t *testing.T) {
	s := NewFacts[tFact]()
	if got := s.Slice(); len(got) != 0 {
		t.Errorf("Slice() on an empty set = %v, want empty", got)
	}
}
