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
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

// CachingFlowFunctions wraps a FlowFunctions provider so that the
// (typically allocation-heavy) closures it returns are memoized by their
// query tuple. It is backed by a Ristretto cache — a bounded, cost-aware,
// highly concurrent cache that sheds entries under memory pressure. That is
// the Go analogue of the soft/weak-value Guava cache the original solver
// uses for the same purpose: correctness never depends on an entry staying
// cached, only on cache hits being cheaper than recomputation.
//
// The zero value is not usable; construct with NewCachingFlowFunctions.
type CachingFlowFunctions[N comparable, M comparable, D Fact[D]] struct {
	underlying FlowFunctions[N, M, D]
	normal     *ristretto.Cache[string, FlowFunction[D]]
	call       *ristretto.Cache[string, FlowFunction[D]]
	ret        *ristretto.Cache[string, FlowFunction[D]]
	callToRet  *ristretto.Cache[string, FlowFunction[D]]
}

// DefaultFlowFunctionCacheCounters is the NumCounters passed to each of the
// cache's four underlying Ristretto caches.
const DefaultFlowFunctionCacheCounters = 1e6

// DefaultFlowFunctionCacheMaxCost is the MaxCost (in cached entries, since
// every entry is given cost 1) passed to each underlying Ristretto cache
// when no override is given.
const DefaultFlowFunctionCacheMaxCost = 1e5

// NewCachingFlowFunctions wraps underlying in a memoizing cache. maxCost
// bounds how many entries each of the four internal caches (normal, call,
// return, call-to-return) may hold before Ristretto starts evicting; pass 0
// to use DefaultFlowFunctionCacheMaxCost.
func NewCachingFlowFunctions[N comparable, M comparable, D Fact[D]](
	underlying FlowFunctions[N, M, D], maxCost int64,
) (*CachingFlowFunctions[N, M, D], error) {
	if maxCost <= 0 {
		maxCost = DefaultFlowFunctionCacheMaxCost
	}
	newCache := func() (*ristretto.Cache[string, FlowFunction[D]], error) {
		return ristretto.NewCache(&ristretto.Config[string, FlowFunction[D]]{
			NumCounters: DefaultFlowFunctionCacheCounters,
			MaxCost:     maxCost,
			BufferItems: 64,
			// Keep each entry's cost at exactly 1, so MaxCost counts entries.
			IgnoreInternalCost: true,
		})
	}
	normal, err := newCache()
	if err != nil {
		return nil, err
	}
	call, err := newCache()
	if err != nil {
		return nil, err
	}
	ret, err := newCache()
	if err != nil {
		return nil, err
	}
	callToRet, err := newCache()
	if err != nil {
		return nil, err
	}
	return &CachingFlowFunctions[N, M, D]{
		underlying: underlying,
		normal:     normal,
		call:       call,
		ret:        ret,
		callToRet:  callToRet,
	}, nil
}

// Close releases the resources held by the underlying Ristretto caches.
func (c *CachingFlowFunctions[N, M, D]) Close() {
	c.normal.Close()
	c.call.Close()
	c.ret.Close()
	c.callToRet.Close()
}

func cached[N comparable, M comparable, D Fact[D]](
	cache *ristretto.Cache[string, FlowFunction[D]], key string, compute func() FlowFunction[D],
) FlowFunction[D] {
	if f, ok := cache.Get(key); ok {
		return f
	}
	f := compute()
	cache.Set(key, f, 1)
	return f
}

// NormalFlowFunction implements FlowFunctions.
func (c *CachingFlowFunctions[N, M, D]) NormalFlowFunction(curr, succ N) FlowFunction[D] {
	key := fmt.Sprintf("%v\x00%v", curr, succ)
	return cached[N, M, D](c.normal, key, func() FlowFunction[D] {
		return c.underlying.NormalFlowFunction(curr, succ)
	})
}

// CallFlowFunction implements FlowFunctions.
func (c *CachingFlowFunctions[N, M, D]) CallFlowFunction(callSite N, callee M) FlowFunction[D] {
	key := fmt.Sprintf("%v\x00%v", callSite, callee)
	return cached[N, M, D](c.call, key, func() FlowFunction[D] {
		return c.underlying.CallFlowFunction(callSite, callee)
	})
}

// ReturnFlowFunction implements FlowFunctions.
func (c *CachingFlowFunctions[N, M, D]) ReturnFlowFunction(callSite N, callee M, exitStmt, returnSite N) FlowFunction[D] {
	key := fmt.Sprintf("%v\x00%v\x00%v\x00%v", callSite, callee, exitStmt, returnSite)
	return cached[N, M, D](c.ret, key, func() FlowFunction[D] {
		return c.underlying.ReturnFlowFunction(callSite, callee, exitStmt, returnSite)
	})
}

// CallToReturnFlowFunction implements FlowFunctions.
func (c *CachingFlowFunctions[N, M, D]) CallToReturnFlowFunction(callSite, returnSite N) FlowFunction[D] {
	key := fmt.Sprintf("%v\x00%v", callSite, returnSite)
	return cached[N, M, D](c.callToRet, key, func() FlowFunction[D] {
		return c.underlying.CallToReturnFlowFunction(callSite, returnSite)
	})
}
