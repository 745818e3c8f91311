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
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// executor is the bounded worklist pool described in spec 4.3. It is built
// on an errgroup.Group, which already implements exactly the quiescence
// contract the spec calls for: Wait blocks until the internal counter
// reaches zero, and that counter stays alive across tasks that submit more
// tasks of their own from inside Go, because each nested Go call happens
// before the submitting task returns (and hence before the counter could
// reach zero). A semaphore.Weighted bounds how many tasks run at once.
type executor struct {
	sem *semaphore.Weighted
	g   *errgroup.Group
	ctx context.Context
}

// numWorkers returns max(1, requested) if requested > 0, otherwise
// max(1, NumCPU-1), matching spec 5's sizing rule.
func numWorkers(requested int) int {
	if requested > 0 {
		return requested
	}
	n := runtime.NumCPU() - 1
	if n < 1 {
		n = 1
	}
	return n
}

func newExecutor(ctx context.Context, workers int) *executor {
	g, gctx := errgroup.WithContext(ctx)
	return &executor{
		sem: semaphore.NewWeighted(int64(numWorkers(workers))),
		g:   g,
		ctx: gctx,
	}
}

// submit schedules task to run on the pool. It never blocks the caller
// beyond acquiring a pool slot's bookkeeping; the actual wait for a free
// slot happens inside the spawned goroutine.
//
// A panic raised by task (e.g. by client-supplied flow functions) is
// recovered and turned into an error, so that it is captured by g exactly
// like a returned error would be, rather than crashing the process. Per
// spec §7, flow-function failure is not retried: the first one preserved
// by the errgroup is what Solve re-raises.
func (e *executor) submit(task func() error) {
	e.g.Go(func() (err error) {
		if aerr := e.sem.Acquire(e.ctx, 1); aerr != nil {
			return aerr
		}
		defer e.sem.Release(1)
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in propagation task: %v", r)
			}
		}()
		return task()
	})
}

// wait blocks until every submitted task, including tasks submitted from
// within other tasks, has completed, and returns the first error any task
// returned (nil if none did).
func (e *executor) wait() error {
	return e.g.Wait()
}
