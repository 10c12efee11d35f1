// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"runtime"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner executes per-target work
type Runner struct {
	async bool
	limit int
}

// 🏗️ NewRunner creates a new runner. Async runners use up to GOMAXPROCS workers.
func NewRunner(async bool) *Runner {
	return &Runner{
		async: async,
		limit: runtime.GOMAXPROCS(0),
	}
}

// 🏃 Each calls fn for every index in [0, n). It stops at the first error.
func (r *Runner) Each(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if r.async {
		return r.eachAsync(ctx, n, fn)
	}
	return r.eachSync(ctx, n, fn)
}

// 🔄 eachSync runs fn in order on the calling goroutine
func (r *Runner) eachSync(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return errors.Errorf("operation cancelled: %w", err)
		}
		if err := fn(ctx, i); err != nil {
			return err
		}
	}
	return nil
}

// ⚡ eachAsync fans fn out over an errgroup; the first error cancels the rest
func (r *Runner) eachAsync(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.limit)

	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Errorf("operation cancelled: %w", err)
			}
			return fn(gctx, i)
		})
	}

	return g.Wait()
}
