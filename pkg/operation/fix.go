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
	"io/fs"

	"github.com/rs/zerolog"
	"github.com/walteh/apifix/pkg/log"
	"github.com/walteh/apifix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔧 NewFixOperation creates the fix operation. With dryRun nothing is written.
func NewFixOperation(opts Options, dryRun bool) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &fixOperation{
		Options: opts,
		dryRun:  dryRun,
	}, nil
}

type fixOperation struct {
	Options
	dryRun bool
}

// 🏃 Execute fixes every target and prints the confirmation message
func (op *fixOperation) Execute(ctx context.Context) (*Summary, error) {
	summary, err := op.run(ctx)
	if err != nil {
		return summary, err
	}

	if op.dryRun {
		op.Logger.Warningf("dry run: %d of %d files would change (%d calls), nothing was written",
			summary.Modified(), len(summary.Files), summary.Replacements())
		return summary, nil
	}

	op.Logger.Confirm(op.Config.Message)
	return summary, nil
}

// run processes every target without printing the final message
func (op *fixOperation) run(ctx context.Context) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("pattern", op.Rewriter.Pattern()).
		Bool("dry_run", op.dryRun).
		Msg("starting fix")

	paths, err := op.Files.Resolve(ctx, op.Config.Targets)
	if err != nil {
		return nil, errors.Errorf("resolving targets: %w", err)
	}

	summary := &Summary{Files: make([]FileResult, len(paths))}
	for i, path := range paths {
		summary.Files[i] = FileResult{Path: path}
	}

	err = op.Runner.Each(ctx, len(paths), func(ctx context.Context, i int) error {
		result, err := op.processFile(ctx, paths[i])
		summary.Files[i] = result
		return err
	})
	if err != nil {
		return summary, err
	}

	if op.Config.RequireMatch && summary.Replacements() == 0 {
		return summary, errors.Errorf("%w: pattern %s in %d files", ErrNoMatch, op.Rewriter.Pattern(), len(paths))
	}

	logger.Debug().
		Int("files", len(summary.Files)).
		Int("modified", summary.Modified()).
		Int("replacements", summary.Replacements()).
		Msg("fix complete")

	return summary, nil
}

// 📄 processFile reads, rewrites and (unless dry run) writes one target
func (op *fixOperation) processFile(ctx context.Context, path string) (FileResult, error) {
	result := FileResult{Path: path}

	content, err := op.Files.ReadText(ctx, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			result.Status = status.StatusMissing
			if op.Config.SkipMissing {
				op.Logger.LogFileOperation(ctx, log.FileOperation{Path: path, Status: result.Status})
				return result, nil
			}
		} else {
			result.Status = status.StatusFailed
		}
		op.Logger.LogFileOperation(ctx, log.FileOperation{Path: path, Status: status.StatusFailed, Err: err})
		return result, err
	}

	rewritten := op.Rewriter.Apply(content)
	result.Replacements = rewritten.ReplacementCount
	result.Status = status.StatusUnchanged

	if rewritten.WasModified {
		result.Status = status.StatusModified
		if !op.dryRun {
			if err := op.Files.WriteFileAtomic(ctx, path, rewritten.ModifiedContent); err != nil {
				result.Status = status.StatusFailed
				op.Logger.LogFileOperation(ctx, log.FileOperation{Path: path, Status: result.Status, Err: err})
				return result, errors.Errorf("writing %s: %w", path, err)
			}
		}
	}

	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:         path,
		Status:       result.Status,
		Replacements: result.Replacements,
		DryRun:       op.dryRun,
	})
	return result, nil
}
