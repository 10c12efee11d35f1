package operation

import (
	"context"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/walteh/apifix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔍 NewCheckOperation creates the check operation. It never writes.
func NewCheckOperation(opts Options) (Operation, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &checkOperation{
		fix: &fixOperation{Options: opts, dryRun: true},
	}, nil
}

type checkOperation struct {
	fix *fixOperation
}

// 🏃 Execute reports pending rewrites and fails with ErrPending if any exist
func (op *checkOperation) Execute(ctx context.Context) (*Summary, error) {
	summary, err := op.fix.run(ctx)
	if err != nil {
		return summary, err
	}

	table, err := renderSummary(summary)
	if err != nil {
		return summary, errors.Errorf("rendering summary: %w", err)
	}
	op.fix.Logger.Print(table)

	if n := summary.Modified(); n > 0 {
		return summary, errors.Errorf("%w: %d of %d files contain %d calls to rewrite",
			ErrPending, n, len(summary.Files), summary.Replacements())
	}

	op.fix.Logger.Confirm("✅ All API paths are already fixed")
	return summary, nil
}

// 📋 renderSummary renders one table row per target
func renderSummary(summary *Summary) (string, error) {
	data := pterm.TableData{{"File", "Status", "Calls"}}
	for _, f := range summary.Files {
		label := f.Status.String()
		if f.Status == status.StatusModified {
			label = "needs fix"
		}
		data = append(data, []string{f.Path, label, strconv.Itoa(f.Replacements)})
	}

	rendered, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return "", err
	}
	return rendered + "\n", nil
}
