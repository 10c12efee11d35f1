package operation

import (
	"context"

	"github.com/walteh/apifix/pkg/config"
	"github.com/walteh/apifix/pkg/log"
	"github.com/walteh/apifix/pkg/rewrite"
	"github.com/walteh/apifix/pkg/status"
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrNoMatch is returned by fix when require_match is set and nothing matched
	ErrNoMatch = errors.Base("no calls matched")

	// ErrPending is returned by check when at least one file would change
	ErrPending = errors.Base("files need fixing")
)

// 🎯 Operation is a single apifix run over all targets
type Operation interface {
	Execute(ctx context.Context) (*Summary, error)
}

// 🔧 Options contains the dependencies shared by all operations
type Options struct {
	Config   *config.Config
	Files    *status.Manager
	Rewriter *rewrite.Rewriter
	Logger   *log.Logger
	Runner   *Runner
}

func (o Options) validate() error {
	if o.Config == nil {
		return errors.Errorf("config is required")
	}
	if o.Files == nil {
		return errors.Errorf("file manager is required")
	}
	if o.Rewriter == nil {
		return errors.Errorf("rewriter is required")
	}
	if o.Logger == nil {
		return errors.Errorf("logger is required")
	}
	if o.Runner == nil {
		return errors.Errorf("runner is required")
	}
	return nil
}

// 📄 FileResult is the outcome for one target
type FileResult struct {
	Path         string
	Status       status.FileStatus
	Replacements int
}

// 📊 Summary collects the per-file results in target order
type Summary struct {
	Files []FileResult
}

// Modified returns how many files were (or would be) rewritten
func (s *Summary) Modified() int {
	return s.count(status.StatusModified)
}

// Missing returns how many targets did not exist
func (s *Summary) Missing() int {
	return s.count(status.StatusMissing)
}

// Replacements returns the total number of rewritten calls
func (s *Summary) Replacements() int {
	total := 0
	for _, f := range s.Files {
		total += f.Replacements
	}
	return total
}

func (s *Summary) count(st status.FileStatus) int {
	n := 0
	for _, f := range s.Files {
		if f.Status == st {
			n++
		}
	}
	return n
}
