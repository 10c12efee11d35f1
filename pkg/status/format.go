package status

import (
	"fmt"

	"github.com/fatih/color"
)

// FileFormatter defines how per-file results are rendered on the console
type FileFormatter interface {
	// FormatFile formats the outcome for one target
	FormatFile(path string, status FileStatus) string

	// FormatError formats an error message
	FormatError(path string, err error) string
}

// DefaultFileFormatter prints one emoji-prefixed line per file
type DefaultFileFormatter struct{}

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatFile formats a file result with emojis
func (f *DefaultFileFormatter) FormatFile(path string, status FileStatus) string {
	switch status {
	case StatusModified:
		return fmt.Sprintf("%s %s", color.GreenString("✅ Fixed:"), path)
	case StatusUnchanged:
		return fmt.Sprintf("%s %s", color.HiBlackString("⏭️  Skipped (no changes):"), path)
	case StatusMissing:
		return fmt.Sprintf("%s %s", color.RedString("❌ Not found:"), path)
	case StatusFailed:
		return fmt.Sprintf("%s %s", color.RedString("❌ Failed:"), path)
	default:
		return fmt.Sprintf("%s %s", color.YellowString("❔ Unknown:"), path)
	}
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(path string, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", color.RedString("❌ Error:"), path, err)
}
