package status

import (
	"fmt"
)

// Formatter defines how job progress and errors should be rendered for humans
type Formatter interface {
	// FormatProgress formats a progress observation
	FormatProgress(p Progress) string

	// FormatCount formats an n-of-total counter
	FormatCount(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFormatter provides a default implementation of Formatter
type DefaultFormatter struct{}

// NewDefaultFormatter creates a new DefaultFormatter
func NewDefaultFormatter() *DefaultFormatter {
	return &DefaultFormatter{}
}

// FormatProgress formats a job observation with an emoji for its status
func (f *DefaultFormatter) FormatProgress(p Progress) string {
	label := p.Code
	if label == "" {
		label = p.JobID
	}

	switch p.Status {
	case StatusSucceeded:
		return fmt.Sprintf("✅ %s finished", label)
	case StatusFailed, StatusSubmissionFailed:
		return fmt.Sprintf("❌ %s %s", label, p.Status)
	case StatusPartialFailure:
		return fmt.Sprintf("⚠️  %s finished with failures", label)
	case StatusTimedOut:
		return fmt.Sprintf("⌛ %s timed out", label)
	case StatusCancelled:
		return fmt.Sprintf("🛑 %s abandoned", label)
	}

	msg := fmt.Sprintf("⏳ %s; %s, %.1f MB/s, %.0f%%", label, p.Status, p.SpeedMBs, p.Percent)
	if p.ETR != "" {
		msg += ", etr: " + p.ETR
	}
	return msg
}

// FormatCount formats a counter with percentage
func (f *DefaultFormatter) FormatCount(current, total int) string {
	var percentage float64
	if total == 0 {
		percentage = 0
		if current > 0 {
			percentage = 100
		}
	} else {
		percentage = float64(current) / float64(total) * 100
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
