package http

import (
	"regexp"
	"strings"
)

// Input validation constants
const (
	MaxTemplateNameLength = 512
	MaxRecipientLength    = 16
	MaxLogTextLength      = 120
)

var (
	templateNamePattern = regexp.MustCompile(`^[a-z0-9_:]+$`)
	recipientPattern    = regexp.MustCompile(`^\+?[0-9]+$`)
)

// ValidTemplateName checks a WhatsApp template identifier
// (lowercase letters, digits, underscores, optional namespace colon).
func ValidTemplateName(s string) bool {
	if s == "" || len(s) > MaxTemplateNameLength {
		return false
	}
	return templateNamePattern.MatchString(s)
}

// ValidRecipient checks a phone-number recipient in E.164-ish form.
func ValidRecipient(s string) bool {
	if s == "" || len(s) > MaxRecipientLength {
		return false
	}
	return recipientPattern.MatchString(s)
}

// TruncateForLog shortens message text before it goes into a log line.
func TruncateForLog(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= MaxLogTextLength {
		return s
	}
	return s[:MaxLogTextLength] + "..."
}
