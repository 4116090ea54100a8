package identity

import (
	"strings"
	"unicode"
)

// MatchesWorkspaceName reports whether a vendor workspace/project name looks like
// it belongs to a member with the given display name.
//
// Both values are lower-cased with all whitespace removed, then the workspace
// name must contain the member name. Vendors do not link members to their
// isolation unit, so this is a guess:
//   - false positives: "ann" matches a workspace named "Joanna Smith".
//   - false negatives: a renamed workspace or a changed display name no longer match.
//
// Callers confirm the guess by checking vendor-side membership of the unit.
func MatchesWorkspaceName(workspaceName, memberName string) bool {
	member := CompactName(memberName)
	if member == "" {
		return false
	}
	return strings.Contains(CompactName(workspaceName), member)
}

// CompactName lower-cases s and strips every whitespace rune.
func CompactName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RedactKey turns a secret into a displayable hint keeping a short prefix and suffix.
// Values already short enough to be hints are masked entirely except the last 4 runes.
func RedactKey(secret string) string {
	runes := []rune(secret)
	switch {
	case len(runes) == 0:
		return ""
	case len(runes) <= 8:
		return "..." + string(runes[max(0, len(runes)-4):])
	default:
		return string(runes[:4]) + "..." + string(runes[len(runes)-4:])
	}
}

// KeyHint returns a vendor-supplied hint as is when it is already masked, and
// redacts it otherwise so a full secret never reaches storage or output.
func KeyHint(vendorHint string) string {
	if strings.Contains(vendorHint, "...") || strings.Contains(vendorHint, "*") {
		return vendorHint
	}
	return RedactKey(vendorHint)
}
