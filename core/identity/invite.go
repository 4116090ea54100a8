package identity

import (
	"errors"
	"fmt"
	"strings"
)

// InviteStatus is the canonical superset of vendor invite states.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusExpired  InviteStatus = "expired"
	InviteStatusDeleted  InviteStatus = "deleted"
)

// ErrInvalidStatus is returned when a status filter is not a known InviteStatus.
var ErrInvalidStatus = errors.New("invalid invite status")

// InviteStatuses lists the valid statuses in display order.
func InviteStatuses() []InviteStatus {
	return []InviteStatus{InviteStatusPending, InviteStatusAccepted, InviteStatusExpired, InviteStatusDeleted}
}

// ParseInviteStatus parses user input case-insensitively.
func ParseInviteStatus(s string) (InviteStatus, error) {
	candidate := InviteStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range InviteStatuses() {
		if candidate == valid {
			return valid, nil
		}
	}
	return "", fmt.Errorf("%w: %q (valid: pending, accepted, expired, deleted)", ErrInvalidStatus, s)
}
