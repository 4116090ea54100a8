package reconcile

import (
	"errors"
	"fmt"
	"time"

	"ai-access-manager/core/identity"
)

var (
	// ErrUnknownProvider is returned when a caller selects a provider that is not configured.
	ErrUnknownProvider = errors.New("unknown provider")

	// ErrNoProviders is returned when an operation has no provider to run against.
	ErrNoProviders = errors.New("no provider configured")

	// ErrNotMember is carried by outcomes of operations that require membership.
	ErrNotMember = errors.New("user is not a member")

	// ErrRejected is carried by outcomes where the vendor call returned without
	// performing the change.
	ErrRejected = errors.New("provider rejected the request")
)

// Operation names a reconciliation operation in reports and logs.
type Operation string

const (
	OpAdd     Operation = "add"
	OpAssign  Operation = "assign"
	OpRemove  Operation = "remove"
	OpInfo    Operation = "info"
	OpList    Operation = "list"
	OpInvites Operation = "invites"
	OpHealth  Operation = "health"
)

// Status is the per-provider result class.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Code identifies what happened for one provider.
type Code string

const (
	CodeInvited         Code = "invited"
	CodeAlreadyMember   Code = "already_member"
	CodeAlreadyInvited  Code = "already_invited"
	CodeNotMember       Code = "not_member"
	CodeAssigned        Code = "assigned"
	CodeAlreadyAssigned Code = "already_assigned"
	CodeRemoved         Code = "removed"
	CodeInviteRemoved   Code = "invite_removed"
	CodePartialRemoval  Code = "partial_removal"
	CodeNotFound        Code = "not_found"
	CodeFound           Code = "found"
	CodeListed          Code = "listed"
	CodeHealthy         Code = "healthy"
	CodeUnreachable     Code = "unreachable"
	CodeFailed          Code = "failed"
)

// Outcome is the result of an operation for a single provider.
type Outcome struct {
	Provider string     `json:"provider"`
	Status   Status     `json:"status"`
	Code     Code       `json:"code"`
	Message  string     `json:"message,omitempty"`
	Since    *time.Time `json:"since,omitempty"`
	// Performed lists the vendor-side changes that happened, including on failure.
	Performed []string `json:"performed,omitempty"`
	Err       error    `json:"-"`
}

func success(provider string, code Code, format string, args ...any) Outcome {
	return Outcome{Provider: provider, Status: StatusSuccess, Code: code, Message: fmt.Sprintf(format, args...)}
}

func warning(provider string, code Code, format string, args ...any) Outcome {
	return Outcome{Provider: provider, Status: StatusWarning, Code: code, Message: fmt.Sprintf(format, args...)}
}

func failure(provider string, code Code, err error) Outcome {
	return Outcome{Provider: provider, Status: StatusError, Code: code, Message: err.Error(), Err: err}
}

// Report aggregates the per-provider outcomes of one operation.
type Report struct {
	Operation Operation `json:"operation"`
	Email     string    `json:"email,omitempty"`
	Outcomes  []Outcome `json:"outcomes"`

	// Users holds the merged identities for info and list.
	Users []identity.Identity `json:"users,omitempty"`
	// Invites holds the matching invites for the invites operation.
	Invites []identity.Invite `json:"invites,omitempty"`
	// FromCache is set when Users came from the local store instead of the providers.
	FromCache bool `json:"fromCache,omitempty"`
}

// Failed reports whether any provider ended in error.
func (r *Report) Failed() bool {
	for _, o := range r.Outcomes {
		if o.Status == StatusError {
			return true
		}
	}
	return false
}

// Count returns how many outcomes have the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Err joins the errors of every failed provider, or returns nil.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Outcomes {
		if o.Status == StatusError && o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Provider, o.Err))
		}
	}
	return errors.Join(errs...)
}

// ListOptions controls the list operation.
type ListOptions struct {
	// Filter keeps users whose email contains it, case-insensitively.
	Filter string
	// Providers restricts the sync to the named providers. Empty means all.
	Providers []string
	// Cached returns the stored list when one exists instead of syncing.
	Cached bool
}

// InviteOptions controls the invites operation.
type InviteOptions struct {
	// Status keeps invites in this state. Empty means pending.
	Status string
	// Filter keeps invites whose email contains it, case-insensitively.
	Filter string
	// Providers restricts the listing to the named providers. Empty means all.
	Providers []string
}
