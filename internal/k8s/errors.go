package k8s

import (
	"errors"
	"fmt"

	k8serrors "k8s.io/apimachinery/pkg/api/errors"
)

// ConnectError marks a session bring-up failure: kubeconfig missing or
// malformed, or a context that cannot be resolved. The UI shows it on the
// full-screen retry prompt.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string { return e.Err.Error() }
func (e *ConnectError) Unwrap() error { return e.Err }

// FetchError marks a failed list call for one resource kind. The prior
// snapshot stays displayable; the UI shows this inline.
type FetchError struct {
	Kind string
	Err  error
}

func (e *FetchError) Error() string { return fmt.Sprintf("listing %s: %v", e.Kind, e.Err) }
func (e *FetchError) Unwrap() error { return e.Err }

// MutateError marks a failed mutating call. Surfaced as a transient
// notification; nothing is retried.
type MutateError struct {
	Action string
	Err    error
}

func (e *MutateError) Error() string { return fmt.Sprintf("%s: %v", e.Action, e.Err) }
func (e *MutateError) Unwrap() error { return e.Err }

// Friendly rewrites Kubernetes API status errors into short operator-facing
// messages. Anything unrecognized passes through unchanged.
func Friendly(err error) string {
	if err == nil {
		return ""
	}

	target := ""
	var status k8serrors.APIStatus
	if errors.As(err, &status) {
		if d := status.Status().Details; d != nil && d.Name != "" {
			target = fmt.Sprintf(" %q", d.Name)
		}
	}

	switch {
	case k8serrors.IsNotFound(err):
		return fmt.Sprintf("resource%s not found", target)
	case k8serrors.IsForbidden(err):
		return fmt.Sprintf("permission denied accessing resource%s", target)
	case k8serrors.IsUnauthorized(err):
		return "authentication failed, check your credentials"
	case k8serrors.IsTimeout(err) || k8serrors.IsServerTimeout(err):
		return "Kubernetes API timeout"
	case k8serrors.IsConflict(err):
		return fmt.Sprintf("resource%s was modified, retry the operation", target)
	case k8serrors.IsInvalid(err):
		return fmt.Sprintf("invalid resource specification: %v", err)
	default:
		return err.Error()
	}
}
