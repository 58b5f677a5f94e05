package k8s

import (
	"fmt"
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// formatAge renders a creation timestamp as a compact kubectl-style age
// ("3d", "5h", "12m", "40s"). Computed once at fetch time, never live.
func formatAge(ts *metav1.Time) string {
	if ts == nil || ts.IsZero() {
		return "Unknown"
	}
	return formatSince(time.Since(ts.Time))
}

func formatSince(d time.Duration) string {
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	case d >= time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
