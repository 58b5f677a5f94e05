package k8s

import "time"

// Kubernetes client constants
const (
	// RequestTimeout is the per-request timeout applied to the REST client.
	// Without it a hung API call would leave the owning resource kind stuck
	// in its loading state, since in-flight requests are never cancelled.
	RequestTimeout = 30 * time.Second

	// LogTailLines is the number of log lines fetched when a pod log view
	// opens. Matches what kubectl shows for a quick interactive look.
	LogTailLines int64 = 100
)
