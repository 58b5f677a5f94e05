package engine

import "github.com/renato0307/ponte/internal/k8s"

// Outcome is the message type background operations publish to the bus.
// The unexported marker keeps the set closed, so the engine's apply switch
// is exhaustive.
type Outcome interface {
	outcome()
}

// InitOutcome reports session initialization, successful or not.
type InitOutcome struct {
	Err error
}

// ContextSwitchOutcome reports an attempt to switch kubeconfig contexts.
type ContextSwitchOutcome struct {
	Name string
	Err  error
}

// NamespacesOutcome carries the namespace list for the picker. On error
// the previous list stays in place.
type NamespacesOutcome struct {
	Namespaces []string
	Err        error
}

// FetchOutcome carries one kind's refreshed rows. ReqID fences out
// responses that a newer request has superseded.
type FetchOutcome struct {
	Kind  Kind
	ReqID uint64
	Items []any
	Err   error
}

// ActionOutcome reports a mutation. Summary is the gateway's one-line
// description, shown as a notification.
type ActionOutcome struct {
	Summary string
	Err     error
}

// LogsOutcome carries fetched pod logs.
type LogsOutcome struct {
	Pod  string
	Text string
	Err  error
}

// HistoryOutcome carries the jobs spawned by one cronjob.
type HistoryOutcome struct {
	Parent string
	Jobs   []k8s.JobInfo
	Err    error
}

// DetailOutcome carries YAML or describe text for the detail pane.
type DetailOutcome struct {
	Title string
	Text  string
	Err   error
}

func (InitOutcome) outcome()          {}
func (ContextSwitchOutcome) outcome() {}
func (NamespacesOutcome) outcome()    {}
func (FetchOutcome) outcome()         {}
func (ActionOutcome) outcome()        {}
func (LogsOutcome) outcome()          {}
func (HistoryOutcome) outcome()       {}
func (DetailOutcome) outcome()        {}
