package engine

import (
	"context"
	"fmt"
	"time"

	"k8s.io/client-go/kubernetes"

	"github.com/renato0307/ponte/internal/k8s"
	"github.com/renato0307/ponte/internal/logging"
)

// SnapshotState labels the lifecycle of one kind's snapshot.
type SnapshotState int

const (
	StateIdle SnapshotState = iota
	StateLoading
	StateReady
	StateErrored
)

// Snapshot is one kind's UI-facing state. Items hold the last successful
// fetch; a failed fetch leaves them in place so the table can keep showing
// stale rows under the error banner.
type Snapshot struct {
	Items     []any
	Loading   bool
	LastError string
}

// State derives the machine state from the fields.
func (s Snapshot) State() SnapshotState {
	switch {
	case s.Loading:
		return StateLoading
	case s.LastError != "":
		return StateErrored
	case s.Items != nil:
		return StateReady
	default:
		return StateIdle
	}
}

// LogsState backs the log viewer pane.
type LogsState struct {
	Pod     string
	Text    string
	Loading bool
}

// HistoryState backs the cronjob history pane.
type HistoryState struct {
	Parent  string
	Jobs    []k8s.JobInfo
	Loading bool
}

// DetailState backs the YAML and describe pane.
type DetailState struct {
	Title   string
	Text    string
	Loading bool
}

// Engine owns all cluster-derived UI state. It lives on the presentation
// goroutine and is not safe for concurrent use. Background work reaches it
// only through the bus: every request spawns a goroutine that publishes
// exactly one outcome, and Tick applies whatever has arrived.
type Engine struct {
	session *k8s.Session
	bus     *Bus

	initialized bool
	initError   string

	currentView    View
	namespace      string
	namespaces     []string
	contexts       []k8s.ContextInfo
	currentContext string

	snapshots map[Kind]*Snapshot
	reqIDs    map[Kind]uint64

	notifications []Notification

	logs    LogsState
	history HistoryState
	detail  DetailState
}

// New creates an engine over a session and a bus. Nothing is fetched until
// Initialize.
func New(session *k8s.Session, bus *Bus) *Engine {
	snapshots := make(map[Kind]*Snapshot, len(kindTable))
	for kind := range kindTable {
		snapshots[kind] = &Snapshot{}
	}
	return &Engine{
		session:     session,
		bus:         bus,
		currentView: ViewDeployments,
		snapshots:   snapshots,
		reqIDs:      make(map[Kind]uint64, len(kindTable)),
	}
}

// Initialize connects the session in the background. On success the
// namespace list is published first, then the init outcome; applying the
// init outcome refreshes the current view.
func (e *Engine) Initialize() {
	e.initError = ""
	go func() {
		if err := e.session.Initialize(); err != nil {
			e.bus.Publish(InitOutcome{Err: err})
			return
		}
		e.publishNamespaces()
		e.bus.Publish(InitOutcome{})
	}()
}

// Retry re-runs initialization after a failure.
func (e *Engine) Retry() {
	e.Initialize()
}

// SelectContext switches the session to the named context in the
// background. The current connection keeps serving until the switch
// succeeds.
func (e *Engine) SelectContext(name string) {
	go func() {
		if err := e.session.SwitchContext(name); err != nil {
			e.bus.Publish(ContextSwitchOutcome{Name: name, Err: err})
			return
		}
		e.bus.Publish(ContextSwitchOutcome{Name: name})
		e.publishNamespaces()
	}()
}

// SelectNamespace sets the namespace filter (empty means all namespaces)
// and refreshes the current view.
func (e *Engine) SelectNamespace(namespace string) {
	e.namespace = namespace
	e.refreshKinds(e.currentView.Kinds())
}

// SelectView makes the view current and fetches its kinds. Entering a view
// always refetches; snapshots of the views left behind stay as they are.
func (e *Engine) SelectView(view View) {
	e.currentView = view
	e.refreshKinds(view.Kinds())
}

// NextView cycles to the next view in tab order.
func (e *Engine) NextView() {
	e.SelectView(e.currentView.Next())
}

// Refresh refetches the current view's kinds.
func (e *Engine) Refresh() {
	e.refreshKinds(e.currentView.Kinds())
}

func (e *Engine) refreshKinds(kinds []Kind) {
	for _, kind := range kinds {
		e.dispatchFetch(kind)
	}
}

// dispatchFetch marks the kind loading and spawns one goroutine that
// publishes one FetchOutcome. Without a connection the goroutine is
// skipped and the kind stays loading; only the init flow dispatches before
// a connection exists, and it always follows up with a refresh.
func (e *Engine) dispatchFetch(kind Kind) {
	snap := e.snapshots[kind]
	snap.Loading = true
	snap.LastError = ""

	e.reqIDs[kind]++
	reqID := e.reqIDs[kind]

	client := e.session.Clientset()
	if client == nil {
		logging.Debug("Fetch skipped, no connection", "kind", string(kind))
		return
	}

	namespace := e.namespace
	list := kindTable[kind].list
	go func() {
		items, err := list(context.Background(), client, namespace)
		e.bus.Publish(FetchOutcome{Kind: kind, ReqID: reqID, Items: items, Err: err})
	}()
}

// action is one mutation against the cluster, returning the summary line.
type action func(ctx context.Context, client kubernetes.Interface) (string, error)

func (e *Engine) dispatchAction(a action) {
	client := e.session.Clientset()
	if client == nil {
		logging.Debug("Action skipped, no connection")
		return
	}
	go func() {
		summary, err := a(context.Background(), client)
		e.bus.Publish(ActionOutcome{Summary: summary, Err: err})
	}()
}

// ScaleDeployment sets the deployment's replica count.
func (e *Engine) ScaleDeployment(namespace, name string, replicas int32) {
	e.dispatchAction(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		return k8s.ScaleDeployment(ctx, client, namespace, name, replicas)
	})
}

// RestartDeployment triggers a rolling restart.
func (e *Engine) RestartDeployment(namespace, name string) {
	e.dispatchAction(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		return k8s.RestartDeployment(ctx, client, namespace, name)
	})
}

// DeleteDeployment deletes a deployment.
func (e *Engine) DeleteDeployment(namespace, name string) {
	e.dispatchAction(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		return k8s.DeleteDeployment(ctx, client, namespace, name)
	})
}

// DeletePod deletes a pod.
func (e *Engine) DeletePod(namespace, name string) {
	e.dispatchAction(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		return k8s.DeletePod(ctx, client, namespace, name)
	})
}

// DeleteJob deletes a job.
func (e *Engine) DeleteJob(namespace, name string) {
	e.dispatchAction(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		return k8s.DeleteJob(ctx, client, namespace, name)
	})
}

// UpdateConfigMap replaces the configmap's data keys.
func (e *Engine) UpdateConfigMap(namespace, name string, data map[string]string) {
	e.dispatchAction(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		return k8s.UpdateConfigMapData(ctx, client, namespace, name, data)
	})
}

// TriggerCronJob creates a one-off job from the cronjob's template.
func (e *Engine) TriggerCronJob(namespace, name string) {
	e.dispatchAction(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		return k8s.TriggerCronJob(ctx, client, namespace, name)
	})
}

// SuspendCronJob sets the cronjob's suspend flag.
func (e *Engine) SuspendCronJob(namespace, name string, suspend bool) {
	e.dispatchAction(func(ctx context.Context, client kubernetes.Interface) (string, error) {
		return k8s.SetCronJobSuspend(ctx, client, namespace, name, suspend)
	})
}

// PodLogs fetches a pod's recent log lines into the logs pane. Errors
// render inline in the pane, not as notifications.
func (e *Engine) PodLogs(namespace, pod, container string, tailLines int64) {
	e.logs = LogsState{Pod: pod, Loading: true}

	client := e.session.Clientset()
	if client == nil {
		return
	}
	go func() {
		text, err := k8s.PodLogs(context.Background(), client, namespace, pod, container, tailLines)
		e.bus.Publish(LogsOutcome{Pod: pod, Text: text, Err: err})
	}()
}

// CronJobHistory fetches the jobs owned by a cronjob into the history pane.
func (e *Engine) CronJobHistory(namespace, name string) {
	e.history = HistoryState{Parent: name, Loading: true}

	client := e.session.Clientset()
	if client == nil {
		return
	}
	go func() {
		jobs, err := k8s.CronJobHistory(context.Background(), client, namespace, name)
		e.bus.Publish(HistoryOutcome{Parent: name, Jobs: jobs, Err: err})
	}()
}

// Inspect fetches a resource's server-side YAML into the detail pane.
func (e *Engine) Inspect(kind Kind, namespace, name string) {
	title := fmt.Sprintf("%s/%s", kind, name)
	e.detail = DetailState{Title: title, Loading: true}

	client := e.session.Clientset()
	if client == nil {
		return
	}
	go func() {
		text, err := k8s.ResourceYAML(context.Background(), client, string(kind), namespace, name)
		e.bus.Publish(DetailOutcome{Title: title, Text: text, Err: err})
	}()
}

// Describe fetches kubectl describe output into the detail pane.
func (e *Engine) Describe(kind Kind, namespace, name string) {
	title := fmt.Sprintf("%s/%s", kind, name)
	e.detail = DetailState{Title: title, Loading: true}

	config := e.session.RESTConfig()
	if config == nil {
		return
	}
	go func() {
		text, err := k8s.DescribeResource(config, string(kind), namespace, name)
		e.bus.Publish(DetailOutcome{Title: title, Text: text, Err: err})
	}()
}

// publishNamespaces lists namespaces and publishes the result. Runs on a
// background goroutine.
func (e *Engine) publishNamespaces() {
	client := e.session.Clientset()
	if client == nil {
		return
	}
	namespaces, err := k8s.ListNamespaces(context.Background(), client)
	e.bus.Publish(NamespacesOutcome{Namespaces: namespaces, Err: err})
}

// Tick drains the bus, applies every outcome, and expires notifications.
// Called once per UI frame; does no network I/O and never blocks.
func (e *Engine) Tick(now time.Time) {
	for _, outcome := range e.bus.Drain() {
		e.apply(outcome, now)
	}
	e.notifications = pruneNotifications(e.notifications, now)
}

func (e *Engine) apply(outcome Outcome, now time.Time) {
	switch o := outcome.(type) {
	case InitOutcome:
		e.applyInit(o)
	case ContextSwitchOutcome:
		e.applyContextSwitch(o, now)
	case NamespacesOutcome:
		e.applyNamespaces(o)
	case FetchOutcome:
		e.applyFetch(o)
	case ActionOutcome:
		e.applyAction(o, now)
	case LogsOutcome:
		e.applyLogs(o)
	case HistoryOutcome:
		e.applyHistory(o, now)
	case DetailOutcome:
		e.applyDetail(o)
	}
}

func (e *Engine) applyInit(o InitOutcome) {
	if o.Err != nil {
		e.initError = k8s.Friendly(o.Err)
		logging.Error("Session initialization failed", "error", o.Err)
		return
	}

	e.initialized = true
	e.initError = ""
	e.contexts = e.session.Contexts()
	e.currentContext = e.session.CurrentContext()
	logging.Info("Session ready", "context", e.currentContext)

	e.refreshKinds(e.currentView.Kinds())
}

func (e *Engine) applyContextSwitch(o ContextSwitchOutcome, now time.Time) {
	if o.Err != nil {
		e.notify("Failed to switch context: "+k8s.Friendly(o.Err), true, now)
		logging.Error("Context switch failed", "context", o.Name, "error", o.Err)
		return
	}

	e.currentContext = e.session.CurrentContext()
	e.notify("Context switched successfully", false, now)
	logging.Info("Context switched", "context", o.Name)

	// Bumped request ids fence out fetches still in flight against the
	// previous cluster.
	e.refreshKinds(e.currentView.Kinds())
}

func (e *Engine) applyNamespaces(o NamespacesOutcome) {
	if o.Err != nil {
		logging.Warn("Namespace listing failed", "error", o.Err)
		return
	}
	e.namespaces = o.Namespaces
}

func (e *Engine) applyFetch(o FetchOutcome) {
	if o.ReqID != e.reqIDs[o.Kind] {
		logging.Debug("Discarding stale fetch", "kind", string(o.Kind),
			"reqID", o.ReqID, "latest", e.reqIDs[o.Kind])
		return
	}

	snap := e.snapshots[o.Kind]
	snap.Loading = false
	if o.Err != nil {
		snap.LastError = k8s.Friendly(o.Err)
		logging.Warn("Fetch failed", "kind", string(o.Kind), "error", o.Err)
		return
	}
	snap.LastError = ""
	snap.Items = o.Items
}

func (e *Engine) applyAction(o ActionOutcome, now time.Time) {
	if o.Err != nil {
		e.notify("Error: "+k8s.Friendly(o.Err), true, now)
		logging.Error("Action failed", "error", o.Err)
		return
	}

	e.notify(o.Summary, false, now)
	e.refreshKinds(e.currentView.Kinds())
}

func (e *Engine) applyLogs(o LogsOutcome) {
	if o.Err != nil {
		e.logs = LogsState{Pod: o.Pod, Text: "Error: " + k8s.Friendly(o.Err)}
		logging.Warn("Log fetch failed", "pod", o.Pod, "error", o.Err)
		return
	}
	e.logs = LogsState{Pod: o.Pod, Text: o.Text}
}

func (e *Engine) applyHistory(o HistoryOutcome, now time.Time) {
	if o.Err != nil {
		e.history = HistoryState{Parent: o.Parent}
		e.notify("Failed to load history: "+k8s.Friendly(o.Err), true, now)
		return
	}
	e.history = HistoryState{Parent: o.Parent, Jobs: o.Jobs}
}

func (e *Engine) applyDetail(o DetailOutcome) {
	if o.Err != nil {
		e.detail = DetailState{Title: o.Title, Text: "Error: " + k8s.Friendly(o.Err)}
		return
	}
	e.detail = DetailState{Title: o.Title, Text: o.Text}
}

func (e *Engine) notify(text string, isError bool, now time.Time) {
	e.notifications = append(e.notifications, Notification{
		Text:      text,
		IsError:   isError,
		CreatedAt: now,
	})
}

// Notify adds a notification originating in the UI itself, like a
// clipboard copy confirmation.
func (e *Engine) Notify(text string, isError bool) {
	e.notify(text, isError, time.Now())
}

// Initialized reports whether a session connection has been established.
func (e *Engine) Initialized() bool {
	return e.initialized
}

// InitError returns the friendly text of the last failed initialization,
// empty once initialization succeeds or is retried.
func (e *Engine) InitError() string {
	return e.initError
}

// CurrentView returns the active view.
func (e *Engine) CurrentView() View {
	return e.currentView
}

// Namespace returns the namespace filter, empty for all namespaces.
func (e *Engine) Namespace() string {
	return e.namespace
}

// Namespaces returns the last successfully fetched namespace list.
func (e *Engine) Namespaces() []string {
	return e.namespaces
}

// Contexts returns the kubeconfig contexts known to the session.
func (e *Engine) Contexts() []k8s.ContextInfo {
	return e.contexts
}

// CurrentContext returns the name of the context in use.
func (e *Engine) CurrentContext() string {
	return e.currentContext
}

// Snapshot returns the named kind's current snapshot. The items slice is
// shared; callers must treat it as read-only.
func (e *Engine) Snapshot(kind Kind) Snapshot {
	return *e.snapshots[kind]
}

// ViewLoading reports whether any of the view's kinds is still loading.
func (e *Engine) ViewLoading(view View) bool {
	for _, kind := range view.Kinds() {
		if e.snapshots[kind].Loading {
			return true
		}
	}
	return false
}

// ViewError returns the first fetch error among the view's kinds, empty
// when they are all healthy.
func (e *Engine) ViewError(view View) string {
	for _, kind := range view.Kinds() {
		if msg := e.snapshots[kind].LastError; msg != "" {
			return msg
		}
	}
	return ""
}

// Logs returns the log pane state.
func (e *Engine) Logs() LogsState {
	return e.logs
}

// History returns the cronjob history pane state.
func (e *Engine) History() HistoryState {
	return e.history
}

// Detail returns the YAML/describe pane state.
func (e *Engine) Detail() DetailState {
	return e.detail
}

// Notifications returns the notifications still within their display
// window, oldest first.
func (e *Engine) Notifications() []Notification {
	return e.notifications
}
