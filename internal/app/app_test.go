package app

import (
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/rest"
	k8stesting "k8s.io/client-go/testing"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	"k8s.io/utils/ptr"

	"github.com/renato0307/ponte/internal/components"
	"github.com/renato0307/ponte/internal/engine"
	"github.com/renato0307/ponte/internal/k8s"
	"github.com/renato0307/ponte/internal/ui"
)

func writeAppKubeconfig(t *testing.T) string {
	t.Helper()

	config := clientcmdapi.NewConfig()
	config.Clusters["test"] = &clientcmdapi.Cluster{Server: "https://test.example.com"}
	config.AuthInfos["test"] = &clientcmdapi.AuthInfo{Token: "secret"}
	config.Contexts["dev"] = &clientcmdapi.Context{Cluster: "test", AuthInfo: "test"}
	config.Contexts["prod"] = &clientcmdapi.Context{Cluster: "test", AuthInfo: "test"}
	config.CurrentContext = "dev"

	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, clientcmd.WriteToFile(*config, path))
	return path
}

func appObjects() []runtime.Object {
	return []runtime.Object{
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "default"}},
		&corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "team-a"}},
		&appsv1.Deployment{
			ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "default"},
			Spec:       appsv1.DeploymentSpec{Replicas: ptr.To(int32(2))},
		},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "web-1", Namespace: "default"}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{Name: "job-a", Namespace: "team-a"}},
	}
}

// newTestModel builds an initialized model over a fake clientset and
// settles it onto the ready deployments view.
func newTestModel(t *testing.T, objects ...runtime.Object) Model {
	t.Helper()

	if len(objects) == 0 {
		objects = appObjects()
	}

	session := k8s.NewSession(writeAppKubeconfig(t))
	session.SetTestConnection(func(_, _ string) (kubernetes.Interface, *rest.Config, error) {
		return fake.NewClientset(objects...), &rest.Config{}, nil
	})

	eng := engine.New(session, engine.NewBus())
	m := NewModel(session, eng, ui.GetTheme("charm"))
	m.Init()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)

	settle(t, &m, func(m Model) bool {
		return m.eng.Initialized() &&
			m.eng.Snapshot(engine.KindDeployments).State() == engine.StateReady
	})
	return m
}

// settle ticks the model until the condition holds.
func settle(t *testing.T, m *Model, cond func(Model) bool) {
	t.Helper()
	require.Eventually(t, func() bool {
		next, _ := m.Update(tickMsg(time.Now()))
		*m = next.(Model)
		return cond(*m)
	}, 2*time.Second, 5*time.Millisecond)
}

// press delivers one key and feeds any resulting component messages back
// into Update, so flows like confirm dialogs complete synchronously.
func press(t *testing.T, m Model, key string) Model {
	t.Helper()

	var msg tea.Msg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return deliver(t, m, msg)
}

func deliver(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()

	next, cmd := m.Update(msg)
	m = next.(Model)
	if cmd == nil {
		return m
	}

	switch result := cmd().(type) {
	case nil:
	case components.PickerSelectedMsg, components.PickerCancelledMsg,
		components.ConfirmResultMsg, components.InputSubmittedMsg,
		components.InputCancelledMsg, components.EditorSavedMsg,
		components.EditorCancelledMsg:
		m = deliver(t, m, result)
	}
	return m
}

func TestModelConnectingSplash(t *testing.T) {
	session := k8s.NewSession(writeAppKubeconfig(t))
	eng := engine.New(session, engine.NewBus())
	m := NewModel(session, eng, ui.GetTheme("charm"))

	assert.Contains(t, m.View(), "Connecting to cluster")
}

func TestModelInitFailureAndRetry(t *testing.T) {
	session := k8s.NewSession(writeAppKubeconfig(t))
	var failing atomic.Bool
	failing.Store(true)
	session.SetTestConnection(func(_, _ string) (kubernetes.Interface, *rest.Config, error) {
		if failing.Load() {
			return nil, nil, errors.New("cluster unreachable")
		}
		return fake.NewClientset(appObjects()...), &rest.Config{}, nil
	})

	eng := engine.New(session, engine.NewBus())
	m := NewModel(session, eng, ui.GetTheme("charm"))
	m.Init()

	settle(t, &m, func(m Model) bool { return m.eng.InitError() != "" })
	view := m.View()
	assert.Contains(t, view, "Failed to Initialize")
	assert.Contains(t, view, "cluster unreachable")
	assert.Contains(t, view, "[r] retry")

	failing.Store(false)
	m = press(t, m, "r")
	settle(t, &m, func(m Model) bool { return m.eng.Initialized() })
	assert.Contains(t, m.View(), "Deployments")
}

func TestModelViewNavigation(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "Deployments")
	assert.Contains(t, m.View(), "web")

	m = press(t, m, "2")
	assert.Equal(t, engine.ViewPods, m.eng.CurrentView())
	settle(t, &m, func(m Model) bool {
		return m.eng.Snapshot(engine.KindPods).State() == engine.StateReady
	})
	view := m.View()
	assert.Contains(t, view, "Pods")
	assert.Contains(t, view, "web-1")
	assert.Contains(t, view, "job-a")

	m = press(t, m, "tab")
	assert.Equal(t, engine.ViewServices, m.eng.CurrentView())
}

func TestModelPairedViewToggle(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "4")
	assert.Equal(t, engine.KindConfigMaps, m.activeKind)

	m = press(t, m, "o")
	assert.Equal(t, engine.KindSecrets, m.activeKind)
	m = press(t, m, "o")
	assert.Equal(t, engine.KindConfigMaps, m.activeKind)

	// Single-kind views have nothing to toggle.
	m = press(t, m, "1")
	m = press(t, m, "o")
	assert.Equal(t, engine.KindDeployments, m.activeKind)
}

func TestModelFilter(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "2")
	settle(t, &m, func(m Model) bool {
		return m.eng.Snapshot(engine.KindPods).State() == engine.StateReady
	})

	m = press(t, m, "/")
	m = press(t, m, "j")
	m = press(t, m, "o")
	m = press(t, m, "b")
	m = press(t, m, "enter")

	require.Len(t, m.rows, 1)
	assert.Equal(t, "job-a", m.rows[0].(k8s.PodInfo).Name)

	m = press(t, m, "esc")
	settle(t, &m, func(m Model) bool { return len(m.rows) == 2 })
}

func TestModelDeleteConfirmFlow(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "2")
	settle(t, &m, func(m Model) bool {
		return m.eng.Snapshot(engine.KindPods).State() == engine.StateReady
	})

	m = press(t, m, "x")
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), "Delete pod")

	m = press(t, m, "y")
	assert.Nil(t, m.confirm)

	settle(t, &m, func(m Model) bool { return len(m.eng.Notifications()) > 0 })
	note := m.eng.Notifications()[0]
	assert.False(t, note.IsError)
	assert.Contains(t, note.Text, "Deleted pod")

	settle(t, &m, func(m Model) bool {
		snap := m.eng.Snapshot(engine.KindPods)
		return snap.State() == engine.StateReady && len(snap.Items) == 1
	})
}

func TestModelDeleteCancelled(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "x")
	require.NotNil(t, m.confirm)

	m = press(t, m, "n")
	assert.Nil(t, m.confirm)

	// Nothing dispatched, nothing to notify.
	next, _ := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.Empty(t, m.eng.Notifications())
	assert.Len(t, m.eng.Snapshot(engine.KindDeployments).Items, 1)
}

func TestModelScaleDialog(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "s")
	require.NotNil(t, m.dialog)
	assert.Contains(t, m.View(), "Scale web")
	// Pre-filled with the current replica count.
	assert.Equal(t, "2", m.dialog.Value())

	m = press(t, m, "enter")
	assert.Nil(t, m.dialog)

	settle(t, &m, func(m Model) bool { return len(m.eng.Notifications()) > 0 })
	assert.Equal(t, "Scaled web to 2 replicas", m.eng.Notifications()[0].Text)
}

func TestModelScaleRejectsBadInput(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "s")
	require.NotNil(t, m.dialog)

	m = deliver(t, m, components.InputSubmittedMsg{Value: "lots"})
	require.NotEmpty(t, m.eng.Notifications())
	note := m.eng.Notifications()[0]
	assert.True(t, note.IsError)
	assert.Contains(t, note.Text, "Invalid replica count")
}

func TestModelContextPicker(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "c")
	require.NotNil(t, m.picker)
	view := m.View()
	assert.Contains(t, view, "Switch Context")
	assert.Contains(t, view, "dev")
	assert.Contains(t, view, "prod")

	m = deliver(t, m, components.PickerSelectedMsg{ID: "prod"})
	assert.Nil(t, m.picker)
	settle(t, &m, func(m Model) bool { return m.eng.CurrentContext() == "prod" })
}

func TestModelNamespacePicker(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "2")
	settle(t, &m, func(m Model) bool {
		return m.eng.Snapshot(engine.KindPods).State() == engine.StateReady
	})

	m = press(t, m, "n")
	require.NotNil(t, m.picker)
	assert.Contains(t, m.View(), "All namespaces")

	m = deliver(t, m, components.PickerSelectedMsg{ID: "team-a"})
	assert.Equal(t, "team-a", m.eng.Namespace())
	settle(t, &m, func(m Model) bool {
		snap := m.eng.Snapshot(engine.KindPods)
		return snap.State() == engine.StateReady && len(snap.Items) == 1
	})
}

func TestModelEditorRoundTrip(t *testing.T) {
	objects := append(appObjects(), &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "settings", Namespace: "default"},
		Data:       map[string]string{"mode": "dev"},
	})
	m := newTestModel(t, objects...)

	m = press(t, m, "4")
	settle(t, &m, func(m Model) bool {
		snap := m.eng.Snapshot(engine.KindConfigMaps)
		return snap.State() == engine.StateReady && len(snap.Items) == 1
	})

	m = press(t, m, "e")
	require.NotNil(t, m.editor)
	assert.Contains(t, m.editor.Value(), "mode: dev")

	m = deliver(t, m, components.EditorSavedMsg{Text: "mode: prod\n"})
	assert.Nil(t, m.editor)
	settle(t, &m, func(m Model) bool { return len(m.eng.Notifications()) > 0 })
	assert.Equal(t, "Updated configmap settings", m.eng.Notifications()[0].Text)
}

func TestModelEditorRejectsBadYAML(t *testing.T) {
	objects := append(appObjects(), &corev1.ConfigMap{
		ObjectMeta: metav1.ObjectMeta{Name: "settings", Namespace: "default"},
		Data:       map[string]string{"mode": "dev"},
	})
	m := newTestModel(t, objects...)

	m = press(t, m, "4")
	settle(t, &m, func(m Model) bool {
		return len(m.eng.Snapshot(engine.KindConfigMaps).Items) == 1
	})
	m = press(t, m, "e")
	require.NotNil(t, m.editor)

	m = deliver(t, m, components.EditorSavedMsg{Text: ":\tnot yaml"})
	require.NotEmpty(t, m.eng.Notifications())
	note := m.eng.Notifications()[0]
	assert.True(t, note.IsError)
	assert.Contains(t, note.Text, "Invalid YAML")
}

func TestModelLogsPane(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, "2")
	settle(t, &m, func(m Model) bool {
		return m.eng.Snapshot(engine.KindPods).State() == engine.StateReady
	})

	m = press(t, m, "l")
	require.NotNil(t, m.pane)
	assert.Equal(t, components.PaneLogs, m.pane.Kind())

	settle(t, &m, func(m Model) bool { return !m.eng.Logs().Loading })
	next, _ := m.Update(tickMsg(time.Now()))
	m = next.(Model)
	assert.Contains(t, m.View(), "fake logs")

	m = press(t, m, "esc")
	assert.Nil(t, m.pane)
}

func TestModelErrorBannerKeepsStaleRows(t *testing.T) {
	fakeClient := fake.NewClientset(appObjects()...)
	var failing atomic.Bool
	fakeClient.PrependReactor("list", "deployments",
		func(k8stesting.Action) (bool, runtime.Object, error) {
			if failing.Load() {
				return true, nil, errors.New("etcd timeout")
			}
			return false, nil, nil
		})

	session := k8s.NewSession(writeAppKubeconfig(t))
	session.SetTestConnection(func(_, _ string) (kubernetes.Interface, *rest.Config, error) {
		return fakeClient, &rest.Config{}, nil
	})

	eng := engine.New(session, engine.NewBus())
	m := NewModel(session, eng, ui.GetTheme("charm"))
	m.Init()
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(Model)
	settle(t, &m, func(m Model) bool {
		return m.eng.Snapshot(engine.KindDeployments).State() == engine.StateReady
	})

	failing.Store(true)
	m = press(t, m, "r")
	settle(t, &m, func(m Model) bool {
		return m.eng.Snapshot(engine.KindDeployments).State() == engine.StateErrored
	})

	view := m.View()
	assert.Contains(t, view, "etcd timeout")
	// The stale rows stay under the banner.
	assert.Contains(t, view, "web")
}

func TestModelHelpLinePerView(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.helpLine(), "s: scale")

	m = press(t, m, "2")
	assert.Contains(t, m.helpLine(), "l: logs")

	m = press(t, m, "6")
	assert.Contains(t, m.helpLine(), "t: trigger")
}
