package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/rest"

	"github.com/renato0307/ponte/internal/engine"
	"github.com/renato0307/ponte/internal/k8s"
	"github.com/renato0307/ponte/internal/testutil"
	"github.com/renato0307/ponte/internal/ui"
)

// TestE2ENavigation boots the full program against a fake clientset and
// walks the main views with real key input.
func TestE2ENavigation(t *testing.T) {
	session := k8s.NewSession(writeAppKubeconfig(t))
	session.SetTestConnection(func(_, _ string) (kubernetes.Interface, *rest.Config, error) {
		return fake.NewClientset(appObjects()...), &rest.Config{}, nil
	})

	model := NewModel(session, engine.New(session, engine.NewBus()), ui.GetTheme("charm"))

	tp := testutil.NewTestProgram(t, model, 120, 40)
	defer tp.Quit()

	// Startup lands on the deployments view once the session connects.
	assert.True(t, tp.WaitForOutput("Deployments", 3*time.Second))
	assert.True(t, tp.WaitForOutput("web", 3*time.Second))

	tp.Type("2")
	assert.True(t, tp.WaitForOutput("Pods", 3*time.Second))
	assert.True(t, tp.WaitForOutput("web-1", 3*time.Second))

	tp.SendKey(tea.KeyTab)
	assert.True(t, tp.WaitForOutput("Services", 3*time.Second))

	tp.Type("6")
	assert.True(t, tp.WaitForOutput("CronJobs", 3*time.Second))
}
