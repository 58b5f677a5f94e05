package k8s

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/client-go/rest"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

func TestSessionInitialize(t *testing.T) {
	path := writeTestKubeconfig(t, "dev", map[string]*clientcmdapi.Context{
		"dev":  {Namespace: "default"},
		"prod": {},
	})

	session := NewSession(path)
	assert.Nil(t, session.Clientset())
	assert.Nil(t, session.RESTConfig())
	assert.Equal(t, "", session.CurrentContext())

	require.NoError(t, session.Initialize())

	assert.NotNil(t, session.Clientset())
	assert.Equal(t, "dev", session.CurrentContext())

	config := session.RESTConfig()
	require.NotNil(t, config)
	assert.Equal(t, "application/vnd.kubernetes.protobuf", config.ContentType)
	assert.Equal(t, RequestTimeout, config.Timeout)

	contexts := session.Contexts()
	require.Len(t, contexts, 2)
	assert.Equal(t, "dev", contexts[0].Name)
	assert.Equal(t, "prod", contexts[1].Name)
}

func TestSessionInitializeMissingFile(t *testing.T) {
	session := NewSession(filepath.Join(t.TempDir(), "does-not-exist"))

	err := session.Initialize()
	require.Error(t, err)

	var connectErr *ConnectError
	assert.True(t, errors.As(err, &connectErr))
	assert.Nil(t, session.Clientset())
	assert.Equal(t, "", session.CurrentContext())
	assert.Empty(t, session.Contexts())
}

func TestSessionInitializeNoCurrentContext(t *testing.T) {
	path := writeTestKubeconfig(t, "", map[string]*clientcmdapi.Context{
		"dev": {},
	})

	session := NewSession(path)
	err := session.Initialize()
	require.Error(t, err)

	var connectErr *ConnectError
	assert.True(t, errors.As(err, &connectErr))
	assert.Nil(t, session.Clientset())
}

func TestSessionInitializeTwice(t *testing.T) {
	path := writeTestKubeconfig(t, "dev", map[string]*clientcmdapi.Context{
		"dev": {},
	})

	session := NewSession(path)
	require.NoError(t, session.Initialize())
	first := session.Clientset()

	require.NoError(t, session.Initialize())
	assert.NotNil(t, session.Clientset())
	assert.NotSame(t, first, session.Clientset())
	assert.Equal(t, "dev", session.CurrentContext())
	assert.Len(t, session.Contexts(), 1)
}

func TestSessionOverrideContext(t *testing.T) {
	path := writeTestKubeconfig(t, "dev", map[string]*clientcmdapi.Context{
		"dev":  {},
		"prod": {},
	})

	session := NewSession(path)
	session.OverrideContext("prod")
	require.NoError(t, session.Initialize())

	// The override wins over the kubeconfig's current context.
	assert.Equal(t, "prod", session.CurrentContext())
	assert.Len(t, session.Contexts(), 2)
}

func TestSessionSwitchContext(t *testing.T) {
	path := writeTestKubeconfig(t, "dev", map[string]*clientcmdapi.Context{
		"dev":  {},
		"prod": {},
	})

	session := NewSession(path)
	require.NoError(t, session.Initialize())
	before := session.Clientset()

	require.NoError(t, session.SwitchContext("prod"))
	assert.Equal(t, "prod", session.CurrentContext())
	assert.NotSame(t, before, session.Clientset())

	// The context list comes from the kubeconfig, not the connection.
	assert.Len(t, session.Contexts(), 2)
}

func TestSessionSwitchContextUnknown(t *testing.T) {
	path := writeTestKubeconfig(t, "dev", map[string]*clientcmdapi.Context{
		"dev": {},
	})

	session := NewSession(path)
	require.NoError(t, session.Initialize())
	before := session.Clientset()

	err := session.SwitchContext("nope")
	require.Error(t, err)

	var connectErr *ConnectError
	assert.True(t, errors.As(err, &connectErr))

	// The failed switch must not disturb the working connection.
	assert.Equal(t, "dev", session.CurrentContext())
	assert.Same(t, before, session.Clientset())
}

func TestSessionSwitchContextBeforeInitialize(t *testing.T) {
	path := writeTestKubeconfig(t, "dev", map[string]*clientcmdapi.Context{
		"dev":  {},
		"prod": {},
	})

	session := NewSession(path)
	require.NoError(t, session.SwitchContext("prod"))
	assert.Equal(t, "prod", session.CurrentContext())
	assert.NotNil(t, session.Clientset())
}

func TestSessionSetTestConnection(t *testing.T) {
	path := writeTestKubeconfig(t, "dev", map[string]*clientcmdapi.Context{
		"dev": {},
	})

	var gotContext string
	fakeClient := fake.NewClientset()
	session := NewSession(path)
	session.SetTestConnection(func(kubeconfigPath, contextName string) (kubernetes.Interface, *rest.Config, error) {
		gotContext = contextName
		return fakeClient, &rest.Config{}, nil
	})

	require.NoError(t, session.Initialize())
	assert.Equal(t, "dev", gotContext)
	assert.Same(t, fakeClient, session.Clientset())
}

func TestSessionConcurrentReads(t *testing.T) {
	path := writeTestKubeconfig(t, "dev", map[string]*clientcmdapi.Context{
		"dev":  {},
		"prod": {},
	})

	session := NewSession(path)
	require.NoError(t, session.Initialize())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = session.Clientset()
				_ = session.CurrentContext()
				_ = session.Contexts()
			}
		}()
	}

	for j := 0; j < 10; j++ {
		name := "prod"
		if j%2 == 1 {
			name = "dev"
		}
		require.NoError(t, session.SwitchContext(name))
	}
	wg.Wait()
}
