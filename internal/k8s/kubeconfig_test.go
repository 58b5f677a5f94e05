package k8s

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/client-go/tools/clientcmd"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// writeTestKubeconfig fabricates a kubeconfig file with the given contexts
// and current context. Each context gets a matching cluster and user entry.
func writeTestKubeconfig(t *testing.T, current string, contexts map[string]*clientcmdapi.Context) string {
	t.Helper()

	config := clientcmdapi.NewConfig()
	for name, ctx := range contexts {
		if ctx.Cluster == "" {
			ctx.Cluster = name + "-cluster"
		}
		if ctx.AuthInfo == "" {
			ctx.AuthInfo = name + "-user"
		}
		config.Clusters[ctx.Cluster] = &clientcmdapi.Cluster{
			Server: "https://" + ctx.Cluster + ".example.com",
		}
		config.AuthInfos[ctx.AuthInfo] = &clientcmdapi.AuthInfo{Token: "token-" + name}
		config.Contexts[name] = ctx
	}
	config.CurrentContext = current

	path := filepath.Join(t.TempDir(), "kubeconfig")
	require.NoError(t, clientcmd.WriteToFile(*config, path))
	return path
}

func TestParseKubeconfig(t *testing.T) {
	t.Run("multiple contexts sorted by name", func(t *testing.T) {
		path := writeTestKubeconfig(t, "zulu", map[string]*clientcmdapi.Context{
			"zulu":  {Namespace: "default"},
			"alpha": {Namespace: "kube-system"},
			"mike":  {},
		})

		contexts, current, err := parseKubeconfig(path)
		require.NoError(t, err)
		assert.Equal(t, "zulu", current)

		require.Len(t, contexts, 3)
		assert.Equal(t, "alpha", contexts[0].Name)
		assert.Equal(t, "mike", contexts[1].Name)
		assert.Equal(t, "zulu", contexts[2].Name)

		assert.Equal(t, "alpha-cluster", contexts[0].Cluster)
		assert.Equal(t, "alpha-user", contexts[0].User)
		assert.Equal(t, "kube-system", contexts[0].Namespace)
		assert.Equal(t, "", contexts[1].Namespace)
	})

	t.Run("empty kubeconfig", func(t *testing.T) {
		path := writeTestKubeconfig(t, "", nil)

		contexts, current, err := parseKubeconfig(path)
		require.NoError(t, err)
		assert.Empty(t, contexts)
		assert.Equal(t, "", current)
	})

	t.Run("nonexistent path", func(t *testing.T) {
		_, _, err := parseKubeconfig("/nonexistent/path/kubeconfig")
		assert.Error(t, err)
	})

	t.Run("corrupted file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kubeconfig")
		require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o644))

		_, _, err := parseKubeconfig(path)
		assert.Error(t, err)
	})
}

func TestResolveKubeconfigPath(t *testing.T) {
	assert.Equal(t, "/tmp/explicit", resolveKubeconfigPath("/tmp/explicit"))

	t.Setenv("KUBECONFIG", "/tmp/from-env")
	assert.Equal(t, "/tmp/from-env", resolveKubeconfigPath(""))
}
