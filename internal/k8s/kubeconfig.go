package k8s

import (
	"fmt"
	"sort"

	"k8s.io/client-go/tools/clientcmd"
)

// ContextInfo holds context metadata read from kubeconfig. Values are
// captured at initialize/switch time and never mutated afterwards.
type ContextInfo struct {
	Name      string
	Cluster   string
	User      string
	Namespace string
}

// resolveKubeconfigPath falls back to the standard loading rules
// (KUBECONFIG, then ~/.kube/config) when no explicit path was given.
func resolveKubeconfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return clientcmd.NewDefaultClientConfigLoadingRules().GetDefaultFilename()
}

// parseKubeconfig loads the file and extracts every context plus the
// configured current context. Contexts are sorted by name to keep the list
// stable across loads (Go map iteration order is not).
func parseKubeconfig(path string) ([]ContextInfo, string, error) {
	config, err := clientcmd.LoadFromFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("loading kubeconfig: %w", err)
	}

	contexts := make([]ContextInfo, 0, len(config.Contexts))
	for name, ctx := range config.Contexts {
		contexts = append(contexts, ContextInfo{
			Name:      name,
			Cluster:   ctx.Cluster,
			User:      ctx.AuthInfo,
			Namespace: ctx.Namespace,
		})
	}

	sort.Slice(contexts, func(i, j int) bool {
		return contexts[i].Name < contexts[j].Name
	})

	return contexts, config.CurrentContext, nil
}
