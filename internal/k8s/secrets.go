package k8s

import (
	"context"
	"sort"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ListSecrets returns display-ready rows for every secret in the namespace,
// or across all namespaces when namespace is empty. Only key names are
// projected; values stay on the server side of this call.
func ListSecrets(ctx context.Context, client kubernetes.Interface, namespace string) ([]SecretInfo, error) {
	list, err := client.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Kind: "secrets", Err: err}
	}

	infos := make([]SecretInfo, 0, len(list.Items))
	for i := range list.Items {
		infos = append(infos, secretInfo(&list.Items[i]))
	}
	return infos, nil
}

func secretInfo(s *corev1.Secret) SecretInfo {
	keys := make([]string, 0, len(s.Data))
	for k := range s.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	secretType := string(s.Type)
	if secretType == "" {
		secretType = "Opaque"
	}

	return SecretInfo{
		Name:      s.Name,
		Namespace: s.Namespace,
		Type:      secretType,
		DataCount: len(keys),
		Age:       formatAge(&s.CreationTimestamp),
		DataKeys:  keys,
	}
}
