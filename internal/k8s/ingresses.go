package k8s

import (
	"context"

	networkingv1 "k8s.io/api/networking/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ListIngresses returns display-ready rows for every ingress in the
// namespace, or across all namespaces when namespace is empty.
func ListIngresses(ctx context.Context, client kubernetes.Interface, namespace string) ([]IngressInfo, error) {
	list, err := client.NetworkingV1().Ingresses(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Kind: "ingresses", Err: err}
	}

	infos := make([]IngressInfo, 0, len(list.Items))
	for i := range list.Items {
		infos = append(infos, ingressInfo(&list.Items[i]))
	}
	return infos, nil
}

func ingressInfo(ing *networkingv1.Ingress) IngressInfo {
	var hosts, paths []string
	for _, rule := range ing.Spec.Rules {
		if rule.Host != "" {
			hosts = append(hosts, rule.Host)
		}
		if rule.HTTP == nil {
			continue
		}
		for _, p := range rule.HTTP.Paths {
			if p.Path != "" {
				paths = append(paths, p.Path)
			} else {
				paths = append(paths, "/")
			}
		}
	}

	return IngressInfo{
		Name:      ing.Name,
		Namespace: ing.Namespace,
		Hosts:     hosts,
		Paths:     paths,
		Age:       formatAge(&ing.CreationTimestamp),
	}
}
