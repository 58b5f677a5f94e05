package k8s

import (
	"context"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ListServices returns display-ready rows for every service in the
// namespace, or across all namespaces when namespace is empty.
func ListServices(ctx context.Context, client kubernetes.Interface, namespace string) ([]ServiceInfo, error) {
	list, err := client.CoreV1().Services(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Kind: "services", Err: err}
	}

	infos := make([]ServiceInfo, 0, len(list.Items))
	for i := range list.Items {
		infos = append(infos, serviceInfo(&list.Items[i]))
	}
	return infos, nil
}

func serviceInfo(s *corev1.Service) ServiceInfo {
	svcType := string(s.Spec.Type)
	if svcType == "" {
		svcType = "ClusterIP"
	}

	ports := make([]string, 0, len(s.Spec.Ports))
	for _, p := range s.Spec.Ports {
		proto := string(p.Protocol)
		if proto == "" {
			proto = "TCP"
		}
		if p.NodePort != 0 {
			ports = append(ports, fmt.Sprintf("%d:%d/%s", p.Port, p.NodePort, proto))
		} else {
			ports = append(ports, fmt.Sprintf("%d/%s", p.Port, proto))
		}
	}

	return ServiceInfo{
		Name:       s.Name,
		Namespace:  s.Namespace,
		Type:       svcType,
		ClusterIP:  s.Spec.ClusterIP,
		ExternalIP: externalIP(s),
		Ports:      ports,
		Age:        formatAge(&s.CreationTimestamp),
		Selector:   s.Spec.Selector,
	}
}

// externalIP prefers the addresses pinned in the spec over whatever the
// load balancer reported.
func externalIP(s *corev1.Service) string {
	if len(s.Spec.ExternalIPs) > 0 {
		return strings.Join(s.Spec.ExternalIPs, ", ")
	}

	if ingress := s.Status.LoadBalancer.Ingress; len(ingress) > 0 {
		addrs := make([]string, 0, len(ingress))
		for _, in := range ingress {
			if in.IP != "" {
				addrs = append(addrs, in.IP)
			} else if in.Hostname != "" {
				addrs = append(addrs, in.Hostname)
			}
		}
		return strings.Join(addrs, ", ")
	}

	return "<none>"
}
