package k8s

import (
	"bytes"
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/cli-runtime/pkg/printers"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"k8s.io/kubectl/pkg/describe"
)

// resourceGroupKinds maps gateway resource names to their API group kinds.
var resourceGroupKinds = map[string]schema.GroupKind{
	"deployments": {Group: "apps", Kind: "Deployment"},
	"pods":        {Kind: "Pod"},
	"services":    {Kind: "Service"},
	"ingresses":   {Group: "networking.k8s.io", Kind: "Ingress"},
	"configmaps":  {Kind: "ConfigMap"},
	"secrets":     {Kind: "Secret"},
	"jobs":        {Group: "batch", Kind: "Job"},
	"cronjobs":    {Group: "batch", Kind: "CronJob"},
}

// ResourceYAML fetches one object and renders it with kubectl's YAML
// printer, so the output matches kubectl get -o yaml.
func ResourceYAML(ctx context.Context, client kubernetes.Interface, resource, namespace, name string) (string, error) {
	obj, err := getObject(ctx, client, resource, namespace, name)
	if err != nil {
		return "", &FetchError{Kind: resource, Err: err}
	}

	// The TypeSetter restores apiVersion/kind, which typed clients strip.
	printer := printers.NewTypeSetter(scheme.Scheme).ToPrinter(&printers.YAMLPrinter{})

	var buf bytes.Buffer
	if err := printer.PrintObj(obj, &buf); err != nil {
		return "", &FetchError{Kind: resource, Err: err}
	}
	return buf.String(), nil
}

// DescribeResource renders kubectl describe output, events included, using
// kubectl's own describers.
func DescribeResource(config *rest.Config, resource, namespace, name string) (string, error) {
	gk, ok := resourceGroupKinds[resource]
	if !ok {
		return "", &FetchError{Kind: resource, Err: fmt.Errorf("unsupported resource %q", resource)}
	}

	describer, ok := describe.DescriberFor(gk, config)
	if !ok {
		return "", &FetchError{Kind: resource, Err: fmt.Errorf("no describer for %s", gk)}
	}

	text, err := describer.Describe(namespace, name, describe.DescriberSettings{ShowEvents: true})
	if err != nil {
		return "", &FetchError{Kind: resource, Err: err}
	}
	return text, nil
}

func getObject(ctx context.Context, client kubernetes.Interface, resource, namespace, name string) (runtime.Object, error) {
	opts := metav1.GetOptions{}
	switch resource {
	case "deployments":
		return client.AppsV1().Deployments(namespace).Get(ctx, name, opts)
	case "pods":
		return client.CoreV1().Pods(namespace).Get(ctx, name, opts)
	case "services":
		return client.CoreV1().Services(namespace).Get(ctx, name, opts)
	case "ingresses":
		return client.NetworkingV1().Ingresses(namespace).Get(ctx, name, opts)
	case "configmaps":
		return client.CoreV1().ConfigMaps(namespace).Get(ctx, name, opts)
	case "secrets":
		return client.CoreV1().Secrets(namespace).Get(ctx, name, opts)
	case "jobs":
		return client.BatchV1().Jobs(namespace).Get(ctx, name, opts)
	case "cronjobs":
		return client.BatchV1().CronJobs(namespace).Get(ctx, name, opts)
	default:
		return nil, fmt.Errorf("unsupported resource %q", resource)
	}
}
