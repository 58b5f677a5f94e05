package engine

import (
	"context"

	"k8s.io/client-go/kubernetes"

	"github.com/renato0307/ponte/internal/k8s"
)

// Kind identifies one resource kind tracked by the engine. The string
// value doubles as the gateway resource name.
type Kind string

const (
	KindDeployments Kind = "deployments"
	KindPods        Kind = "pods"
	KindServices    Kind = "services"
	KindIngresses   Kind = "ingresses"
	KindConfigMaps  Kind = "configmaps"
	KindSecrets     Kind = "secrets"
	KindJobs        Kind = "jobs"
	KindCronJobs    Kind = "cronjobs"
)

// listFunc fetches one kind and boxes the typed rows for the snapshot.
type listFunc func(ctx context.Context, client kubernetes.Interface, namespace string) ([]any, error)

// kindDescriptor ties a kind to its owning view and its gateway list call.
// Every kind runs the same state machine; this table is the only per-kind
// wiring.
type kindDescriptor struct {
	view View
	list listFunc
}

var kindTable = map[Kind]kindDescriptor{
	KindDeployments: {view: ViewDeployments, list: boxList(k8s.ListDeployments)},
	KindPods:        {view: ViewPods, list: boxList(k8s.ListPods)},
	KindServices:    {view: ViewServices, list: boxList(k8s.ListServices)},
	KindIngresses:   {view: ViewServices, list: boxList(k8s.ListIngresses)},
	KindConfigMaps:  {view: ViewConfig, list: boxList(k8s.ListConfigMaps)},
	KindSecrets:     {view: ViewConfig, list: boxList(k8s.ListSecrets)},
	KindJobs:        {view: ViewJobs, list: boxList(k8s.ListJobs)},
	KindCronJobs:    {view: ViewCronJobs, list: boxList(k8s.ListCronJobs)},
}

// boxList lifts a typed gateway list function into one returning []any.
func boxList[T any](list func(context.Context, kubernetes.Interface, string) ([]T, error)) listFunc {
	return func(ctx context.Context, client kubernetes.Interface, namespace string) ([]any, error) {
		items, err := list(ctx, client, namespace)
		if err != nil {
			return nil, err
		}
		boxed := make([]any, len(items))
		for i, item := range items {
			boxed[i] = item
		}
		return boxed, nil
	}
}
