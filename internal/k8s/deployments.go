package k8s

import (
	"context"
	"fmt"
	"time"

	appsv1 "k8s.io/api/apps/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
)

// restartedAtAnnotation is the annotation kubectl sets on rollout restart.
// Reusing it keeps restarts triggered here indistinguishable from kubectl's.
const restartedAtAnnotation = "kubectl.kubernetes.io/restartedAt"

// ListDeployments returns display-ready rows for every deployment in the
// namespace, or across all namespaces when namespace is empty.
func ListDeployments(ctx context.Context, client kubernetes.Interface, namespace string) ([]DeploymentInfo, error) {
	list, err := client.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Kind: "deployments", Err: err}
	}

	infos := make([]DeploymentInfo, 0, len(list.Items))
	for i := range list.Items {
		infos = append(infos, deploymentInfo(&list.Items[i]))
	}
	return infos, nil
}

func deploymentInfo(d *appsv1.Deployment) DeploymentInfo {
	var replicas int32
	if d.Spec.Replicas != nil {
		replicas = *d.Spec.Replicas
	}

	images := make([]string, 0, len(d.Spec.Template.Spec.Containers))
	for _, c := range d.Spec.Template.Spec.Containers {
		images = append(images, c.Image)
	}

	return DeploymentInfo{
		Name:      d.Name,
		Namespace: d.Namespace,
		Replicas:  replicas,
		Available: d.Status.AvailableReplicas,
		Ready:     d.Status.ReadyReplicas,
		Updated:   d.Status.UpdatedReplicas,
		Age:       formatAge(&d.CreationTimestamp),
		Images:    images,
		Labels:    d.Labels,
	}
}

// ScaleDeployment merge-patches the replica count and returns a summary
// line for the notification area.
func ScaleDeployment(ctx context.Context, client kubernetes.Interface, namespace, name string, replicas int32) (string, error) {
	patch := fmt.Sprintf(`{"spec":{"replicas":%d}}`, replicas)
	_, err := client.AppsV1().Deployments(namespace).Patch(ctx, name, types.MergePatchType, []byte(patch), metav1.PatchOptions{})
	if err != nil {
		return "", &MutateError{Action: fmt.Sprintf("scaling deployment %s", name), Err: err}
	}
	return fmt.Sprintf("Scaled %s to %d replicas", name, replicas), nil
}

// RestartDeployment triggers a rolling restart by stamping the pod template
// with the kubectl restartedAt annotation.
func RestartDeployment(ctx context.Context, client kubernetes.Interface, namespace, name string) (string, error) {
	patch := fmt.Sprintf(`{"spec":{"template":{"metadata":{"annotations":{%q:%q}}}}}`,
		restartedAtAnnotation, time.Now().Format(time.RFC3339))
	_, err := client.AppsV1().Deployments(namespace).Patch(ctx, name, types.MergePatchType, []byte(patch), metav1.PatchOptions{})
	if err != nil {
		return "", &MutateError{Action: fmt.Sprintf("restarting deployment %s", name), Err: err}
	}
	return fmt.Sprintf("Restarted deployment %s", name), nil
}

// DeleteDeployment deletes the deployment and returns a summary line.
func DeleteDeployment(ctx context.Context, client kubernetes.Interface, namespace, name string) (string, error) {
	err := client.AppsV1().Deployments(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		return "", &MutateError{Action: fmt.Sprintf("deleting deployment %s", name), Err: err}
	}
	return fmt.Sprintf("Deleted deployment %s", name), nil
}
