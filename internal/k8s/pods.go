package k8s

import (
	"context"
	"fmt"
	"io"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ListPods returns display-ready rows for every pod in the namespace, or
// across all namespaces when namespace is empty.
func ListPods(ctx context.Context, client kubernetes.Interface, namespace string) ([]PodInfo, error) {
	list, err := client.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Kind: "pods", Err: err}
	}

	infos := make([]PodInfo, 0, len(list.Items))
	for i := range list.Items {
		infos = append(infos, podInfo(&list.Items[i]))
	}
	return infos, nil
}

func podInfo(p *corev1.Pod) PodInfo {
	containers := make([]ContainerInfo, 0, len(p.Spec.Containers))
	readyContainers := 0
	var totalRestarts int32

	for _, c := range p.Spec.Containers {
		// Match the spec container to its runtime status by name; pods
		// mid-creation have no status entry yet.
		var cs *corev1.ContainerStatus
		for i := range p.Status.ContainerStatuses {
			if p.Status.ContainerStatuses[i].Name == c.Name {
				cs = &p.Status.ContainerStatuses[i]
				break
			}
		}

		info := ContainerInfo{Name: c.Name, Image: c.Image, State: "Unknown"}
		if cs != nil {
			info.Ready = cs.Ready
			info.Restarts = cs.RestartCount
			info.State = containerState(cs.State)
		}
		if info.Ready {
			readyContainers++
		}
		totalRestarts += info.Restarts
		containers = append(containers, info)
	}

	status := string(p.Status.Phase)
	if status == "" {
		status = "Unknown"
	}

	return PodInfo{
		Name:       p.Name,
		Namespace:  p.Namespace,
		Status:     status,
		Ready:      fmt.Sprintf("%d/%d", readyContainers, len(containers)),
		Restarts:   totalRestarts,
		Age:        formatAge(&p.CreationTimestamp),
		Node:       p.Spec.NodeName,
		IP:         p.Status.PodIP,
		Containers: containers,
	}
}

// containerState renders a one-word state, preferring the reason the
// kubelet recorded (CrashLoopBackOff, OOMKilled, ...) over the bare phase.
func containerState(state corev1.ContainerState) string {
	switch {
	case state.Running != nil:
		return "Running"
	case state.Waiting != nil:
		if state.Waiting.Reason != "" {
			return state.Waiting.Reason
		}
		return "Waiting"
	case state.Terminated != nil:
		if state.Terminated.Reason != "" {
			return state.Terminated.Reason
		}
		return "Terminated"
	default:
		return "Unknown"
	}
}

// DeletePod deletes the pod and returns a summary line.
func DeletePod(ctx context.Context, client kubernetes.Interface, namespace, name string) (string, error) {
	err := client.CoreV1().Pods(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		return "", &MutateError{Action: fmt.Sprintf("deleting pod %s", name), Err: err}
	}
	return fmt.Sprintf("Deleted pod %s", name), nil
}

// PodLogs fetches the last tailLines of a pod's logs as plain text. An
// empty container selects the pod's default; tailLines <= 0 fetches the
// full log.
func PodLogs(ctx context.Context, client kubernetes.Interface, namespace, pod, container string, tailLines int64) (string, error) {
	opts := &corev1.PodLogOptions{Container: container}
	if tailLines > 0 {
		opts.TailLines = &tailLines
	}

	stream, err := client.CoreV1().Pods(namespace).GetLogs(pod, opts).Stream(ctx)
	if err != nil {
		return "", &FetchError{Kind: "logs", Err: err}
	}
	defer stream.Close()

	data, err := io.ReadAll(stream)
	if err != nil {
		return "", &FetchError{Kind: "logs", Err: err}
	}
	return string(data), nil
}
