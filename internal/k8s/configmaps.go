package k8s

import (
	"context"
	"encoding/json"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
)

// ListConfigMaps returns display-ready rows for every configmap in the
// namespace, or across all namespaces when namespace is empty. Data is
// included so the edit dialog opens without another round trip.
func ListConfigMaps(ctx context.Context, client kubernetes.Interface, namespace string) ([]ConfigMapInfo, error) {
	list, err := client.CoreV1().ConfigMaps(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Kind: "configmaps", Err: err}
	}

	infos := make([]ConfigMapInfo, 0, len(list.Items))
	for i := range list.Items {
		infos = append(infos, configMapInfo(&list.Items[i]))
	}
	return infos, nil
}

func configMapInfo(cm *corev1.ConfigMap) ConfigMapInfo {
	return ConfigMapInfo{
		Name:      cm.Name,
		Namespace: cm.Namespace,
		DataCount: len(cm.Data),
		Age:       formatAge(&cm.CreationTimestamp),
		Data:      cm.Data,
	}
}

// UpdateConfigMapData merge-patches the data section. Keys absent from data
// survive on the server; merge patch only touches the keys present here.
func UpdateConfigMapData(ctx context.Context, client kubernetes.Interface, namespace, name string, data map[string]string) (string, error) {
	payload, err := json.Marshal(map[string]any{"data": data})
	if err != nil {
		return "", &MutateError{Action: fmt.Sprintf("updating configmap %s", name), Err: err}
	}

	_, err = client.CoreV1().ConfigMaps(namespace).Patch(ctx, name, types.MergePatchType, payload, metav1.PatchOptions{})
	if err != nil {
		return "", &MutateError{Action: fmt.Sprintf("updating configmap %s", name), Err: err}
	}
	return fmt.Sprintf("Updated configmap %s", name), nil
}
