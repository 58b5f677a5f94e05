package k8s

import (
	"context"
	"fmt"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// ListJobs returns display-ready rows for every job in the namespace, or
// across all namespaces when namespace is empty.
func ListJobs(ctx context.Context, client kubernetes.Interface, namespace string) ([]JobInfo, error) {
	list, err := client.BatchV1().Jobs(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Kind: "jobs", Err: err}
	}

	infos := make([]JobInfo, 0, len(list.Items))
	for i := range list.Items {
		infos = append(infos, jobInfo(&list.Items[i]))
	}
	return infos, nil
}

func jobInfo(j *batchv1.Job) JobInfo {
	var completions int32 = 1
	if j.Spec.Completions != nil {
		completions = *j.Spec.Completions
	}

	var status JobStatus
	switch {
	case j.Status.Succeeded > 0:
		status = JobSucceeded
	case j.Status.Failed > 0:
		status = JobFailed
	case j.Status.Active > 0:
		status = JobRunning
	default:
		status = JobPending
	}

	// Whole seconds from start to completion, still counting for jobs that
	// have not finished.
	duration := "-"
	if j.Status.StartTime != nil {
		end := time.Now()
		if j.Status.CompletionTime != nil {
			end = j.Status.CompletionTime.Time
		}
		duration = fmt.Sprintf("%ds", int(end.Sub(j.Status.StartTime.Time).Seconds()))
	}

	var owner string
	if len(j.OwnerReferences) > 0 {
		owner = j.OwnerReferences[0].Name
	}

	return JobInfo{
		Name:        j.Name,
		Namespace:   j.Namespace,
		Completions: fmt.Sprintf("%d/%d", j.Status.Succeeded, completions),
		Duration:    duration,
		Age:         formatAge(&j.CreationTimestamp),
		Status:      status,
		Owner:       owner,
	}
}

// DeleteJob deletes the job and returns a summary line.
func DeleteJob(ctx context.Context, client kubernetes.Interface, namespace, name string) (string, error) {
	err := client.BatchV1().Jobs(namespace).Delete(ctx, name, metav1.DeleteOptions{})
	if err != nil {
		return "", &MutateError{Action: fmt.Sprintf("deleting job %s", name), Err: err}
	}
	return fmt.Sprintf("Deleted job %s", name), nil
}
