package k8s

import (
	"context"
	"fmt"
	"time"

	batchv1 "k8s.io/api/batch/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes"
)

// ListCronJobs returns display-ready rows for every cronjob in the
// namespace, or across all namespaces when namespace is empty.
func ListCronJobs(ctx context.Context, client kubernetes.Interface, namespace string) ([]CronJobInfo, error) {
	list, err := client.BatchV1().CronJobs(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, &FetchError{Kind: "cronjobs", Err: err}
	}

	infos := make([]CronJobInfo, 0, len(list.Items))
	for i := range list.Items {
		infos = append(infos, cronJobInfo(&list.Items[i]))
	}
	return infos, nil
}

func cronJobInfo(cj *batchv1.CronJob) CronJobInfo {
	suspend := false
	if cj.Spec.Suspend != nil {
		suspend = *cj.Spec.Suspend
	}

	var lastSchedule string
	if cj.Status.LastScheduleTime != nil {
		lastSchedule = formatAge(cj.Status.LastScheduleTime)
	}

	return CronJobInfo{
		Name:         cj.Name,
		Namespace:    cj.Namespace,
		Schedule:     cj.Spec.Schedule,
		Suspend:      suspend,
		Active:       int32(len(cj.Status.Active)),
		LastSchedule: lastSchedule,
		Age:          formatAge(&cj.CreationTimestamp),
	}
}

// SetCronJobSuspend merge-patches the suspend flag and returns a summary
// line.
func SetCronJobSuspend(ctx context.Context, client kubernetes.Interface, namespace, name string, suspend bool) (string, error) {
	verb := "suspending"
	if !suspend {
		verb = "resuming"
	}

	patch := fmt.Sprintf(`{"spec":{"suspend":%t}}`, suspend)
	_, err := client.BatchV1().CronJobs(namespace).Patch(ctx, name, types.MergePatchType, []byte(patch), metav1.PatchOptions{})
	if err != nil {
		return "", &MutateError{Action: fmt.Sprintf("%s cronjob %s", verb, name), Err: err}
	}

	if suspend {
		return fmt.Sprintf("Suspended cronjob %s", name), nil
	}
	return fmt.Sprintf("Resumed cronjob %s", name), nil
}

// TriggerCronJob creates a one-off job from the cronjob's template, the way
// kubectl create job --from does. The job carries an owner reference back
// to the cronjob so it shows up in its run history.
func TriggerCronJob(ctx context.Context, client kubernetes.Interface, namespace, name string) (string, error) {
	action := fmt.Sprintf("triggering cronjob %s", name)

	cronjob, err := client.BatchV1().CronJobs(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return "", &MutateError{Action: action, Err: err}
	}

	jobName := fmt.Sprintf("%s-manual-%d", name, time.Now().Unix())
	controller := true
	blockOwnerDeletion := true

	job := &batchv1.Job{
		ObjectMeta: metav1.ObjectMeta{
			Name:        jobName,
			Namespace:   namespace,
			Labels:      cronjob.Spec.JobTemplate.Labels,
			Annotations: cronjob.Spec.JobTemplate.Annotations,
			OwnerReferences: []metav1.OwnerReference{{
				APIVersion:         "batch/v1",
				Kind:               "CronJob",
				Name:               cronjob.Name,
				UID:                cronjob.UID,
				Controller:         &controller,
				BlockOwnerDeletion: &blockOwnerDeletion,
			}},
		},
		Spec: cronjob.Spec.JobTemplate.Spec,
	}

	if _, err := client.BatchV1().Jobs(namespace).Create(ctx, job, metav1.CreateOptions{}); err != nil {
		return "", &MutateError{Action: action, Err: err}
	}
	return fmt.Sprintf("Created job %s from cronjob %s", jobName, name), nil
}

// CronJobHistory lists the jobs in the namespace owned by the named
// cronjob. The API has no server-side owner index, so this filters the full
// job list client-side.
func CronJobHistory(ctx context.Context, client kubernetes.Interface, namespace, parent string) ([]JobInfo, error) {
	jobs, err := ListJobs(ctx, client, namespace)
	if err != nil {
		return nil, err
	}

	history := make([]JobInfo, 0, len(jobs))
	for _, job := range jobs {
		if job.Owner == parent {
			history = append(history, job)
		}
	}
	return history, nil
}
