package k8s

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	apitypes "k8s.io/apimachinery/pkg/types"
	"k8s.io/client-go/kubernetes/fake"
	"k8s.io/utils/ptr"
)

func newTestCronJob(namespace, name string) *batchv1.CronJob {
	return &batchv1.CronJob{
		ObjectMeta: metav1.ObjectMeta{
			Name:              name,
			Namespace:         namespace,
			UID:               apitypes.UID("uid-" + name),
			CreationTimestamp: metav1.NewTime(time.Now().Add(-36 * time.Hour)),
		},
		Spec: batchv1.CronJobSpec{
			Schedule: "0 3 * * *",
			Suspend:  ptr.To(false),
			JobTemplate: batchv1.JobTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels:      map[string]string{"app": name},
					Annotations: map[string]string{"team": "platform"},
				},
				Spec: batchv1.JobSpec{
					Template: corev1.PodTemplateSpec{
						Spec: corev1.PodSpec{
							RestartPolicy: corev1.RestartPolicyNever,
							Containers: []corev1.Container{
								{Name: "runner", Image: "backup:latest"},
							},
						},
					},
				},
			},
		},
	}
}

func TestListCronJobs(t *testing.T) {
	cj := newTestCronJob("default", "backup")
	cj.Status.LastScheduleTime = &metav1.Time{Time: time.Now().Add(-2 * time.Hour)}
	cj.Status.Active = []corev1.ObjectReference{{Name: "backup-29301234"}}

	client := fake.NewClientset(cj)
	infos, err := ListCronJobs(context.Background(), client, "default")
	require.NoError(t, err)
	require.Len(t, infos, 1)

	info := infos[0]
	assert.Equal(t, "backup", info.Name)
	assert.Equal(t, "0 3 * * *", info.Schedule)
	assert.False(t, info.Suspend)
	assert.Equal(t, int32(1), info.Active)
	assert.Equal(t, "2h", info.LastSchedule)
	assert.Equal(t, "1d", info.Age)
}

func TestCronJobInfoNeverScheduled(t *testing.T) {
	info := cronJobInfo(newTestCronJob("default", "backup"))
	assert.Equal(t, "", info.LastSchedule)
	assert.Equal(t, int32(0), info.Active)
}

func TestSetCronJobSuspend(t *testing.T) {
	client := fake.NewClientset(newTestCronJob("default", "backup"))

	summary, err := SetCronJobSuspend(context.Background(), client, "default", "backup", true)
	require.NoError(t, err)
	assert.Equal(t, "Suspended cronjob backup", summary)

	cj, err := client.BatchV1().CronJobs("default").Get(context.Background(), "backup", metav1.GetOptions{})
	require.NoError(t, err)
	assert.True(t, *cj.Spec.Suspend)

	summary, err = SetCronJobSuspend(context.Background(), client, "default", "backup", false)
	require.NoError(t, err)
	assert.Equal(t, "Resumed cronjob backup", summary)

	cj, err = client.BatchV1().CronJobs("default").Get(context.Background(), "backup", metav1.GetOptions{})
	require.NoError(t, err)
	assert.False(t, *cj.Spec.Suspend)
}

func TestTriggerCronJob(t *testing.T) {
	client := fake.NewClientset(newTestCronJob("default", "backup"))

	summary, err := TriggerCronJob(context.Background(), client, "default", "backup")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(summary, "Created job backup-manual-"), summary)
	assert.True(t, strings.HasSuffix(summary, "from cronjob backup"), summary)

	jobs, err := client.BatchV1().Jobs("default").List(context.Background(), metav1.ListOptions{})
	require.NoError(t, err)
	require.Len(t, jobs.Items, 1)

	job := jobs.Items[0]
	assert.True(t, strings.HasPrefix(job.Name, "backup-manual-"), job.Name)
	assert.Equal(t, map[string]string{"app": "backup"}, job.Labels)
	assert.Equal(t, map[string]string{"team": "platform"}, job.Annotations)
	assert.Equal(t, "backup:latest", job.Spec.Template.Spec.Containers[0].Image)

	require.Len(t, job.OwnerReferences, 1)
	ref := job.OwnerReferences[0]
	assert.Equal(t, "batch/v1", ref.APIVersion)
	assert.Equal(t, "CronJob", ref.Kind)
	assert.Equal(t, "backup", ref.Name)
	assert.Equal(t, apitypes.UID("uid-backup"), ref.UID)
	assert.True(t, *ref.Controller)
	assert.True(t, *ref.BlockOwnerDeletion)
}

func TestTriggerCronJobNotFound(t *testing.T) {
	client := fake.NewClientset()

	_, err := TriggerCronJob(context.Background(), client, "default", "ghost")
	require.Error(t, err)
	assert.Contains(t, Friendly(err), "not found")
}

func TestCronJobHistory(t *testing.T) {
	owned := func(name, owner string) *batchv1.Job {
		job := &batchv1.Job{
			ObjectMeta: metav1.ObjectMeta{Name: name, Namespace: "default"},
		}
		if owner != "" {
			job.OwnerReferences = []metav1.OwnerReference{{Kind: "CronJob", Name: owner}}
		}
		return job
	}

	client := fake.NewClientset(
		owned("backup-1", "backup"),
		owned("backup-2", "backup"),
		owned("report-1", "report"),
		owned("loose", ""),
	)

	history, err := CronJobHistory(context.Background(), client, "default", "backup")
	require.NoError(t, err)
	require.Len(t, history, 2)
	for _, job := range history {
		assert.Equal(t, "backup", job.Owner)
	}
}
