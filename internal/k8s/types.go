package k8s

// Info structs are flattened, display-ready projections of Kubernetes
// objects. All derived fields (ages, statuses, joined address strings) are
// computed once at fetch time so the UI never touches API types.

// DeploymentInfo describes one deployment.
type DeploymentInfo struct {
	Name      string
	Namespace string
	Replicas  int32
	Available int32
	Ready     int32
	Updated   int32
	Age       string
	Images    []string
	Labels    map[string]string
}

// PodInfo describes one pod. Ready renders as "ready/total" containers.
type PodInfo struct {
	Name       string
	Namespace  string
	Status     string
	Ready      string
	Restarts   int32
	Age        string
	Node       string
	IP         string
	Containers []ContainerInfo
}

// ContainerInfo describes one container within a pod. State is Running, a
// waiting or terminated reason, or Unknown.
type ContainerInfo struct {
	Name     string
	Image    string
	Ready    bool
	Restarts int32
	State    string
}

// ServiceInfo describes one service. ExternalIP is the joined external
// address list, or "<none>".
type ServiceInfo struct {
	Name       string
	Namespace  string
	Type       string
	ClusterIP  string
	ExternalIP string
	Ports      []string
	Age        string
	Selector   map[string]string
}

// IngressInfo describes one ingress.
type IngressInfo struct {
	Name      string
	Namespace string
	Hosts     []string
	Paths     []string
	Age       string
}

// ConfigMapInfo describes one configmap. Data is carried in full so the
// edit dialog can open without a second fetch.
type ConfigMapInfo struct {
	Name      string
	Namespace string
	DataCount int
	Age       string
	Data      map[string]string
}

// SecretInfo describes one secret. Only key names are projected; values
// never leave the gateway.
type SecretInfo struct {
	Name      string
	Namespace string
	Type      string
	DataCount int
	Age       string
	DataKeys  []string
}

// JobStatus summarizes a job's aggregate state.
type JobStatus string

const (
	JobSucceeded JobStatus = "Succeeded"
	JobFailed    JobStatus = "Failed"
	JobRunning   JobStatus = "Running"
	JobPending   JobStatus = "Pending"
)

// JobInfo describes one job. Completions renders "succeeded/total" and
// Duration whole seconds, or "-" when the job never started. Owner is the
// first owner reference's name, used to group jobs under their cronjob.
type JobInfo struct {
	Name        string
	Namespace   string
	Completions string
	Duration    string
	Age         string
	Status      JobStatus
	Owner       string
}

// CronJobInfo describes one cronjob. LastSchedule is the age of the last
// scheduled run, empty when it never ran.
type CronJobInfo struct {
	Name         string
	Namespace    string
	Schedule     string
	Suspend      bool
	Active       int32
	LastSchedule string
	Age          string
}
