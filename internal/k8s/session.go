package k8s

import (
	"fmt"
	"sync"

	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"

	"github.com/renato0307/ponte/internal/logging"
)

// connectFunc builds a clientset for one kubeconfig context. Replaced in
// tests so a fake clientset can stand in for a real cluster.
type connectFunc func(kubeconfigPath, contextName string) (kubernetes.Interface, *rest.Config, error)

// Session owns the cluster connection and the set of selectable contexts.
// The connection is replaced wholesale on Initialize and SwitchContext: the
// replacement is built first, outside the lock, and installed only on
// success, so readers always observe either the previous handle or the next
// fully-built one.
type Session struct {
	mu             sync.RWMutex
	clientset      kubernetes.Interface
	restConfig     *rest.Config
	currentContext string
	contexts       []ContextInfo

	kubeconfigPath  string
	contextOverride string
	connect         connectFunc
}

// NewSession creates a session bound to a kubeconfig path. An empty path
// falls back to $KUBECONFIG and then ~/.kube/config. No file access or
// network access happens until Initialize.
func NewSession(kubeconfigPath string) *Session {
	return &Session{
		kubeconfigPath: resolveKubeconfigPath(kubeconfigPath),
		connect:        buildClientset,
	}
}

// Initialize parses the kubeconfig, connects to its current context, and
// records the full context list. Calling it again rebuilds the connection
// from the same file; a failure leaves any previous state untouched.
func (s *Session) Initialize() error {
	contexts, current, err := parseKubeconfig(s.kubeconfigPath)
	if err != nil {
		return &ConnectError{Err: err}
	}
	if s.contextOverride != "" {
		current = s.contextOverride
	}

	clientset, config, err := s.connect(s.kubeconfigPath, current)
	if err != nil {
		return &ConnectError{Err: err}
	}

	s.mu.Lock()
	s.clientset = clientset
	s.restConfig = config
	s.currentContext = current
	s.contexts = contexts
	s.mu.Unlock()

	logging.Info("Session initialized", "context", current, "contexts", len(contexts))
	return nil
}

// OverrideContext makes Initialize connect to the named context instead of
// the kubeconfig's current one, matching the kubectl --context flag. Must
// be called before Initialize.
func (s *Session) OverrideContext(name string) {
	s.contextOverride = name
}

// SwitchContext builds a connection for the named context and swaps it in.
// On any failure, including an unknown context name, the previous
// connection stays active.
func (s *Session) SwitchContext(name string) error {
	clientset, config, err := s.connect(s.kubeconfigPath, name)
	if err != nil {
		return &ConnectError{Err: err}
	}

	s.mu.Lock()
	s.clientset = clientset
	s.restConfig = config
	s.currentContext = name
	s.mu.Unlock()

	logging.Info("Switched context", "context", name)
	return nil
}

// Clientset returns the current connection handle, or nil before the first
// successful Initialize. Callers keep using the returned handle even if the
// session swaps connections underneath them; in-flight requests finish
// against the old cluster.
func (s *Session) Clientset() kubernetes.Interface {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.clientset
}

// RESTConfig returns the rest.Config behind the current connection, or nil
// before the first successful Initialize.
func (s *Session) RESTConfig() *rest.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.restConfig
}

// CurrentContext returns the name of the context the connection was built
// for, or the empty string before the first successful Initialize.
func (s *Session) CurrentContext() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentContext
}

// Contexts returns a copy of the context list recorded by the last
// successful Initialize.
func (s *Session) Contexts() []ContextInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ContextInfo, len(s.contexts))
	copy(out, s.contexts)
	return out
}

// SetTestConnection replaces the connection builder, letting tests install
// a fake clientset without real credentials.
func (s *Session) SetTestConnection(fn func(kubeconfigPath, contextName string) (kubernetes.Interface, *rest.Config, error)) {
	s.connect = fn
}

// buildClientset resolves one kubeconfig context into a ready clientset.
// Construction is local; reachability of the API server only surfaces on
// the first request.
func buildClientset(kubeconfigPath, contextName string) (kubernetes.Interface, *rest.Config, error) {
	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfigPath}
	configOverrides := &clientcmd.ConfigOverrides{}
	if contextName != "" {
		configOverrides.CurrentContext = contextName
	}

	config, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides).ClientConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("error building kubeconfig: %w", err)
	}

	// Use protobuf for better performance
	config.ContentType = "application/vnd.kubernetes.protobuf"
	config.Timeout = RequestTimeout

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating clientset: %w", err)
	}

	return clientset, config, nil
}
