package source

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"capnarrative/internal/model"
	"capnarrative/pkg/logging"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	_ "k8s.io/client-go/plugin/pkg/client/auth" // Important for various auth providers
	"k8s.io/client-go/tools/clientcmd"
)

// ConfigMapRef locates a statement stored in a ConfigMap.
type ConfigMapRef struct {
	Namespace string
	Name      string
	// Key is the data key. Empty means the ConfigMap must hold exactly one entry.
	Key string
}

func (r ConfigMapRef) String() string {
	s := configMapScheme + r.Namespace + "/" + r.Name
	if r.Key != "" {
		s += "/" + r.Key
	}
	return s
}

// ParseConfigMapRef parses configmap://[namespace/]name[/key].
func ParseConfigMapRef(ref, defaultNamespace, defaultKey string) (ConfigMapRef, error) {
	rest := strings.TrimPrefix(ref, configMapScheme)
	parts := strings.Split(rest, "/")
	for _, p := range parts {
		if p == "" {
			return ConfigMapRef{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
		}
	}

	r := ConfigMapRef{Namespace: defaultNamespace, Key: defaultKey}
	switch len(parts) {
	case 1:
		r.Name = parts[0]
	case 2:
		r.Namespace, r.Name = parts[0], parts[1]
	case 3:
		r.Namespace, r.Name, r.Key = parts[0], parts[1], parts[2]
	default:
		return ConfigMapRef{}, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	if r.Namespace == "" {
		r.Namespace = "default"
	}
	return r, nil
}

// NewClientset builds a clientset from the default kubeconfig loading rules,
// optionally switching to kubeContext.
func NewClientset(kubeContext string) (kubernetes.Interface, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	configOverrides := &clientcmd.ConfigOverrides{CurrentContext: kubeContext}
	kubeConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, configOverrides)

	restConfig, err := kubeConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to get REST config for context %q: %w", kubeContext, err)
	}
	restConfig.Timeout = 30 * time.Second

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes clientset: %w", err)
	}
	return clientset, nil
}

// FromConfigMap reads the statement stored under ref in a ConfigMap.
func FromConfigMap(ctx context.Context, client kubernetes.Interface, ref ConfigMapRef) (*model.CapabilityStatement, error) {
	cm, err := client.CoreV1().ConfigMaps(ref.Namespace).Get(ctx, ref.Name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get configmap %s/%s: %w", ref.Namespace, ref.Name, err)
	}

	key := ref.Key
	if key == "" {
		keys := make([]string, 0, len(cm.Data)+len(cm.BinaryData))
		for k := range cm.Data {
			keys = append(keys, k)
		}
		for k := range cm.BinaryData {
			keys = append(keys, k)
		}
		if len(keys) != 1 {
			sort.Strings(keys)
			return nil, fmt.Errorf("configmap %s/%s has keys %v, specify one", ref.Namespace, ref.Name, keys)
		}
		key = keys[0]
	}

	var data []byte
	if s, ok := cm.Data[key]; ok {
		data = []byte(s)
	} else if b, ok := cm.BinaryData[key]; ok {
		data = b
	} else {
		return nil, fmt.Errorf("configmap %s/%s has no key %q", ref.Namespace, ref.Name, key)
	}

	cs, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("configmap %s/%s key %s: %w", ref.Namespace, ref.Name, key, err)
	}
	logging.Info("Source", "Loaded %s from configmap %s/%s", cs.Present(), ref.Namespace, ref.Name)
	return cs, nil
}
