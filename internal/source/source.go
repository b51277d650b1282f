// Package source loads CapabilityStatements from the places they live: local
// files, standard input, a FHIR server's /metadata endpoint or a Kubernetes
// ConfigMap.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"capnarrative/internal/model"
	"capnarrative/pkg/logging"

	"k8s.io/client-go/kubernetes"
)

const (
	stdinRef        = "-"
	configMapScheme = "configmap://"
)

// ErrInvalidReference is returned for source references that cannot be parsed.
var ErrInvalidReference = errors.New("invalid source reference")

// Options configures Open.
type Options struct {
	// Stdin is read for the "-" reference. Defaults to os.Stdin.
	Stdin io.Reader

	RetryMax     int
	Timeout      time.Duration
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	KubeContext      string
	DefaultNamespace string
	DefaultKey       string
	// NewKubeClient builds the client used for configmap:// references.
	// Defaults to NewClientset.
	NewKubeClient func(kubeContext string) (kubernetes.Interface, error)
}

// Open loads a statement from ref, which is one of:
//
//	-                                  standard input
//	http(s)://server/base              GET {base}/metadata
//	configmap://[namespace/]name[/key] a ConfigMap entry
//	anything else                      a JSON or YAML file path
func Open(ctx context.Context, ref string, opts Options) (*model.CapabilityStatement, error) {
	switch {
	case ref == stdinRef:
		in := opts.Stdin
		if in == nil {
			in = os.Stdin
		}
		return FromReader(in)

	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return FromServer(ctx, ref, opts)

	case strings.HasPrefix(ref, configMapScheme):
		cmRef, err := ParseConfigMapRef(ref, opts.DefaultNamespace, opts.DefaultKey)
		if err != nil {
			return nil, err
		}
		newClient := opts.NewKubeClient
		if newClient == nil {
			newClient = NewClientset
		}
		client, err := newClient(opts.KubeContext)
		if err != nil {
			return nil, err
		}
		return FromConfigMap(ctx, client, cmRef)

	default:
		return FromFile(ref)
	}
}

// FromFile reads a JSON or YAML statement from path.
func FromFile(path string) (*model.CapabilityStatement, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	cs, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logging.Debug("Source", "Loaded %s from %s", cs.Present(), path)
	return cs, nil
}

// FromReader reads a JSON or YAML statement from r.
func FromReader(r io.Reader) (*model.CapabilityStatement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return decode(data)
}

func decode(data []byte) (*model.CapabilityStatement, error) {
	cs, err := model.Decode(data)
	if err != nil {
		return nil, err
	}
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return cs, nil
}
