package renderer

import (
	"fmt"
	"sort"
	"sync"

	"capnarrative/internal/model"
	"capnarrative/internal/xhtml"
	"capnarrative/pkg/logging"
)

// ResourceRenderer renders one kind of resource.
type ResourceRenderer interface {
	Render(x *xhtml.Node, res model.Resource) (bool, error)
	Display(res model.Resource) (string, error)
}

// Registry maps resource kinds to their renderers
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]ResourceRenderer // resource type -> renderer
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]ResourceRenderer),
	}
}

// NewDefaultRegistry returns a registry with every built-in renderer bound to context.
func NewDefaultRegistry(context *RenderingContext) *Registry {
	r := NewRegistry()
	// cannot fail on an empty registry
	_ = r.Register(model.ResourceTypeCapabilityStatement, &capabilityStatementAdapter{
		renderer: NewCapabilityStatementRenderer(context),
	})
	return r
}

// Register binds a renderer to a resource kind
func (r *Registry) Register(kind string, rr ResourceRenderer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.renderers[kind]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, kind)
	}
	r.renderers[kind] = rr

	logging.Debug("Registry", "Registered renderer for %s", kind)
	return nil
}

// Get returns the renderer for kind
func (r *Registry) Get(kind string) (ResourceRenderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rr, exists := r.renderers[kind]
	return rr, exists
}

// Kinds lists the registered resource kinds in sorted order
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.renderers))
	for kind := range r.renderers {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// RenderResource dispatches res to the renderer registered for its kind.
func (r *Registry) RenderResource(x *xhtml.Node, res model.Resource) (bool, error) {
	rr, ok := r.Get(res.ResourceType())
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrNoRenderer, res.ResourceType())
	}
	return rr.Render(x, res)
}

// DisplayResource returns the display string of res.
func (r *Registry) DisplayResource(res model.Resource) (string, error) {
	rr, ok := r.Get(res.ResourceType())
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrNoRenderer, res.ResourceType())
	}
	return rr.Display(res)
}

type capabilityStatementAdapter struct {
	renderer *CapabilityStatementRenderer
}

func (a *capabilityStatementAdapter) Render(x *xhtml.Node, res model.Resource) (bool, error) {
	cs, ok := res.(*model.CapabilityStatement)
	if !ok {
		return false, fmt.Errorf("%w: %T", ErrWrongResource, res)
	}
	return a.renderer.Render(x, cs)
}

func (a *capabilityStatementAdapter) Display(res model.Resource) (string, error) {
	cs, ok := res.(*model.CapabilityStatement)
	if !ok {
		return "", fmt.Errorf("%w: %T", ErrWrongResource, res)
	}
	return a.renderer.Display(cs), nil
}
