package model

// ResourceTypeCapabilityStatement is the FHIR resource type handled by this package.
const ResourceTypeCapabilityStatement = "CapabilityStatement"

// Resource is anything that can be dispatched to a renderer by its kind.
type Resource interface {
	ResourceType() string
}

// CapabilityStatement declares which interactions a system supports per resource type.
type CapabilityStatement struct {
	ResourceTypeName string `yaml:"resourceType,omitempty" json:"resourceType,omitempty"`
	ID               string `yaml:"id,omitempty" json:"id,omitempty"`
	URL              string `yaml:"url,omitempty" json:"url,omitempty"`
	Version          string `yaml:"version,omitempty" json:"version,omitempty"`
	Name             string `yaml:"name,omitempty" json:"name,omitempty"`
	Title            string `yaml:"title,omitempty" json:"title,omitempty"`
	Status           string `yaml:"status,omitempty" json:"status,omitempty"`
	Description      string `yaml:"description,omitempty" json:"description,omitempty"`
	Rest             []Rest `yaml:"rest,omitempty" json:"rest,omitempty"`
}

// Rest is one RESTful interface declared by the statement.
type Rest struct {
	Mode          RestfulCapabilityMode `yaml:"mode,omitempty" json:"mode,omitempty"`
	Documentation string                `yaml:"documentation,omitempty" json:"documentation,omitempty"`
	Interaction   []SystemInteraction   `yaml:"interaction,omitempty" json:"interaction,omitempty"`
	Resource      []RestResource        `yaml:"resource,omitempty" json:"resource,omitempty"`
}

// SystemInteraction is a whole-system operation supported by a rest entry.
type SystemInteraction struct {
	Code          SystemRestfulInteraction `yaml:"code" json:"code"`
	Documentation string                   `yaml:"documentation,omitempty" json:"documentation,omitempty"`
}

// RestResource lists the interactions and profile declared for one resource type.
type RestResource struct {
	Type        string                `yaml:"type" json:"type"`
	Profile     string                `yaml:"profile,omitempty" json:"profile,omitempty"`
	Interaction []ResourceInteraction `yaml:"interaction,omitempty" json:"interaction,omitempty"`
}

// ResourceInteraction is a type-level operation supported for a resource type.
type ResourceInteraction struct {
	Code          TypeRestfulInteraction `yaml:"code" json:"code"`
	Documentation string                 `yaml:"documentation,omitempty" json:"documentation,omitempty"`
}

// ResourceType implements Resource.
func (cs *CapabilityStatement) ResourceType() string {
	return ResourceTypeCapabilityStatement
}

// Present returns the one-line display string of the statement.
func (cs *CapabilityStatement) Present() string {
	switch {
	case cs.Title != "":
		return cs.Title
	case cs.Name != "":
		return cs.Name
	default:
		return ResourceTypeCapabilityStatement
	}
}

// HasProfile reports whether a profile reference is declared.
func (r RestResource) HasProfile() bool {
	return r.Profile != ""
}

// HasInteraction reports whether the resource type supports the interaction.
// Duplicated codes are harmless; only membership is queried.
func (r RestResource) HasInteraction(code TypeRestfulInteraction) bool {
	for _, op := range r.Interaction {
		if op.Code == code {
			return true
		}
	}
	return false
}

// HasInteraction reports whether the rest entry supports the system interaction.
func (r Rest) HasInteraction(code SystemRestfulInteraction) bool {
	for _, op := range r.Interaction {
		if op.Code == code {
			return true
		}
	}
	return false
}
