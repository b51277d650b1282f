package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrEmptyDocument is returned when there is nothing to decode.
	ErrEmptyDocument = errors.New("empty capability statement document")
	// ErrWrongResourceType is returned when the document declares another resourceType.
	ErrWrongResourceType = errors.New("document is not a CapabilityStatement")
)

// StructuralError reports a required field that is absent from the record.
type StructuralError struct {
	Field string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("capability statement is missing required field %s", e.Field)
}

// Decode reads a CapabilityStatement from FHIR JSON or YAML.
func Decode(data []byte) (*CapabilityStatement, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyDocument
	}

	var cs CapabilityStatement
	if trimmed[0] == '{' {
		if err := json.Unmarshal(trimmed, &cs); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(trimmed, &cs); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if cs.ResourceTypeName != "" && cs.ResourceTypeName != ResourceTypeCapabilityStatement {
		return nil, fmt.Errorf("%w: got %s", ErrWrongResourceType, cs.ResourceTypeName)
	}
	return &cs, nil
}

// Validate checks the fields a renderer cannot do without. Only the first
// rest entry is rendered, so later entries are not checked.
func (cs *CapabilityStatement) Validate() error {
	if cs.Name == "" {
		return &StructuralError{Field: "name"}
	}
	if len(cs.Rest) == 0 {
		return nil
	}
	rest := cs.Rest[0]
	if rest.Mode == "" {
		return &StructuralError{Field: "rest[0].mode"}
	}
	for i, r := range rest.Resource {
		if r.Type == "" {
			return &StructuralError{Field: fmt.Sprintf("rest[0].resource[%d].type", i)}
		}
	}
	return nil
}
