package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// RestfulCapabilityMode says whether a rest entry describes client or server behaviour.
type RestfulCapabilityMode string

const (
	ModeClient RestfulCapabilityMode = "client"
	ModeServer RestfulCapabilityMode = "server"
)

var restfulCapabilityModes = map[string]RestfulCapabilityMode{
	"client": ModeClient,
	"server": ModeServer,
}

// String returns the display constant (CLIENT, SERVER). An unset mode is NULL.
func (m RestfulCapabilityMode) String() string {
	if m == "" {
		return "NULL"
	}
	return strings.ToUpper(string(m))
}

// ParseRestfulCapabilityMode maps a FHIR code onto a mode.
func ParseRestfulCapabilityMode(code string) (RestfulCapabilityMode, error) {
	if m, ok := restfulCapabilityModes[code]; ok {
		return m, nil
	}
	return "", &UnknownCodeError{System: "restful-capability-mode", Code: code}
}

func (m *RestfulCapabilityMode) UnmarshalYAML(value *yaml.Node) error {
	var code string
	if err := value.Decode(&code); err != nil {
		return err
	}
	parsed, err := ParseRestfulCapabilityMode(code)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m *RestfulCapabilityMode) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ParseRestfulCapabilityMode(code)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// SystemRestfulInteraction is an interaction scoped to the whole server.
type SystemRestfulInteraction string

const (
	SystemTransaction   SystemRestfulInteraction = "transaction"
	SystemBatch         SystemRestfulInteraction = "batch"
	SystemDelete        SystemRestfulInteraction = "delete"
	SystemUpdate        SystemRestfulInteraction = "update"
	SystemPatch         SystemRestfulInteraction = "patch"
	SystemHistorySystem SystemRestfulInteraction = "history-system"
	SystemSearchSystem  SystemRestfulInteraction = "search-system"
)

var systemRestfulInteractions = map[string]SystemRestfulInteraction{
	"transaction":    SystemTransaction,
	"batch":          SystemBatch,
	"delete":         SystemDelete,
	"update":         SystemUpdate,
	"patch":          SystemPatch,
	"history-system": SystemHistorySystem,
	"search-system":  SystemSearchSystem,
}

// String returns the FHIR code.
func (i SystemRestfulInteraction) String() string {
	return string(i)
}

// ParseSystemRestfulInteraction maps a FHIR code onto a system interaction.
func ParseSystemRestfulInteraction(code string) (SystemRestfulInteraction, error) {
	if i, ok := systemRestfulInteractions[code]; ok {
		return i, nil
	}
	return "", &UnknownCodeError{System: "system-restful-interaction", Code: code}
}

func (i *SystemRestfulInteraction) UnmarshalYAML(value *yaml.Node) error {
	var code string
	if err := value.Decode(&code); err != nil {
		return err
	}
	parsed, err := ParseSystemRestfulInteraction(code)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

func (i *SystemRestfulInteraction) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ParseSystemRestfulInteraction(code)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// TypeRestfulInteraction is an interaction on a single resource type.
type TypeRestfulInteraction string

const (
	TypeRead                      TypeRestfulInteraction = "read"
	TypeVRead                     TypeRestfulInteraction = "vread"
	TypeUpdate                    TypeRestfulInteraction = "update"
	TypeUpdateConditional         TypeRestfulInteraction = "update-conditional"
	TypePatch                     TypeRestfulInteraction = "patch"
	TypeDelete                    TypeRestfulInteraction = "delete"
	TypeDeleteConditionalSingle   TypeRestfulInteraction = "delete-conditional-single"
	TypeDeleteConditionalMultiple TypeRestfulInteraction = "delete-conditional-multiple"
	TypeDeleteHistory             TypeRestfulInteraction = "delete-history"
	TypeDeleteHistoryVersion      TypeRestfulInteraction = "delete-history-version"
	TypeHistoryInstance           TypeRestfulInteraction = "history-instance"
	TypeHistoryType               TypeRestfulInteraction = "history-type"
	TypeCreate                    TypeRestfulInteraction = "create"
	TypeConditionalCreate         TypeRestfulInteraction = "conditional-create"
	TypeSearchType                TypeRestfulInteraction = "search-type"
)

var typeRestfulInteractions = map[string]TypeRestfulInteraction{
	"read":                        TypeRead,
	"vread":                       TypeVRead,
	"update":                      TypeUpdate,
	"update-conditional":          TypeUpdateConditional,
	"patch":                       TypePatch,
	"delete":                      TypeDelete,
	"delete-conditional-single":   TypeDeleteConditionalSingle,
	"delete-conditional-multiple": TypeDeleteConditionalMultiple,
	"delete-history":              TypeDeleteHistory,
	"delete-history-version":      TypeDeleteHistoryVersion,
	"history-instance":            TypeHistoryInstance,
	"history-type":                TypeHistoryType,
	"create":                      TypeCreate,
	"conditional-create":          TypeConditionalCreate,
	"search-type":                 TypeSearchType,
}

// String returns the FHIR code.
func (i TypeRestfulInteraction) String() string {
	return string(i)
}

// ParseTypeRestfulInteraction maps a FHIR code onto a type interaction.
func ParseTypeRestfulInteraction(code string) (TypeRestfulInteraction, error) {
	if i, ok := typeRestfulInteractions[code]; ok {
		return i, nil
	}
	return "", &UnknownCodeError{System: "type-restful-interaction", Code: code}
}

func (i *TypeRestfulInteraction) UnmarshalYAML(value *yaml.Node) error {
	var code string
	if err := value.Decode(&code); err != nil {
		return err
	}
	parsed, err := ParseTypeRestfulInteraction(code)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

func (i *TypeRestfulInteraction) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	parsed, err := ParseTypeRestfulInteraction(code)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// UnknownCodeError is returned when a document carries a code outside its value set.
type UnknownCodeError struct {
	System string
	Code   string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.System, e.Code)
}
