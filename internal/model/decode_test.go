package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testStatementJSON = `{
	"resourceType": "CapabilityStatement",
	"name": "TestServer",
	"title": "Test Server",
	"status": "active",
	"description": "A *test* server",
	"rest": [{
		"mode": "server",
		"documentation": "Basic server",
		"interaction": [{"code": "transaction"}, {"code": "search-system"}],
		"resource": [
			{"type": "Patient", "profile": "Patient/x", "interaction": [{"code": "read"}, {"code": "search-type"}]},
			{"type": "Observation", "interaction": [{"code": "read"}, {"code": "delete"}]}
		]
	}]
}`

const testStatementYAML = `
resourceType: CapabilityStatement
name: TestServer
description: A *test* server
rest:
  - mode: client
    resource:
      - type: Patient
        interaction:
          - code: vread
          - code: history-instance
`

func TestDecode_JSON(t *testing.T) {
	cs, err := Decode([]byte(testStatementJSON))
	require.NoError(t, err)

	assert.Equal(t, "TestServer", cs.Name)
	assert.Equal(t, "Test Server", cs.Title)
	assert.Equal(t, "A *test* server", cs.Description)
	require.Len(t, cs.Rest, 1)

	rest := cs.Rest[0]
	assert.Equal(t, ModeServer, rest.Mode)
	assert.Equal(t, "Basic server", rest.Documentation)
	assert.True(t, rest.HasInteraction(SystemTransaction))
	assert.True(t, rest.HasInteraction(SystemSearchSystem))
	assert.False(t, rest.HasInteraction(SystemHistorySystem))

	require.Len(t, rest.Resource, 2)
	assert.Equal(t, "Patient", rest.Resource[0].Type)
	assert.True(t, rest.Resource[0].HasProfile())
	assert.True(t, rest.Resource[0].HasInteraction(TypeSearchType))
	assert.False(t, rest.Resource[1].HasProfile())
	assert.True(t, rest.Resource[1].HasInteraction(TypeDelete))
}

func TestDecode_YAML(t *testing.T) {
	cs, err := Decode([]byte(testStatementYAML))
	require.NoError(t, err)

	require.Len(t, cs.Rest, 1)
	assert.Equal(t, ModeClient, cs.Rest[0].Mode)
	assert.True(t, cs.Rest[0].Resource[0].HasInteraction(TypeVRead))
	assert.True(t, cs.Rest[0].Resource[0].HasInteraction(TypeHistoryInstance))
	assert.False(t, cs.Rest[0].Resource[0].HasInteraction(TypeRead))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "empty", input: "   \n", wantErr: ErrEmptyDocument},
		{name: "wrong resource type", input: `{"resourceType": "Patient"}`, wantErr: ErrWrongResourceType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestDecode_UnknownCode(t *testing.T) {
	_, err := Decode([]byte(`{"name": "x", "rest": [{"mode": "server", "resource": [{"type": "Patient", "interaction": [{"code": "teleport"}]}]}]}`))
	require.Error(t, err)

	var codeErr *UnknownCodeError
	require.True(t, errors.As(err, &codeErr))
	assert.Equal(t, "teleport", codeErr.Code)
	assert.Equal(t, "type-restful-interaction", codeErr.System)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		cs        CapabilityStatement
		wantField string
	}{
		{name: "valid", cs: CapabilityStatement{Name: "x", Rest: []Rest{{Mode: ModeServer}}}},
		{name: "missing name", cs: CapabilityStatement{}, wantField: "name"},
		{name: "missing mode", cs: CapabilityStatement{Name: "x", Rest: []Rest{{}}}, wantField: "rest[0].mode"},
		{
			name:      "missing resource type",
			cs:        CapabilityStatement{Name: "x", Rest: []Rest{{Mode: ModeServer, Resource: []RestResource{{}}}}},
			wantField: "rest[0].resource[0].type",
		},
		{
			name: "incomplete later rest",
			cs: CapabilityStatement{Name: "x", Rest: []Rest{
				{Mode: ModeServer},
				{Documentation: "second interface", Resource: []RestResource{{}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cs.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var structural *StructuralError
			require.True(t, errors.As(err, &structural))
			assert.Equal(t, tt.wantField, structural.Field)
		})
	}
}

func TestPresent(t *testing.T) {
	assert.Equal(t, "Test Server", (&CapabilityStatement{Name: "TestServer", Title: "Test Server"}).Present())
	assert.Equal(t, "TestServer", (&CapabilityStatement{Name: "TestServer"}).Present())
	assert.Equal(t, "CapabilityStatement", (&CapabilityStatement{}).Present())
}

func TestRestfulCapabilityMode_String(t *testing.T) {
	assert.Equal(t, "SERVER", ModeServer.String())
	assert.Equal(t, "CLIENT", ModeClient.String())
	assert.Equal(t, "NULL", RestfulCapabilityMode("").String())
}

func TestRestResource_DuplicateInteractions(t *testing.T) {
	r := RestResource{Type: "Patient", Interaction: []ResourceInteraction{{Code: TypeRead}, {Code: TypeRead}}}
	assert.True(t, r.HasInteraction(TypeRead))
	assert.False(t, r.HasInteraction(TypePatch))
}
