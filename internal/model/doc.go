// Package model holds the CapabilityStatement data model rendered by capnarrative.
//
// A CapabilityStatement declares, per RESTful interface, which resource types a
// server exposes and which interactions (read, search-type, update, ...) each
// type supports. The types mirror the FHIR R5 element names so FHIR JSON and
// YAML documents decode without an intermediate mapping:
//
//	resourceType: CapabilityStatement
//	name: TestServer
//	description: A *test* server
//	rest:
//	  - mode: server
//	    documentation: Basic server
//	    interaction:
//	      - code: transaction
//	    resource:
//	      - type: Patient
//	        profile: StructureDefinition/patient
//	        interaction:
//	          - code: read
//	          - code: search-type
//
// Codes outside the FHIR value sets are rejected at decode time with an
// *UnknownCodeError. Values are read-only once decoded; renderers never mutate
// them.
package model
