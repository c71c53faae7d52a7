package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	sjsonschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const schemaID = "https://github.com/ormasoftchile/autodoc/schemas/config-v0.json"

// GenerateJSONSchema produces the JSON Schema of the config file from the
// Config struct.
func GenerateJSONSchema() ([]byte, error) {
	r := new(jsonschema.Reflector)
	r.DoNotReference = true

	s := r.Reflect(&Config{})
	s.ID = schemaID
	s.Title = "autodoc configuration"
	s.Description = "Schema for .autodoc.yaml"

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	return data, nil
}

// ValidationError is one schema violation in a config file.
type ValidationError struct {
	Path    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// Validate checks raw config YAML against the generated schema. An empty
// document is valid.
func Validate(data []byte) []*ValidationError {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []*ValidationError{{Message: fmt.Sprintf("parse yaml: %v", err)}}
	}
	if doc == nil {
		return nil
	}
	// round-trip through JSON so the validator sees JSON types
	jsonData, err := json.Marshal(doc)
	if err != nil {
		return []*ValidationError{{Message: fmt.Sprintf("convert to json: %v", err)}}
	}
	var instance any
	if err := json.Unmarshal(jsonData, &instance); err != nil {
		return []*ValidationError{{Message: fmt.Sprintf("convert to json: %v", err)}}
	}

	sch, err := compiledSchema()
	if err != nil {
		return []*ValidationError{{Message: err.Error()}}
	}
	err = sch.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*sjsonschema.ValidationError)
	if !ok {
		return []*ValidationError{{Message: err.Error()}}
	}
	var errs []*ValidationError
	for _, cause := range flattenValidationErrors(ve) {
		errs = append(errs, &ValidationError{
			Path:    strings.Join(cause.InstanceLocation, "/"),
			Message: fmt.Sprintf("%v", cause.ErrorKind),
		})
	}
	return errs
}

func compiledSchema() (*sjsonschema.Schema, error) {
	schemaJSON, err := GenerateJSONSchema()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}
	var schemaDoc any
	if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}
	c := sjsonschema.NewCompiler()
	if err := c.AddResource("config-v0.json", schemaDoc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	sch, err := c.Compile("config-v0.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return sch, nil
}

// flattenValidationErrors recursively collects all leaf validation errors.
func flattenValidationErrors(ve *sjsonschema.ValidationError) []*sjsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*sjsonschema.ValidationError{ve}
	}
	var flat []*sjsonschema.ValidationError
	for _, cause := range ve.Causes {
		flat = append(flat, flattenValidationErrors(cause)...)
	}
	return flat
}
