package servers

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var rawSpec []byte

// GetSwagger parses and validates the embedded OpenAPI document.
func GetSwagger() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	swagger, err := loader.LoadFromData(rawSpec)
	if err != nil {
		return nil, fmt.Errorf("load OpenAPI document: %w", err)
	}

	if err = swagger.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validate OpenAPI document: %w", err)
	}

	return swagger, nil
}

// SwaggerJSON renders the OpenAPI document as JSON for documentation UIs.
func SwaggerJSON() (string, error) {
	swagger, err := GetSwagger()
	if err != nil {
		return "", err
	}

	raw, err := json.Marshal(swagger)
	if err != nil {
		return "", err
	}

	return string(raw), nil
}
