// Package docs embeds the OpenAPI description of the API and registers it
// with swag so the Swagger UI can serve it.
package docs

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/swaggo/swag"
	"gopkg.in/yaml.v3"
)

//go:embed swagger.yaml
var swaggerYAML []byte

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Barrique API",
	Description:      "BucksBuddy travel budgets and RecipeVault recipes behind one account.",
	InfoInstanceName: "swagger",
}

func init() {
	doc, err := JSON()
	if err != nil {
		panic(fmt.Sprintf("docs: %v", err))
	}
	SwaggerInfo.SwaggerTemplate = string(doc)
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// YAML returns the embedded swagger.yaml.
func YAML() []byte {
	return swaggerYAML
}

// JSON converts the embedded document to JSON. Response codes in the YAML are
// quoted so every mapping decodes with string keys.
func JSON() ([]byte, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(swaggerYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse swagger.yaml: %w", err)
	}
	return json.Marshal(doc)
}
