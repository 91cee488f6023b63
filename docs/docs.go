// Package docs holds the generated swagger spec. Regenerate with:
//
//	swag init -g cmd/econ-api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/analyses": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "List analysis runs",
                "responses": {
                    "200": {"description": "List of runs"},
                    "500": {"description": "Internal server error"}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Create a new analysis run",
                "responses": {
                    "202": {"description": "Run accepted"},
                    "400": {"description": "Invalid spec"},
                    "500": {"description": "Internal server error"}
                }
            }
        },
        "/analyses/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Get an analysis run",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Run details"},
                    "404": {"description": "Run not found"}
                }
            }
        },
        "/analyses/{id}/models": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Get model results",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Model results"},
                    "404": {"description": "Run not found"}
                }
            }
        },
        "/analyses/{id}/records": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Get engineered records",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Records page"},
                    "404": {"description": "Run not resident"}
                }
            }
        },
        "/analyses/{id}/groups": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analyses"],
                "summary": "Get grouped views",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"type": "string", "name": "by", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "Group summaries"},
                    "400": {"description": "Unknown grouping"},
                    "404": {"description": "Run not resident"}
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Econ Pipeline API",
	Description:      "Macroeconomic structure analysis: cleaning, feature engineering, OLS and fixed-effects panel regression.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
